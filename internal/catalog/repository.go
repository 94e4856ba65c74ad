// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package catalog

import "context"

// CharacterRepository provides persistence for character definitions.
type CharacterRepository interface {
	Get(ctx context.Context, id int64) (*Character, error)
	List(ctx context.Context) ([]*Character, error)
	Create(ctx context.Context, char *Character) (int64, error)
	Update(ctx context.Context, char *Character) error
	Delete(ctx context.Context, id int64) error
}

// QuestRepository provides persistence for quest definitions.
type QuestRepository interface {
	Get(ctx context.Context, id int64) (*Quest, error)
	List(ctx context.Context) ([]*Quest, error)
	Create(ctx context.Context, quest *Quest) (int64, error)
	Update(ctx context.Context, quest *Quest) error
	Delete(ctx context.Context, id int64) error
}

// ItemRepository provides persistence for item definitions.
type ItemRepository interface {
	Get(ctx context.Context, id int64) (*Item, error)
	List(ctx context.Context) ([]*Item, error)
	Create(ctx context.Context, item *Item) (int64, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id int64) error
}
