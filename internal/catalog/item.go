// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package catalog

import (
	"time"

	"github.com/samber/oops"
)

// Item is an item definition that can be granted as a quest reward and held
// in a character's inventory.
type Item struct {
	ID            int64
	Name          string
	Type          string
	Description   string
	Value         int
	AttackBonus   int
	DefenseBonus  int
	HealthRestore int
	CreatedAt     time.Time
}

// Validate checks item definition fields.
func (i *Item) Validate() error {
	if i.Name == "" || len(i.Name) > MaxNameLength {
		return oops.Code("ITEM_INVALID").
			With("field", "name").
			Wrap(ErrInvalidInput)
	}
	if len(i.Description) > MaxDescriptionLength {
		return oops.Code("ITEM_INVALID").
			With("field", "description").
			Wrap(ErrInvalidInput)
	}
	if i.Value < 0 {
		return oops.Code("ITEM_INVALID").
			With("field", "value").
			With("value", i.Value).
			Wrap(ErrInvalidInput)
	}
	return nil
}
