// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

// Package inventory tracks items held by player characters. Items are
// granted as quest rewards and accumulate per character.
package inventory

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// OwnedItem is an inventory entry joined with its item definition.
type OwnedItem struct {
	ItemID        int64
	Name          string
	Type          string
	Description   string
	Value         int
	AttackBonus   int
	DefenseBonus  int
	HealthRestore int
	Quantity      int
	AcquiredAt    time.Time
}

// Repository defines persistence operations for inventory entries.
type Repository interface {
	// Grant adds quantity of an item to the owning progression row,
	// creating the entry if it does not exist yet.
	Grant(ctx context.Context, ownerID ulid.ULID, itemID int64, quantity int) error
	// ListForCharacter returns the inventory of the player's progression
	// row for the given character definition, ordered by item ID.
	ListForCharacter(ctx context.Context, playerID string, characterID int64) ([]*OwnedItem, error)
}
