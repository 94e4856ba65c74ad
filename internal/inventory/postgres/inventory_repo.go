// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

// Package postgres provides the PostgreSQL implementation of the inventory
// repository.
package postgres

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/questline/questline/internal/inventory"
	"github.com/questline/questline/internal/progression"
	"github.com/questline/questline/internal/store"
)

// Repository implements inventory.Repository using PostgreSQL. Grant joins
// any transaction carried by the context so quest rewards land atomically
// with the progression update.
type Repository struct {
	db store.DB
}

// NewRepository creates a new PostgreSQL inventory repository.
func NewRepository(db store.DB) *Repository {
	return &Repository{db: db}
}

// Grant upserts an inventory entry, accumulating quantity on repeat grants.
func (r *Repository) Grant(ctx context.Context, ownerID ulid.ULID, itemID int64, quantity int) error {
	_, err := store.Engine(ctx, r.db).Exec(ctx, `
		INSERT INTO inventory_items (player_character_id, item_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_character_id, item_id)
		DO UPDATE SET quantity = inventory_items.quantity + EXCLUDED.quantity
	`, ownerID.String(), itemID, quantity)
	if err != nil {
		return oops.Code("INVENTORY_GRANT_FAILED").
			With("owner_id", ownerID.String()).
			With("item_id", itemID).
			Wrap(err)
	}
	return nil
}

// ListForCharacter returns the inventory for the player's progression row on
// the given character definition, joined with item definitions.
func (r *Repository) ListForCharacter(ctx context.Context, playerID string, characterID int64) ([]*inventory.OwnedItem, error) {
	rows, err := store.Engine(ctx, r.db).Query(ctx, `
		SELECT i.item_id, d.name, d.type, d.description, d.value,
			d.attack_bonus, d.defense_bonus, d.health_restore,
			i.quantity, i.acquired_at
		FROM inventory_items i
		JOIN player_characters pc ON pc.id = i.player_character_id
		JOIN item_definitions d ON d.id = i.item_id
		WHERE pc.player_id = $1 AND pc.character_id = $2
		ORDER BY i.item_id
	`, playerID, characterID)
	if err != nil {
		return nil, oops.Code("INVENTORY_QUERY_FAILED").
			With("player_id", playerID).
			With("character_id", characterID).
			Wrap(err)
	}
	defer rows.Close()

	items := make([]*inventory.OwnedItem, 0)
	for rows.Next() {
		var item inventory.OwnedItem
		if err := rows.Scan(
			&item.ItemID, &item.Name, &item.Type, &item.Description, &item.Value,
			&item.AttackBonus, &item.DefenseBonus, &item.HealthRestore,
			&item.Quantity, &item.AcquiredAt,
		); err != nil {
			return nil, oops.Code("INVENTORY_SCAN_FAILED").Wrap(err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("INVENTORY_ITERATE_FAILED").Wrap(err)
	}
	return items, nil
}

// Compile-time interface checks.
var (
	_ inventory.Repository    = (*Repository)(nil)
	_ progression.ItemGranter = (*Repository)(nil)
)
