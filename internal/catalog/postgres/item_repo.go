// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/questline/questline/internal/catalog"
)

// ItemRepository implements catalog.ItemRepository using PostgreSQL.
type ItemRepository struct {
	db DB
}

// NewItemRepository creates a new PostgreSQL item definition repository.
func NewItemRepository(db DB) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `id, name, type, description, value, attack_bonus, defense_bonus, health_restore, created_at`

// Get retrieves an item definition by ID.
func (r *ItemRepository) Get(ctx context.Context, id int64) (*catalog.Item, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM item_definitions WHERE id = $1
	`, id)
	item, err := scanItemRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ITEM_NOT_FOUND").With("id", id).Wrap(catalog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ITEM_GET_FAILED").With("id", id).Wrap(err)
	}
	return item, nil
}

// List retrieves all item definitions ordered by ID.
func (r *ItemRepository) List(ctx context.Context) ([]*catalog.Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM item_definitions ORDER BY id
	`)
	if err != nil {
		return nil, oops.Code("ITEM_QUERY_FAILED").Wrap(err)
	}
	defer rows.Close()

	items := make([]*catalog.Item, 0)
	for rows.Next() {
		item, err := scanItemRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("ITEM_ITERATE_FAILED").Wrap(err)
	}
	return items, nil
}

// Create persists a new item definition and returns the assigned ID.
// Callers must validate the definition before calling this method.
func (r *ItemRepository) Create(ctx context.Context, item *catalog.Item) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO item_definitions (name, type, description, value, attack_bonus, defense_bonus, health_restore)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, item.Name, item.Type, item.Description, item.Value,
		item.AttackBonus, item.DefenseBonus, item.HealthRestore).Scan(&id)
	if err != nil {
		return 0, oops.Code("ITEM_CREATE_FAILED").With("name", item.Name).Wrap(err)
	}
	return id, nil
}

// Update modifies an existing item definition.
// Callers must validate the definition before calling this method.
func (r *ItemRepository) Update(ctx context.Context, item *catalog.Item) error {
	result, err := r.db.Exec(ctx, `
		UPDATE item_definitions
		SET name = $2, type = $3, description = $4, value = $5,
			attack_bonus = $6, defense_bonus = $7, health_restore = $8
		WHERE id = $1
	`, item.ID, item.Name, item.Type, item.Description, item.Value,
		item.AttackBonus, item.DefenseBonus, item.HealthRestore)
	if err != nil {
		return oops.Code("ITEM_UPDATE_FAILED").With("id", item.ID).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("ITEM_NOT_FOUND").With("id", item.ID).Wrap(catalog.ErrNotFound)
	}
	return nil
}

// Delete removes an item definition by ID.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM item_definitions WHERE id = $1`, id)
	if err != nil {
		return oops.Code("ITEM_DELETE_FAILED").With("id", id).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("ITEM_NOT_FOUND").With("id", id).Wrap(catalog.ErrNotFound)
	}
	return nil
}

// scanItemRow scans a single item definition from a row.
func scanItemRow(row pgx.Row) (*catalog.Item, error) {
	var item catalog.Item
	err := row.Scan(
		&item.ID, &item.Name, &item.Type, &item.Description, &item.Value,
		&item.AttackBonus, &item.DefenseBonus, &item.HealthRestore, &item.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, oops.Code("ITEM_SCAN_FAILED").Wrap(err)
	}
	return &item, nil
}

// Compile-time interface check.
var _ catalog.ItemRepository = (*ItemRepository)(nil)
