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

// CharacterRepository implements catalog.CharacterRepository using
// PostgreSQL.
type CharacterRepository struct {
	db DB
}

// NewCharacterRepository creates a new PostgreSQL character definition
// repository.
func NewCharacterRepository(db DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

const characterColumns = `id, name, class, image_url, base_strength, base_agility, base_intelligence, base_health, base_attack_power, created_at`

// Get retrieves a character definition by ID.
func (r *CharacterRepository) Get(ctx context.Context, id int64) (*catalog.Character, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+characterColumns+`
		FROM character_definitions WHERE id = $1
	`, id)
	char, err := scanCharacterRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("CHARACTER_NOT_FOUND").With("id", id).Wrap(catalog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("CHARACTER_GET_FAILED").With("id", id).Wrap(err)
	}
	return char, nil
}

// List retrieves all character definitions ordered by ID.
func (r *CharacterRepository) List(ctx context.Context) ([]*catalog.Character, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+characterColumns+`
		FROM character_definitions ORDER BY id
	`)
	if err != nil {
		return nil, oops.Code("CHARACTER_QUERY_FAILED").Wrap(err)
	}
	defer rows.Close()

	characters := make([]*catalog.Character, 0)
	for rows.Next() {
		char, err := scanCharacterRow(rows)
		if err != nil {
			return nil, err
		}
		characters = append(characters, char)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("CHARACTER_ITERATE_FAILED").Wrap(err)
	}
	return characters, nil
}

// Create persists a new character definition and returns the assigned ID.
// Callers must validate the definition before calling this method.
func (r *CharacterRepository) Create(ctx context.Context, char *catalog.Character) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO character_definitions (name, class, image_url, base_strength, base_agility, base_intelligence, base_health, base_attack_power)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, char.Name, char.Class, char.ImageURL, char.BaseStrength, char.BaseAgility,
		char.BaseIntelligence, char.BaseHealth, char.BaseAttackPower).Scan(&id)
	if err != nil {
		return 0, oops.Code("CHARACTER_CREATE_FAILED").With("name", char.Name).Wrap(err)
	}
	return id, nil
}

// Update modifies an existing character definition.
// Callers must validate the definition before calling this method.
func (r *CharacterRepository) Update(ctx context.Context, char *catalog.Character) error {
	result, err := r.db.Exec(ctx, `
		UPDATE character_definitions
		SET name = $2, class = $3, image_url = $4, base_strength = $5, base_agility = $6,
			base_intelligence = $7, base_health = $8, base_attack_power = $9
		WHERE id = $1
	`, char.ID, char.Name, char.Class, char.ImageURL, char.BaseStrength, char.BaseAgility,
		char.BaseIntelligence, char.BaseHealth, char.BaseAttackPower)
	if err != nil {
		return oops.Code("CHARACTER_UPDATE_FAILED").With("id", char.ID).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("CHARACTER_NOT_FOUND").With("id", char.ID).Wrap(catalog.ErrNotFound)
	}
	return nil
}

// Delete removes a character definition by ID. Player progression rows
// referencing it cascade in the schema.
func (r *CharacterRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM character_definitions WHERE id = $1`, id)
	if err != nil {
		return oops.Code("CHARACTER_DELETE_FAILED").With("id", id).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("CHARACTER_NOT_FOUND").With("id", id).Wrap(catalog.ErrNotFound)
	}
	return nil
}

// scanCharacterRow scans a single character definition from a row.
func scanCharacterRow(row pgx.Row) (*catalog.Character, error) {
	var char catalog.Character
	err := row.Scan(
		&char.ID, &char.Name, &char.Class, &char.ImageURL,
		&char.BaseStrength, &char.BaseAgility, &char.BaseIntelligence,
		&char.BaseHealth, &char.BaseAttackPower, &char.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, oops.Code("CHARACTER_SCAN_FAILED").Wrap(err)
	}
	return &char, nil
}

// Compile-time interface check.
var _ catalog.CharacterRepository = (*CharacterRepository)(nil)
