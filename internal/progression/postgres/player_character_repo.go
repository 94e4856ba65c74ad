// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/questline/questline/internal/progression"
)

// PlayerCharacterRepository implements progression.PlayerCharacterRepository
// using PostgreSQL.
type PlayerCharacterRepository struct {
	db DB
}

// NewPlayerCharacterRepository creates a new PostgreSQL player character
// repository.
func NewPlayerCharacterRepository(db DB) *PlayerCharacterRepository {
	return &PlayerCharacterRepository{db: db}
}

const playerCharacterColumns = `id, player_id, character_id, level, experience, gold, is_selected, created_at, updated_at`

// Get retrieves the aggregate for one (player, character) association.
func (r *PlayerCharacterRepository) Get(ctx context.Context, playerID string, characterID int64) (*progression.PlayerCharacter, error) {
	row := engine(ctx, r.db).QueryRow(ctx, `
		SELECT `+playerCharacterColumns+`
		FROM player_characters WHERE player_id = $1 AND character_id = $2
	`, playerID, characterID)
	pc, err := scanPlayerCharacterRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("PLAYER_CHARACTER_NOT_FOUND").
			With("player_id", playerID).
			With("character_id", characterID).
			Wrap(progression.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("PLAYER_CHARACTER_GET_FAILED").
			With("player_id", playerID).
			With("character_id", characterID).
			Wrap(err)
	}
	return pc, nil
}

// ListByPlayer retrieves all of a player's aggregates ordered by character ID.
func (r *PlayerCharacterRepository) ListByPlayer(ctx context.Context, playerID string) ([]*progression.PlayerCharacter, error) {
	rows, err := engine(ctx, r.db).Query(ctx, `
		SELECT `+playerCharacterColumns+`
		FROM player_characters WHERE player_id = $1
		ORDER BY character_id
	`, playerID)
	if err != nil {
		return nil, oops.Code("PLAYER_CHARACTER_QUERY_FAILED").With("player_id", playerID).Wrap(err)
	}
	defer rows.Close()

	return scanPlayerCharacters(rows)
}

// GetSelected retrieves the player's selected aggregate.
func (r *PlayerCharacterRepository) GetSelected(ctx context.Context, playerID string) (*progression.PlayerCharacter, error) {
	row := engine(ctx, r.db).QueryRow(ctx, `
		SELECT `+playerCharacterColumns+`
		FROM player_characters WHERE player_id = $1 AND is_selected
	`, playerID)
	pc, err := scanPlayerCharacterRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("SELECTION_NOT_FOUND").
			With("player_id", playerID).
			Wrap(progression.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("SELECTION_GET_FAILED").With("player_id", playerID).Wrap(err)
	}
	return pc, nil
}

// FirstOwned retrieves the player's aggregate with the lowest character ID.
func (r *PlayerCharacterRepository) FirstOwned(ctx context.Context, playerID string) (*progression.PlayerCharacter, error) {
	row := engine(ctx, r.db).QueryRow(ctx, `
		SELECT `+playerCharacterColumns+`
		FROM player_characters WHERE player_id = $1
		ORDER BY character_id LIMIT 1
	`, playerID)
	pc, err := scanPlayerCharacterRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("PLAYER_CHARACTER_NOT_FOUND").
			With("player_id", playerID).
			Wrap(progression.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("PLAYER_CHARACTER_GET_FAILED").With("player_id", playerID).Wrap(err)
	}
	return pc, nil
}

// HasAny reports whether the player owns any characters.
func (r *PlayerCharacterRepository) HasAny(ctx context.Context, playerID string) (bool, error) {
	var exists bool
	err := engine(ctx, r.db).QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM player_characters WHERE player_id = $1)
	`, playerID).Scan(&exists)
	if err != nil {
		return false, oops.Code("PLAYER_CHARACTER_QUERY_FAILED").With("player_id", playerID).Wrap(err)
	}
	return exists, nil
}

// Create persists a new aggregate. Uniqueness races on the
// (player, character) key or the single-selection index surface as
// progression.ErrConflict.
func (r *PlayerCharacterRepository) Create(ctx context.Context, pc *progression.PlayerCharacter) error {
	_, err := engine(ctx, r.db).Exec(ctx, `
		INSERT INTO player_characters (id, player_id, character_id, level, experience, gold, is_selected, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, pc.ID.String(), pc.PlayerID, pc.CharacterID, pc.Level, pc.Experience, pc.Gold,
		pc.Selected, pc.CreatedAt, pc.UpdatedAt)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != err {
			return mapped
		}
		return oops.Code("PLAYER_CHARACTER_CREATE_FAILED").
			With("player_id", pc.PlayerID).
			With("character_id", pc.CharacterID).
			Wrap(err)
	}
	return nil
}

// UpdateProgress sets level, experience, and gold on one aggregate.
func (r *PlayerCharacterRepository) UpdateProgress(ctx context.Context, id ulid.ULID, level int, experience, gold int64) error {
	result, err := engine(ctx, r.db).Exec(ctx, `
		UPDATE player_characters
		SET level = $2, experience = $3, gold = $4, updated_at = $5
		WHERE id = $1
	`, id.String(), level, experience, gold, time.Now().UTC())
	if err != nil {
		return oops.Code("PROGRESS_UPDATE_FAILED").With("id", id.String()).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("PLAYER_CHARACTER_NOT_FOUND").With("id", id.String()).Wrap(progression.ErrNotFound)
	}
	return nil
}

// SetSelected sets the selection flag on one aggregate. Violating the
// single-selection index surfaces as progression.ErrConflict.
func (r *PlayerCharacterRepository) SetSelected(ctx context.Context, id ulid.ULID, selected bool) error {
	result, err := engine(ctx, r.db).Exec(ctx, `
		UPDATE player_characters SET is_selected = $2, updated_at = $3 WHERE id = $1
	`, id.String(), selected, time.Now().UTC())
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != err {
			return mapped
		}
		return oops.Code("SELECTION_UPDATE_FAILED").With("id", id.String()).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("PLAYER_CHARACTER_NOT_FOUND").With("id", id.String()).Wrap(progression.ErrNotFound)
	}
	return nil
}

// DeselectAll clears the selection flag on all of a player's aggregates.
func (r *PlayerCharacterRepository) DeselectAll(ctx context.Context, playerID string) error {
	_, err := engine(ctx, r.db).Exec(ctx, `
		UPDATE player_characters SET is_selected = FALSE, updated_at = $2
		WHERE player_id = $1 AND is_selected
	`, playerID, time.Now().UTC())
	if err != nil {
		return oops.Code("SELECTION_CLEAR_FAILED").With("player_id", playerID).Wrap(err)
	}
	return nil
}

// Delete removes an aggregate. Ledger rows and inventory cascade in the
// schema.
func (r *PlayerCharacterRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result, err := engine(ctx, r.db).Exec(ctx, `DELETE FROM player_characters WHERE id = $1`, id.String())
	if err != nil {
		return oops.Code("PLAYER_CHARACTER_DELETE_FAILED").With("id", id.String()).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("PLAYER_CHARACTER_NOT_FOUND").With("id", id.String()).Wrap(progression.ErrNotFound)
	}
	return nil
}

// playerCharacterScanFields holds intermediate scan values.
type playerCharacterScanFields struct {
	idStr string
}

// scanPlayerCharacterRow scans a single aggregate from a row.
func scanPlayerCharacterRow(row pgx.Row) (*progression.PlayerCharacter, error) {
	var pc progression.PlayerCharacter
	var f playerCharacterScanFields

	err := row.Scan(
		&f.idStr, &pc.PlayerID, &pc.CharacterID, &pc.Level,
		&pc.Experience, &pc.Gold, &pc.Selected, &pc.CreatedAt, &pc.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, oops.Code("PLAYER_CHARACTER_SCAN_FAILED").Wrap(err)
	}

	pc.ID, err = ulid.Parse(f.idStr)
	if err != nil {
		return nil, oops.Code("PLAYER_CHARACTER_PARSE_FAILED").With("value", f.idStr).Wrap(err)
	}
	return &pc, nil
}

func scanPlayerCharacters(rows pgx.Rows) ([]*progression.PlayerCharacter, error) {
	characters := make([]*progression.PlayerCharacter, 0)
	for rows.Next() {
		pc, err := scanPlayerCharacterRow(rows)
		if err != nil {
			return nil, err
		}
		characters = append(characters, pc)
	}

	if err := rows.Err(); err != nil {
		return nil, oops.Code("PLAYER_CHARACTER_ITERATE_FAILED").Wrap(err)
	}

	return characters, nil
}

// Compile-time interface check.
var _ progression.PlayerCharacterRepository = (*PlayerCharacterRepository)(nil)
