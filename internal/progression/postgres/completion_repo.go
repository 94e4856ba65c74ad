// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/questline/questline/internal/progression"
)

// CompletionRepository implements progression.CompletionRepository using
// PostgreSQL.
type CompletionRepository struct {
	db DB
}

// NewCompletionRepository creates a new PostgreSQL completion repository.
func NewCompletionRepository(db DB) *CompletionRepository {
	return &CompletionRepository{db: db}
}

const completionColumns = `id, player_id, character_id, quest_id, experience_gained, gold_gained, completed_at`

// Create appends a ledger row.
func (r *CompletionRepository) Create(ctx context.Context, completion *progression.QuestCompletion) error {
	_, err := engine(ctx, r.db).Exec(ctx, `
		INSERT INTO quest_completions (id, player_id, character_id, quest_id, experience_gained, gold_gained, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, completion.ID.String(), completion.PlayerID, completion.CharacterID, completion.QuestID,
		completion.ExperienceGained, completion.GoldGained, completion.CompletedAt)
	if err != nil {
		return oops.Code("COMPLETION_CREATE_FAILED").
			With("player_id", completion.PlayerID).
			With("quest_id", completion.QuestID).
			Wrap(err)
	}
	return nil
}

// Get retrieves a ledger row scoped to its owning player. A row belonging to
// another player is reported as not found.
func (r *CompletionRepository) Get(ctx context.Context, playerID string, id ulid.ULID) (*progression.QuestCompletion, error) {
	row := engine(ctx, r.db).QueryRow(ctx, `
		SELECT `+completionColumns+`
		FROM quest_completions WHERE id = $1 AND player_id = $2
	`, id.String(), playerID)
	completion, err := scanCompletionRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("COMPLETION_NOT_FOUND").
			With("id", id.String()).
			Wrap(progression.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("COMPLETION_GET_FAILED").With("id", id.String()).Wrap(err)
	}
	return completion, nil
}

// Delete removes a ledger row.
func (r *CompletionRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result, err := engine(ctx, r.db).Exec(ctx, `DELETE FROM quest_completions WHERE id = $1`, id.String())
	if err != nil {
		return oops.Code("COMPLETION_DELETE_FAILED").With("id", id.String()).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("COMPLETION_NOT_FOUND").With("id", id.String()).Wrap(progression.ErrNotFound)
	}
	return nil
}

// ListByPlayer retrieves a player's ledger rows, most recent first.
func (r *CompletionRepository) ListByPlayer(ctx context.Context, playerID string) ([]*progression.QuestCompletion, error) {
	rows, err := engine(ctx, r.db).Query(ctx, `
		SELECT `+completionColumns+`
		FROM quest_completions WHERE player_id = $1
		ORDER BY completed_at DESC, id DESC
	`, playerID)
	if err != nil {
		return nil, oops.Code("COMPLETION_QUERY_FAILED").With("player_id", playerID).Wrap(err)
	}
	defer rows.Close()

	return scanCompletions(rows)
}

// ListByCharacter retrieves ledger rows for one of the player's characters,
// most recent first.
func (r *CompletionRepository) ListByCharacter(ctx context.Context, playerID string, characterID int64) ([]*progression.QuestCompletion, error) {
	rows, err := engine(ctx, r.db).Query(ctx, `
		SELECT `+completionColumns+`
		FROM quest_completions WHERE player_id = $1 AND character_id = $2
		ORDER BY completed_at DESC, id DESC
	`, playerID, characterID)
	if err != nil {
		return nil, oops.Code("COMPLETION_QUERY_FAILED").
			With("player_id", playerID).
			With("character_id", characterID).
			Wrap(err)
	}
	defer rows.Close()

	return scanCompletions(rows)
}

// ListByQuest retrieves the player's ledger rows for one quest.
func (r *CompletionRepository) ListByQuest(ctx context.Context, playerID string, questID int64) ([]*progression.QuestCompletion, error) {
	rows, err := engine(ctx, r.db).Query(ctx, `
		SELECT `+completionColumns+`
		FROM quest_completions WHERE player_id = $1 AND quest_id = $2
		ORDER BY completed_at DESC, id DESC
	`, playerID, questID)
	if err != nil {
		return nil, oops.Code("COMPLETION_QUERY_FAILED").
			With("player_id", playerID).
			With("quest_id", questID).
			Wrap(err)
	}
	defer rows.Close()

	return scanCompletions(rows)
}

// HasCompleted reports whether the character already has a ledger row for
// the quest.
func (r *CompletionRepository) HasCompleted(ctx context.Context, playerID string, characterID, questID int64) (bool, error) {
	var exists bool
	err := engine(ctx, r.db).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM quest_completions
			WHERE player_id = $1 AND character_id = $2 AND quest_id = $3
		)
	`, playerID, characterID, questID).Scan(&exists)
	if err != nil {
		return false, oops.Code("COMPLETION_QUERY_FAILED").
			With("player_id", playerID).
			With("quest_id", questID).
			Wrap(err)
	}
	return exists, nil
}

// scanCompletionRow scans a single ledger row.
func scanCompletionRow(row pgx.Row) (*progression.QuestCompletion, error) {
	var completion progression.QuestCompletion
	var idStr string

	err := row.Scan(
		&idStr, &completion.PlayerID, &completion.CharacterID, &completion.QuestID,
		&completion.ExperienceGained, &completion.GoldGained, &completion.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, oops.Code("COMPLETION_SCAN_FAILED").Wrap(err)
	}

	completion.ID, err = ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("COMPLETION_PARSE_FAILED").With("value", idStr).Wrap(err)
	}
	return &completion, nil
}

func scanCompletions(rows pgx.Rows) ([]*progression.QuestCompletion, error) {
	completions := make([]*progression.QuestCompletion, 0)
	for rows.Next() {
		completion, err := scanCompletionRow(rows)
		if err != nil {
			return nil, err
		}
		completions = append(completions, completion)
	}

	if err := rows.Err(); err != nil {
		return nil, oops.Code("COMPLETION_ITERATE_FAILED").Wrap(err)
	}

	return completions, nil
}

// Compile-time interface check.
var _ progression.CompletionRepository = (*CompletionRepository)(nil)
