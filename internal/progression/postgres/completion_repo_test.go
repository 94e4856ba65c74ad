// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questline/questline/internal/progression"
)

func completionRows(completions ...*progression.QuestCompletion) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "player_id", "character_id", "quest_id",
		"experience_gained", "gold_gained", "completed_at",
	})
	for _, c := range completions {
		rows.AddRow(c.ID.String(), c.PlayerID, c.CharacterID, c.QuestID,
			c.ExperienceGained, c.GoldGained, c.CompletedAt)
	}
	return rows
}

func TestCompletionRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	completion := &progression.QuestCompletion{
		ID:               ulid.Make(),
		PlayerID:         "player-1",
		CharacterID:      1,
		QuestID:          7,
		ExperienceGained: 1000,
		GoldGained:       20,
		CompletedAt:      time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO quest_completions`).
		WithArgs(completion.ID.String(), "player-1", int64(1), int64(7),
			int64(1000), int64(20), completion.CompletedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewCompletionRepository(mock).Create(context.Background(), completion))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletionRepository_Get(t *testing.T) {
	id := ulid.Make()

	t.Run("found for owning player", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		completion := &progression.QuestCompletion{
			ID: id, PlayerID: "player-1", CharacterID: 1, QuestID: 7,
			ExperienceGained: 1000, GoldGained: 20, CompletedAt: time.Now().UTC(),
		}
		mock.ExpectQuery(`SELECT (.+) FROM quest_completions WHERE id = \$1 AND player_id = \$2`).
			WithArgs(id.String(), "player-1").
			WillReturnRows(completionRows(completion))

		got, err := NewCompletionRepository(mock).Get(context.Background(), "player-1", id)
		require.NoError(t, err)
		assert.Equal(t, completion, got)
	})

	t.Run("another player's row is not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT (.+) FROM quest_completions WHERE id = \$1 AND player_id = \$2`).
			WithArgs(id.String(), "player-2").
			WillReturnError(pgx.ErrNoRows)

		got, err := NewCompletionRepository(mock).Get(context.Background(), "player-2", id)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, progression.ErrNotFound)
	})
}

func TestCompletionRepository_Delete(t *testing.T) {
	id := ulid.Make()

	t.Run("successful delete", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM quest_completions WHERE id = \$1`).
			WithArgs(id.String()).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, NewCompletionRepository(mock).Delete(context.Background(), id))
	})

	t.Run("missing row is not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM quest_completions WHERE id = \$1`).
			WithArgs(id.String()).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err = NewCompletionRepository(mock).Delete(context.Background(), id)
		assert.ErrorIs(t, err, progression.ErrNotFound)
	})
}

func TestCompletionRepository_ListByCharacter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	newer := &progression.QuestCompletion{
		ID: ulid.Make(), PlayerID: "player-1", CharacterID: 1, QuestID: 8,
		ExperienceGained: 500, GoldGained: 10, CompletedAt: now,
	}
	older := &progression.QuestCompletion{
		ID: ulid.Make(), PlayerID: "player-1", CharacterID: 1, QuestID: 7,
		ExperienceGained: 1000, GoldGained: 20, CompletedAt: now.Add(-time.Hour),
	}
	mock.ExpectQuery(`SELECT (.+) FROM quest_completions WHERE player_id = \$1 AND character_id = \$2`).
		WithArgs("player-1", int64(1)).
		WillReturnRows(completionRows(newer, older))

	got, err := NewCompletionRepository(mock).ListByCharacter(context.Background(), "player-1", 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(8), got[0].QuestID)
	assert.Equal(t, int64(7), got[1].QuestID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompletionRepository_HasCompleted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("player-1", int64(1), int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	got, err := NewCompletionRepository(mock).HasCompleted(context.Background(), "player-1", 1, 7)
	require.NoError(t, err)
	assert.True(t, got)
}
