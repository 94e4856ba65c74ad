// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questline/questline/internal/catalog"
)

func TestQuestRepository_Get(t *testing.T) {
	now := time.Now().UTC()
	itemID := int64(42)

	tests := []struct {
		name      string
		id        int64
		setupMock func(mock pgxmock.PgxPoolIface)
		want      *catalog.Quest
		wantErr   error
	}{
		{
			name: "found with item reward",
			id:   7,
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{
					"id", "title", "description", "required_level", "experience_reward",
					"gold_reward", "item_reward_id", "repeatable", "created_at",
				}).AddRow(int64(7), "Clear the Cellar", "Rats.", 1, int64(1000), int64(20), &itemID, false, now)
				mock.ExpectQuery(`SELECT (.+) FROM quest_definitions WHERE id = \$1`).
					WithArgs(int64(7)).
					WillReturnRows(rows)
			},
			want: &catalog.Quest{
				ID: 7, Title: "Clear the Cellar", Description: "Rats.",
				RequiredLevel: 1, ExperienceReward: 1000, GoldReward: 20,
				ItemRewardID: &itemID, CreatedAt: now,
			},
		},
		{
			name: "not found",
			id:   99,
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT (.+) FROM quest_definitions WHERE id = \$1`).
					WithArgs(int64(99)).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: catalog.ErrNotFound,
		},
		{
			name: "database error",
			id:   7,
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT (.+) FROM quest_definitions WHERE id = \$1`).
					WithArgs(int64(7)).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			got, err := NewQuestRepository(mock).Get(context.Background(), tt.id)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, catalog.ErrNotFound) {
					assert.ErrorIs(t, err, catalog.ErrNotFound)
				} else {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestQuestRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	quest := &catalog.Quest{
		Title:            "Clear the Cellar",
		Description:      "Rats.",
		RequiredLevel:    1,
		ExperienceReward: 1000,
		GoldReward:       20,
	}
	mock.ExpectQuery(`INSERT INTO quest_definitions`).
		WithArgs("Clear the Cellar", "Rats.", 1, int64(1000), int64(20), (*int64)(nil), false).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := NewQuestRepository(mock).Create(context.Background(), quest)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestRepository_Update(t *testing.T) {
	t.Run("missing row is not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		quest := &catalog.Quest{ID: 99, Title: "Gone", RequiredLevel: 1}
		mock.ExpectExec(`UPDATE quest_definitions`).
			WithArgs(int64(99), "Gone", "", 1, int64(0), int64(0), (*int64)(nil), false).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err = NewQuestRepository(mock).Update(context.Background(), quest)
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})
}

func TestQuestRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM quest_definitions WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, NewQuestRepository(mock).Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCharacterRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{
		"id", "name", "class", "image_url", "base_strength", "base_agility",
		"base_intelligence", "base_health", "base_attack_power", "created_at",
	}).
		AddRow(int64(1), "Warrior", "Fighter", "", 10, 5, 2, 100, 10, now).
		AddRow(int64(2), "Mage", "Caster", "", 2, 4, 12, 60, 20, now)
	mock.ExpectQuery(`SELECT (.+) FROM character_definitions ORDER BY id`).
		WillReturnRows(rows)

	got, err := NewCharacterRepository(mock).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Warrior", got[0].Name)
	assert.Equal(t, 20, got[1].BaseAttackPower)
}
