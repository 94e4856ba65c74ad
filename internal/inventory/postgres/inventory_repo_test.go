// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Grant(t *testing.T) {
	ownerID := ulid.Make()

	tests := []struct {
		name      string
		quantity  int
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   bool
	}{
		{
			name:     "new entry",
			quantity: 1,
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO inventory_items`).
					WithArgs(ownerID.String(), int64(42), 1).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name:     "repeat grant accumulates",
			quantity: 3,
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO inventory_items`).
					WithArgs(ownerID.String(), int64(42), 3).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name:     "database error",
			quantity: 1,
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO inventory_items`).
					WithArgs(ownerID.String(), int64(42), 1).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			err = NewRepository(mock).Grant(context.Background(), ownerID, 42, tt.quantity)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestRepository_ListForCharacter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{
		"item_id", "name", "type", "description", "value",
		"attack_bonus", "defense_bonus", "health_restore", "quantity", "acquired_at",
	}).
		AddRow(int64(7), "Rusty Sword", "weapon", "Seen better days.", 5, 2, 0, 0, 1, now).
		AddRow(int64(9), "Minor Potion", "consumable", "", 3, 0, 0, 25, 4, now)
	mock.ExpectQuery(`SELECT (.+) FROM inventory_items i`).
		WithArgs("player-1", int64(3)).
		WillReturnRows(rows)

	got, err := NewRepository(mock).ListForCharacter(context.Background(), "player-1", 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Rusty Sword", got[0].Name)
	assert.Equal(t, 2, got[0].AttackBonus)
	assert.Equal(t, 4, got[1].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListForCharacter_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{
		"item_id", "name", "type", "description", "value",
		"attack_bonus", "defense_bonus", "health_restore", "quantity", "acquired_at",
	})
	mock.ExpectQuery(`SELECT (.+) FROM inventory_items i`).
		WithArgs("player-1", int64(3)).
		WillReturnRows(rows)

	got, err := NewRepository(mock).ListForCharacter(context.Background(), "player-1", 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}
