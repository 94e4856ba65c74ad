// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package progression

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// MaxPlayerIDLength bounds the opaque player identifier issued upstream.
const MaxPlayerIDLength = 128

// PlayerCharacter is the progression aggregate for one (player, character)
// association. Level, experience, and gold accumulate from quest completions;
// Selected marks the player's active character. At most one row per player is
// selected at any time.
type PlayerCharacter struct {
	ID          ulid.ULID
	PlayerID    string
	CharacterID int64
	Level       int
	Experience  int64
	Gold        int64
	Selected    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPlayerCharacter creates a fresh association at level 1 with zero
// experience and gold. The caller decides whether it starts selected.
func NewPlayerCharacter(playerID string, characterID int64, selected bool) *PlayerCharacter {
	now := time.Now().UTC()
	return &PlayerCharacter{
		ID:          ulid.Make(),
		PlayerID:    playerID,
		CharacterID: characterID,
		Level:       1,
		Selected:    selected,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ValidatePlayerID checks that a player identifier is usable as a key.
func ValidatePlayerID(playerID string) error {
	if playerID == "" || len(playerID) > MaxPlayerIDLength {
		return oops.Code("PLAYER_ID_INVALID").Wrap(ErrInvalidInput)
	}
	return nil
}

// ValidateCatalogID checks a numeric catalog key (character, quest, item).
func ValidateCatalogID(id int64, kind string) error {
	if id <= 0 {
		return oops.Code("ID_INVALID").
			With("kind", kind).
			With("id", id).
			Wrap(ErrInvalidInput)
	}
	return nil
}
