// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

// Package catalog holds the game content definitions: playable characters,
// quests, and items. Definitions are read-mostly reference data keyed by
// numeric IDs; player progression references them but never mutates them.
package catalog

import (
	"time"

	"github.com/samber/oops"
)

// Name and description length limits for catalog entries.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 2000
)

// Character is a playable character definition. Base stats are the level 1
// baseline; per-player derived stats are computed from these plus the
// player's progression.
type Character struct {
	ID               int64
	Name             string
	Class            string
	ImageURL         string
	BaseStrength     int
	BaseAgility      int
	BaseIntelligence int
	BaseHealth       int
	BaseAttackPower  int
	CreatedAt        time.Time
}

// Validate checks character definition fields.
func (c *Character) Validate() error {
	if c.Name == "" || len(c.Name) > MaxNameLength {
		return oops.Code("CHARACTER_INVALID").
			With("field", "name").
			Wrap(ErrInvalidInput)
	}
	if c.Class == "" || len(c.Class) > MaxNameLength {
		return oops.Code("CHARACTER_INVALID").
			With("field", "class").
			Wrap(ErrInvalidInput)
	}
	if c.BaseHealth < 0 || c.BaseAttackPower < 0 ||
		c.BaseStrength < 0 || c.BaseAgility < 0 || c.BaseIntelligence < 0 {
		return oops.Code("CHARACTER_INVALID").
			With("field", "base stats").
			Wrap(ErrInvalidInput)
	}
	return nil
}
