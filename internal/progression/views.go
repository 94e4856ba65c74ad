// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package progression

import "github.com/questline/questline/internal/catalog"

// Per-level bonuses for derived stats. Stats are computed at read time from
// the catalog baseline and the aggregate's level; they are never stored.
const (
	healthPerLevel = 10
	attackPerLevel = 2
)

// CharacterProgressView joins a catalog character definition with one
// player's progression for it. NextLevelExperience is the total experience
// threshold for the next level.
type CharacterProgressView struct {
	CharacterID         int64
	Name                string
	Class               string
	ImageURL            string
	Level               int
	Experience          int64
	Gold                int64
	Health              int
	AttackPower         int
	NextLevelExperience int64
	Owned               bool
	Selected            bool
}

// QuestAttemptResult reports the outcome of a quest attempt. A failed level
// gate is a normal result with Success false and RequiredLevel set.
type QuestAttemptResult struct {
	Success          bool
	RequiredLevel    int
	ExperienceGained int64
	GoldGained       int64
	LeveledUp        bool
	NewLevel         int
	AlreadyCompleted bool
}

// QuestStatus reports whether (and with which characters) a player has
// completed a quest.
type QuestStatus struct {
	QuestID      int64
	Completed    bool
	Completions  int
	CharacterIDs []int64
}

// NewProgressView builds the view of an owned character.
func NewProgressView(def *catalog.Character, pc *PlayerCharacter) *CharacterProgressView {
	return &CharacterProgressView{
		CharacterID:         def.ID,
		Name:                def.Name,
		Class:               def.Class,
		ImageURL:            def.ImageURL,
		Level:               pc.Level,
		Experience:          pc.Experience,
		Gold:                pc.Gold,
		Health:              def.BaseHealth + pc.Level*healthPerLevel,
		AttackPower:         def.BaseAttackPower + pc.Level*attackPerLevel,
		NextLevelExperience: ExperienceFloorForLevel(pc.Level + 1),
		Owned:               true,
		Selected:            pc.Selected,
	}
}

// NewDefaultProgressView builds the view of a not-yet-owned character using
// level 1 defaults.
func NewDefaultProgressView(def *catalog.Character) *CharacterProgressView {
	return &CharacterProgressView{
		CharacterID:         def.ID,
		Name:                def.Name,
		Class:               def.Class,
		ImageURL:            def.ImageURL,
		Level:               1,
		Health:              def.BaseHealth + healthPerLevel,
		AttackPower:         def.BaseAttackPower + attackPerLevel,
		NextLevelExperience: ExperienceFloorForLevel(2),
	}
}
