// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

// Package progression implements player character progression: ownership of
// catalog characters, the single-selection state machine, the leveling engine,
// and the quest completion ledger.
package progression

// ExperiencePerLevel is the amount of experience that separates consecutive
// levels. A character at level L advances once its total experience reaches
// L * ExperiencePerLevel.
const ExperiencePerLevel = 1000

// LevelForExperience returns the level implied by a total experience amount.
// Level 1 starts at 0 experience and each threshold is inclusive: a character
// with exactly L*1000 experience is level L+1. Negative experience never
// occurs in stored rows; it is treated as zero.
func LevelForExperience(experience int64) int {
	if experience < 0 {
		return 1
	}
	return int(experience/ExperiencePerLevel) + 1
}

// ExperienceFloorForLevel returns the minimum total experience for a level.
// Levels below 1 are clamped to 1.
func ExperienceFloorForLevel(level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(level-1) * ExperiencePerLevel
}
