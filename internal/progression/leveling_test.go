// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForExperience(t *testing.T) {
	tests := []struct {
		name       string
		experience int64
		want       int
	}{
		{"zero experience is level one", 0, 1},
		{"just below first threshold", 999, 1},
		{"first threshold is inclusive", 1000, 2},
		{"just below second threshold", 1999, 2},
		{"second threshold is inclusive", 2000, 3},
		{"deep into mid levels", 9500, 10},
		{"negative clamps to level one", -50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LevelForExperience(tt.experience))
		})
	}
}

func TestLevelForExperience_Monotonic(t *testing.T) {
	prev := LevelForExperience(0)
	for xp := int64(1); xp <= 10_000; xp++ {
		level := LevelForExperience(xp)
		assert.GreaterOrEqual(t, level, prev, "level regressed at xp=%d", xp)
		prev = level
	}
}

func TestExperienceFloorForLevel(t *testing.T) {
	assert.Equal(t, int64(0), ExperienceFloorForLevel(1))
	assert.Equal(t, int64(1000), ExperienceFloorForLevel(2))
	assert.Equal(t, int64(4000), ExperienceFloorForLevel(5))
	assert.Equal(t, int64(0), ExperienceFloorForLevel(0))
	assert.Equal(t, int64(0), ExperienceFloorForLevel(-3))
}

// The floor of any experience amount's level never exceeds the amount itself.
func TestExperienceFloorForLevel_RoundTrip(t *testing.T) {
	for _, xp := range []int64{0, 1, 999, 1000, 1500, 2000, 123456} {
		level := LevelForExperience(xp)
		assert.LessOrEqual(t, ExperienceFloorForLevel(level), xp)
	}
}
