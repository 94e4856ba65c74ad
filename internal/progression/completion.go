// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package progression

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// QuestCompletion is one row of the completion ledger. Rewards are copied
// from the quest definition at completion time so later catalog edits do not
// change what a reversal subtracts.
type QuestCompletion struct {
	ID               ulid.ULID
	PlayerID         string
	CharacterID      int64
	QuestID          int64
	ExperienceGained int64
	GoldGained       int64
	CompletedAt      time.Time
}
