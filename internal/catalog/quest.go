// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package catalog

import (
	"time"

	"github.com/samber/oops"
)

// Quest is a quest definition. Rewards are granted to the attempting
// character's progression aggregate; ItemRewardID optionally grants an item
// into the character's inventory.
type Quest struct {
	ID               int64
	Title            string
	Description      string
	RequiredLevel    int
	ExperienceReward int64
	GoldReward       int64
	ItemRewardID     *int64
	Repeatable       bool
	CreatedAt        time.Time
}

// Validate checks quest definition fields.
func (q *Quest) Validate() error {
	if q.Title == "" || len(q.Title) > MaxNameLength {
		return oops.Code("QUEST_INVALID").
			With("field", "title").
			Wrap(ErrInvalidInput)
	}
	if len(q.Description) > MaxDescriptionLength {
		return oops.Code("QUEST_INVALID").
			With("field", "description").
			Wrap(ErrInvalidInput)
	}
	if q.RequiredLevel < 1 {
		return oops.Code("QUEST_INVALID").
			With("field", "required_level").
			With("value", q.RequiredLevel).
			Wrap(ErrInvalidInput)
	}
	if q.ExperienceReward < 0 || q.GoldReward < 0 {
		return oops.Code("QUEST_INVALID").
			With("field", "rewards").
			Wrap(ErrInvalidInput)
	}
	if q.ItemRewardID != nil && *q.ItemRewardID <= 0 {
		return oops.Code("QUEST_INVALID").
			With("field", "item_reward_id").
			Wrap(ErrInvalidInput)
	}
	return nil
}
