// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/questline/questline/internal/catalog"
)

// QuestRepository implements catalog.QuestRepository using PostgreSQL.
type QuestRepository struct {
	db DB
}

// NewQuestRepository creates a new PostgreSQL quest definition repository.
func NewQuestRepository(db DB) *QuestRepository {
	return &QuestRepository{db: db}
}

const questColumns = `id, title, description, required_level, experience_reward, gold_reward, item_reward_id, repeatable, created_at`

// Get retrieves a quest definition by ID.
func (r *QuestRepository) Get(ctx context.Context, id int64) (*catalog.Quest, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+questColumns+`
		FROM quest_definitions WHERE id = $1
	`, id)
	quest, err := scanQuestRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("QUEST_NOT_FOUND").With("id", id).Wrap(catalog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("QUEST_GET_FAILED").With("id", id).Wrap(err)
	}
	return quest, nil
}

// List retrieves all quest definitions ordered by ID.
func (r *QuestRepository) List(ctx context.Context) ([]*catalog.Quest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+questColumns+`
		FROM quest_definitions ORDER BY id
	`)
	if err != nil {
		return nil, oops.Code("QUEST_QUERY_FAILED").Wrap(err)
	}
	defer rows.Close()

	quests := make([]*catalog.Quest, 0)
	for rows.Next() {
		quest, err := scanQuestRow(rows)
		if err != nil {
			return nil, err
		}
		quests = append(quests, quest)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("QUEST_ITERATE_FAILED").Wrap(err)
	}
	return quests, nil
}

// Create persists a new quest definition and returns the assigned ID.
// Callers must validate the definition before calling this method.
func (r *QuestRepository) Create(ctx context.Context, quest *catalog.Quest) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO quest_definitions (title, description, required_level, experience_reward, gold_reward, item_reward_id, repeatable)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, quest.Title, quest.Description, quest.RequiredLevel, quest.ExperienceReward,
		quest.GoldReward, quest.ItemRewardID, quest.Repeatable).Scan(&id)
	if err != nil {
		return 0, oops.Code("QUEST_CREATE_FAILED").With("title", quest.Title).Wrap(err)
	}
	return id, nil
}

// Update modifies an existing quest definition.
// Callers must validate the definition before calling this method.
func (r *QuestRepository) Update(ctx context.Context, quest *catalog.Quest) error {
	result, err := r.db.Exec(ctx, `
		UPDATE quest_definitions
		SET title = $2, description = $3, required_level = $4, experience_reward = $5,
			gold_reward = $6, item_reward_id = $7, repeatable = $8
		WHERE id = $1
	`, quest.ID, quest.Title, quest.Description, quest.RequiredLevel,
		quest.ExperienceReward, quest.GoldReward, quest.ItemRewardID, quest.Repeatable)
	if err != nil {
		return oops.Code("QUEST_UPDATE_FAILED").With("id", quest.ID).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("QUEST_NOT_FOUND").With("id", quest.ID).Wrap(catalog.ErrNotFound)
	}
	return nil
}

// Delete removes a quest definition by ID. Completion ledger rows cascade in
// the schema.
func (r *QuestRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM quest_definitions WHERE id = $1`, id)
	if err != nil {
		return oops.Code("QUEST_DELETE_FAILED").With("id", id).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("QUEST_NOT_FOUND").With("id", id).Wrap(catalog.ErrNotFound)
	}
	return nil
}

// scanQuestRow scans a single quest definition from a row.
func scanQuestRow(row pgx.Row) (*catalog.Quest, error) {
	var quest catalog.Quest
	err := row.Scan(
		&quest.ID, &quest.Title, &quest.Description, &quest.RequiredLevel,
		&quest.ExperienceReward, &quest.GoldReward, &quest.ItemRewardID,
		&quest.Repeatable, &quest.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, oops.Code("QUEST_SCAN_FAILED").Wrap(err)
	}
	return &quest, nil
}

// Compile-time interface check.
var _ catalog.QuestRepository = (*QuestRepository)(nil)
