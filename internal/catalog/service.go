// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package catalog

import (
	"context"

	"github.com/samber/oops"
)

// ServiceConfig holds dependencies for Service.
type ServiceConfig struct {
	Characters CharacterRepository
	Quests     QuestRepository
	Items      ItemRepository
}

// Service provides validated access to catalog definitions.
type Service struct {
	characters CharacterRepository
	quests     QuestRepository
	items      ItemRepository
}

// NewService creates a new Service with the given configuration.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		characters: cfg.Characters,
		quests:     cfg.Quests,
		items:      cfg.Items,
	}
}

// GetCharacter retrieves a character definition by ID.
func (s *Service) GetCharacter(ctx context.Context, id int64) (*Character, error) {
	if err := validateID(id, "character"); err != nil {
		return nil, err
	}
	char, err := s.characters.Get(ctx, id)
	if err != nil {
		return nil, oops.Wrapf(err, "get character %d", id)
	}
	return char, nil
}

// ListCharacters retrieves all character definitions.
func (s *Service) ListCharacters(ctx context.Context) ([]*Character, error) {
	chars, err := s.characters.List(ctx)
	if err != nil {
		return nil, oops.Wrapf(err, "list characters")
	}
	return chars, nil
}

// CreateCharacter validates and persists a new character definition,
// returning the assigned ID.
func (s *Service) CreateCharacter(ctx context.Context, char *Character) (int64, error) {
	if err := char.Validate(); err != nil {
		return 0, err
	}
	id, err := s.characters.Create(ctx, char)
	if err != nil {
		return 0, oops.Wrapf(err, "create character")
	}
	return id, nil
}

// UpdateCharacter validates and updates an existing character definition.
func (s *Service) UpdateCharacter(ctx context.Context, char *Character) error {
	if err := validateID(char.ID, "character"); err != nil {
		return err
	}
	if err := char.Validate(); err != nil {
		return err
	}
	if err := s.characters.Update(ctx, char); err != nil {
		return oops.Wrapf(err, "update character %d", char.ID)
	}
	return nil
}

// DeleteCharacter removes a character definition. Player progression rows
// referencing it are removed by the storage layer.
func (s *Service) DeleteCharacter(ctx context.Context, id int64) error {
	if err := validateID(id, "character"); err != nil {
		return err
	}
	if err := s.characters.Delete(ctx, id); err != nil {
		return oops.Wrapf(err, "delete character %d", id)
	}
	return nil
}

// GetQuest retrieves a quest definition by ID.
func (s *Service) GetQuest(ctx context.Context, id int64) (*Quest, error) {
	if err := validateID(id, "quest"); err != nil {
		return nil, err
	}
	quest, err := s.quests.Get(ctx, id)
	if err != nil {
		return nil, oops.Wrapf(err, "get quest %d", id)
	}
	return quest, nil
}

// ListQuests retrieves all quest definitions.
func (s *Service) ListQuests(ctx context.Context) ([]*Quest, error) {
	quests, err := s.quests.List(ctx)
	if err != nil {
		return nil, oops.Wrapf(err, "list quests")
	}
	return quests, nil
}

// CreateQuest validates and persists a new quest definition, returning the
// assigned ID. An item reward must reference an existing item.
func (s *Service) CreateQuest(ctx context.Context, quest *Quest) (int64, error) {
	if err := quest.Validate(); err != nil {
		return 0, err
	}
	if err := s.checkItemReward(ctx, quest); err != nil {
		return 0, err
	}
	id, err := s.quests.Create(ctx, quest)
	if err != nil {
		return 0, oops.Wrapf(err, "create quest")
	}
	return id, nil
}

// UpdateQuest validates and updates an existing quest definition.
func (s *Service) UpdateQuest(ctx context.Context, quest *Quest) error {
	if err := validateID(quest.ID, "quest"); err != nil {
		return err
	}
	if err := quest.Validate(); err != nil {
		return err
	}
	if err := s.checkItemReward(ctx, quest); err != nil {
		return err
	}
	if err := s.quests.Update(ctx, quest); err != nil {
		return oops.Wrapf(err, "update quest %d", quest.ID)
	}
	return nil
}

// DeleteQuest removes a quest definition and, via the storage layer, its
// completion ledger rows.
func (s *Service) DeleteQuest(ctx context.Context, id int64) error {
	if err := validateID(id, "quest"); err != nil {
		return err
	}
	if err := s.quests.Delete(ctx, id); err != nil {
		return oops.Wrapf(err, "delete quest %d", id)
	}
	return nil
}

// GetItem retrieves an item definition by ID.
func (s *Service) GetItem(ctx context.Context, id int64) (*Item, error) {
	if err := validateID(id, "item"); err != nil {
		return nil, err
	}
	item, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, oops.Wrapf(err, "get item %d", id)
	}
	return item, nil
}

// ListItems retrieves all item definitions.
func (s *Service) ListItems(ctx context.Context) ([]*Item, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, oops.Wrapf(err, "list items")
	}
	return items, nil
}

// CreateItem validates and persists a new item definition, returning the
// assigned ID.
func (s *Service) CreateItem(ctx context.Context, item *Item) (int64, error) {
	if err := item.Validate(); err != nil {
		return 0, err
	}
	id, err := s.items.Create(ctx, item)
	if err != nil {
		return 0, oops.Wrapf(err, "create item")
	}
	return id, nil
}

// UpdateItem validates and updates an existing item definition.
func (s *Service) UpdateItem(ctx context.Context, item *Item) error {
	if err := validateID(item.ID, "item"); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if err := s.items.Update(ctx, item); err != nil {
		return oops.Wrapf(err, "update item %d", item.ID)
	}
	return nil
}

// DeleteItem removes an item definition.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	if err := validateID(id, "item"); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return oops.Wrapf(err, "delete item %d", id)
	}
	return nil
}

// checkItemReward verifies the quest's item reward references an existing
// item definition.
func (s *Service) checkItemReward(ctx context.Context, quest *Quest) error {
	if quest.ItemRewardID == nil {
		return nil
	}
	if _, err := s.items.Get(ctx, *quest.ItemRewardID); err != nil {
		return oops.Code("QUEST_ITEM_REWARD_INVALID").
			With("item_id", *quest.ItemRewardID).
			Wrap(err)
	}
	return nil
}

func validateID(id int64, kind string) error {
	if id <= 0 {
		return oops.Code("ID_INVALID").
			With("kind", kind).
			With("id", id).
			Wrap(ErrInvalidInput)
	}
	return nil
}
