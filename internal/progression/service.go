// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package progression

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// Conflict retry policy for first-contact races. Two requests creating the
// same (player, character) row make one transaction lose on the unique
// constraint; the loser re-runs and re-reads the winner's row.
const (
	conflictRetries = 3
	conflictBackoff = 5 * time.Millisecond
)

// MetricsRecorder receives progression events for instrumentation.
type MetricsRecorder interface {
	RecordQuestAttempt(outcome string)
	RecordSelectionSwitch()
	RecordCompletionReversal()
}

// Quest attempt outcomes reported to MetricsRecorder.
const (
	AttemptOutcomeSuccess   = "success"
	AttemptOutcomeLevelGate = "level_gate"
)

// nopMetrics is used when no recorder is configured.
type nopMetrics struct{}

func (nopMetrics) RecordQuestAttempt(string) {}
func (nopMetrics) RecordSelectionSwitch()    {}
func (nopMetrics) RecordCompletionReversal() {}

// ServiceConfig holds dependencies for Service.
type ServiceConfig struct {
	Characters  PlayerCharacterRepository
	Completions CompletionRepository
	Catalog     CatalogLookup
	Items       ItemGranter
	Tx          Transactor
	Metrics     MetricsRecorder
	Logger      *slog.Logger
}

// Service implements the progression operations. Every multi-step mutation
// runs inside one transaction; uniqueness races are retried transparently.
type Service struct {
	characters  PlayerCharacterRepository
	completions CompletionRepository
	catalog     CatalogLookup
	items       ItemGranter
	tx          Transactor
	metrics     MetricsRecorder
	logger      *slog.Logger
}

// NewService creates a new Service with the given configuration.
func NewService(cfg ServiceConfig) *Service {
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = nopMetrics{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		characters:  cfg.Characters,
		completions: cfg.Completions,
		catalog:     cfg.Catalog,
		items:       cfg.Items,
		tx:          cfg.Tx,
		metrics:     metrics,
		logger:      logger,
	}
}

// SelectCharacter makes the character the player's active one, creating the
// ownership association on first contact. The first character a player ever
// acquires is selected implicitly; switching deselects all others in the
// same transaction.
func (s *Service) SelectCharacter(ctx context.Context, playerID string, characterID int64) (*CharacterProgressView, error) {
	if err := ValidatePlayerID(playerID); err != nil {
		return nil, err
	}
	if err := ValidateCatalogID(characterID, "character"); err != nil {
		return nil, err
	}

	var view *CharacterProgressView
	err := s.withConflictRetry(ctx, func(ctx context.Context) error {
		def, err := s.catalog.GetCharacter(ctx, characterID)
		if err != nil {
			return oops.Wrapf(err, "select character %d", characterID)
		}
		pc, err := s.resolveOwnership(ctx, playerID, characterID)
		if err != nil {
			return err
		}
		if !pc.Selected {
			if err := s.characters.DeselectAll(ctx, playerID); err != nil {
				return err
			}
			if err := s.characters.SetSelected(ctx, pc.ID, true); err != nil {
				return err
			}
			pc.Selected = true
			s.metrics.RecordSelectionSwitch()
		}
		view = NewProgressView(def, pc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("character selected",
		"player_id", playerID,
		"character_id", characterID,
	)
	return view, nil
}

// GetSelectedCharacter returns the player's active character. When the
// player owns characters but none is selected, the selection is repaired
// deterministically by selecting the lowest character ID and persisting the
// repair. A player with no characters gets ErrNotFound.
func (s *Service) GetSelectedCharacter(ctx context.Context, playerID string) (*CharacterProgressView, error) {
	if err := ValidatePlayerID(playerID); err != nil {
		return nil, err
	}

	pc, err := s.characters.GetSelected(ctx, playerID)
	if errors.Is(err, ErrNotFound) {
		pc, err = s.repairSelection(ctx, playerID)
	}
	if err != nil {
		return nil, err
	}

	def, err := s.catalog.GetCharacter(ctx, pc.CharacterID)
	if err != nil {
		return nil, oops.Wrapf(err, "selected character %d definition", pc.CharacterID)
	}
	return NewProgressView(def, pc), nil
}

// GetOwnedCharacters returns progression views for every character the
// player owns, ordered by character ID.
func (s *Service) GetOwnedCharacters(ctx context.Context, playerID string) ([]*CharacterProgressView, error) {
	if err := ValidatePlayerID(playerID); err != nil {
		return nil, err
	}

	owned, err := s.characters.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	views := make([]*CharacterProgressView, 0, len(owned))
	for _, pc := range owned {
		def, err := s.catalog.GetCharacter(ctx, pc.CharacterID)
		if err != nil {
			return nil, oops.Wrapf(err, "owned character %d definition", pc.CharacterID)
		}
		views = append(views, NewProgressView(def, pc))
	}
	return views, nil
}

// GetAvailableCharacters returns views for the whole character catalog:
// owned entries carry the player's progression, the rest carry level 1
// defaults.
func (s *Service) GetAvailableCharacters(ctx context.Context, playerID string) ([]*CharacterProgressView, error) {
	if err := ValidatePlayerID(playerID); err != nil {
		return nil, err
	}

	defs, err := s.catalog.ListCharacters(ctx)
	if err != nil {
		return nil, err
	}
	owned, err := s.characters.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	byCharacter := make(map[int64]*PlayerCharacter, len(owned))
	for _, pc := range owned {
		byCharacter[pc.CharacterID] = pc
	}

	views := make([]*CharacterProgressView, 0, len(defs))
	for _, def := range defs {
		if pc, ok := byCharacter[def.ID]; ok {
			views = append(views, NewProgressView(def, pc))
		} else {
			views = append(views, NewDefaultProgressView(def))
		}
	}
	return views, nil
}

// AttemptQuest runs one quest attempt. Preconditions are checked in order:
// the quest must exist, ownership must resolve (created on first contact),
// and the character's level must meet the quest's gate. A failed gate is a
// soft failure reported in the result. A passing attempt appends a ledger
// row, grants rewards, recomputes the level monotonically, and grants any
// item reward, all in one transaction. Every passing attempt is rewarded;
// AlreadyCompleted is informational.
func (s *Service) AttemptQuest(ctx context.Context, playerID string, characterID, questID int64) (*QuestAttemptResult, error) {
	if err := ValidatePlayerID(playerID); err != nil {
		return nil, err
	}
	if err := ValidateCatalogID(characterID, "character"); err != nil {
		return nil, err
	}
	if err := ValidateCatalogID(questID, "quest"); err != nil {
		return nil, err
	}

	var result *QuestAttemptResult
	err := s.withConflictRetry(ctx, func(ctx context.Context) error {
		quest, err := s.catalog.GetQuest(ctx, questID)
		if err != nil {
			return oops.Wrapf(err, "attempt quest %d", questID)
		}
		if _, err := s.catalog.GetCharacter(ctx, characterID); err != nil {
			return oops.Wrapf(err, "attempt quest: character %d", characterID)
		}
		pc, err := s.resolveOwnership(ctx, playerID, characterID)
		if err != nil {
			return err
		}

		if pc.Level < quest.RequiredLevel {
			result = &QuestAttemptResult{
				Success:       false,
				RequiredLevel: quest.RequiredLevel,
				NewLevel:      pc.Level,
			}
			return nil
		}

		alreadyCompleted, err := s.completions.HasCompleted(ctx, playerID, characterID, questID)
		if err != nil {
			return err
		}

		completion := &QuestCompletion{
			ID:               ulid.Make(),
			PlayerID:         playerID,
			CharacterID:      characterID,
			QuestID:          questID,
			ExperienceGained: quest.ExperienceReward,
			GoldGained:       quest.GoldReward,
			CompletedAt:      time.Now().UTC(),
		}
		if err := s.completions.Create(ctx, completion); err != nil {
			return err
		}

		newExperience := pc.Experience + quest.ExperienceReward
		newGold := pc.Gold + quest.GoldReward
		newLevel := LevelForExperience(newExperience)
		if newLevel < pc.Level {
			newLevel = pc.Level
		}
		if err := s.characters.UpdateProgress(ctx, pc.ID, newLevel, newExperience, newGold); err != nil {
			return err
		}

		if quest.ItemRewardID != nil {
			if err := s.items.Grant(ctx, pc.ID, *quest.ItemRewardID, 1); err != nil {
				return err
			}
		}

		result = &QuestAttemptResult{
			Success:          true,
			ExperienceGained: quest.ExperienceReward,
			GoldGained:       quest.GoldReward,
			LeveledUp:        newLevel > pc.Level,
			NewLevel:         newLevel,
			AlreadyCompleted: alreadyCompleted,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Success {
		s.metrics.RecordQuestAttempt(AttemptOutcomeSuccess)
		s.logger.Info("quest completed",
			"player_id", playerID,
			"character_id", characterID,
			"quest_id", questID,
			"leveled_up", result.LeveledUp,
			"new_level", result.NewLevel,
		)
	} else {
		s.metrics.RecordQuestAttempt(AttemptOutcomeLevelGate)
	}
	return result, nil
}

// DeleteCompletion reverses a ledger row owned by the player: rewards are
// subtracted with experience and gold clamped at zero, the level is
// recomputed downward from the clamped experience, and the row is deleted.
// The reversal is compensating and lossy by design: clamping means deleting
// rows out of order may not restore the exact prior state.
func (s *Service) DeleteCompletion(ctx context.Context, playerID string, completionID ulid.ULID) error {
	if err := ValidatePlayerID(playerID); err != nil {
		return err
	}

	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		completion, err := s.completions.Get(ctx, playerID, completionID)
		if err != nil {
			return err
		}
		pc, err := s.characters.Get(ctx, playerID, completion.CharacterID)
		if err != nil {
			return err
		}

		newExperience := pc.Experience - completion.ExperienceGained
		if newExperience < 0 {
			newExperience = 0
		}
		newGold := pc.Gold - completion.GoldGained
		if newGold < 0 {
			newGold = 0
		}
		newLevel := LevelForExperience(newExperience)

		if err := s.characters.UpdateProgress(ctx, pc.ID, newLevel, newExperience, newGold); err != nil {
			return err
		}
		return s.completions.Delete(ctx, completionID)
	})
	if err != nil {
		return err
	}

	s.metrics.RecordCompletionReversal()
	s.logger.Info("completion reversed",
		"player_id", playerID,
		"completion_id", completionID.String(),
	)
	return nil
}

// RemoveOwnedCharacter deletes the player's association with a character,
// along with its ledger rows and inventory. If the removed character was
// selected, the lowest remaining character ID is promoted in the same
// transaction. Returns whether the removed character was the selected one.
func (s *Service) RemoveOwnedCharacter(ctx context.Context, playerID string, characterID int64) (bool, error) {
	if err := ValidatePlayerID(playerID); err != nil {
		return false, err
	}
	if err := ValidateCatalogID(characterID, "character"); err != nil {
		return false, err
	}

	var wasSelected bool
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		pc, err := s.characters.Get(ctx, playerID, characterID)
		if err != nil {
			return err
		}
		wasSelected = pc.Selected

		if err := s.characters.Delete(ctx, pc.ID); err != nil {
			return err
		}
		if !wasSelected {
			return nil
		}

		next, err := s.characters.FirstOwned(ctx, playerID)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return s.characters.SetSelected(ctx, next.ID, true)
	})
	if err != nil {
		return false, err
	}

	s.logger.Info("character removed",
		"player_id", playerID,
		"character_id", characterID,
		"was_selected", wasSelected,
	)
	return wasSelected, nil
}

// ListCompletions returns the player's ledger rows, most recent first.
func (s *Service) ListCompletions(ctx context.Context, playerID string) ([]*QuestCompletion, error) {
	if err := ValidatePlayerID(playerID); err != nil {
		return nil, err
	}
	return s.completions.ListByPlayer(ctx, playerID)
}

// ListCharacterCompletions returns ledger rows for one of the player's
// characters, most recent first.
func (s *Service) ListCharacterCompletions(ctx context.Context, playerID string, characterID int64) ([]*QuestCompletion, error) {
	if err := ValidatePlayerID(playerID); err != nil {
		return nil, err
	}
	if err := ValidateCatalogID(characterID, "character"); err != nil {
		return nil, err
	}
	return s.completions.ListByCharacter(ctx, playerID, characterID)
}

// GetQuestStatus reports whether the player has completed a quest and with
// which characters.
func (s *Service) GetQuestStatus(ctx context.Context, playerID string, questID int64) (*QuestStatus, error) {
	if err := ValidatePlayerID(playerID); err != nil {
		return nil, err
	}
	if err := ValidateCatalogID(questID, "quest"); err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetQuest(ctx, questID); err != nil {
		return nil, oops.Wrapf(err, "quest %d status", questID)
	}

	completions, err := s.completions.ListByQuest(ctx, playerID, questID)
	if err != nil {
		return nil, err
	}

	status := &QuestStatus{
		QuestID:     questID,
		Completed:   len(completions) > 0,
		Completions: len(completions),
	}
	seen := make(map[int64]struct{})
	for _, c := range completions {
		if _, ok := seen[c.CharacterID]; ok {
			continue
		}
		seen[c.CharacterID] = struct{}{}
		status.CharacterIDs = append(status.CharacterIDs, c.CharacterID)
	}
	return status, nil
}

// resolveOwnership gets or creates the (player, character) association. A
// player's first association starts selected. Races on creation surface as
// ErrConflict from the repository and are retried by the caller.
func (s *Service) resolveOwnership(ctx context.Context, playerID string, characterID int64) (*PlayerCharacter, error) {
	pc, err := s.characters.Get(ctx, playerID, characterID)
	if err == nil {
		return pc, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hasAny, err := s.characters.HasAny(ctx, playerID)
	if err != nil {
		return nil, err
	}
	pc = NewPlayerCharacter(playerID, characterID, !hasAny)
	if err := s.characters.Create(ctx, pc); err != nil {
		return nil, err
	}
	s.logger.Info("character acquired",
		"player_id", playerID,
		"character_id", characterID,
		"auto_selected", pc.Selected,
	)
	return pc, nil
}

// repairSelection deterministically restores the selection invariant for a
// player whose rows all have the flag cleared.
func (s *Service) repairSelection(ctx context.Context, playerID string) (*PlayerCharacter, error) {
	var pc *PlayerCharacter
	err := s.withConflictRetry(ctx, func(ctx context.Context) error {
		var err error
		pc, err = s.characters.GetSelected(ctx, playerID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		pc, err = s.characters.FirstOwned(ctx, playerID)
		if err != nil {
			return err
		}
		if err := s.characters.SetSelected(ctx, pc.ID, true); err != nil {
			return err
		}
		pc.Selected = true
		s.logger.Warn("selection repaired",
			"player_id", playerID,
			"character_id", pc.CharacterID,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pc, nil
}

// withConflictRetry runs fn in a transaction, retrying the whole transaction
// when it loses a uniqueness race.
func (s *Service) withConflictRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(conflictRetries, retry.NewExponential(conflictBackoff))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := s.tx.InTransaction(ctx, fn)
		if errors.Is(err, ErrConflict) {
			return retry.RetryableError(err)
		}
		return err
	})
}
