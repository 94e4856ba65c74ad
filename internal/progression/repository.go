// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package progression

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/questline/questline/internal/catalog"
)

// PlayerCharacterRepository provides persistence for progression aggregates.
// Implementations participate in a transaction when one is present in the
// context (see Transactor).
type PlayerCharacterRepository interface {
	// Get retrieves the aggregate for one (player, character) association.
	Get(ctx context.Context, playerID string, characterID int64) (*PlayerCharacter, error)
	// ListByPlayer retrieves all of a player's aggregates ordered by
	// character ID.
	ListByPlayer(ctx context.Context, playerID string) ([]*PlayerCharacter, error)
	// GetSelected retrieves the player's selected aggregate.
	GetSelected(ctx context.Context, playerID string) (*PlayerCharacter, error)
	// FirstOwned retrieves the player's aggregate with the lowest character
	// ID, used for deterministic selection repair and promotion.
	FirstOwned(ctx context.Context, playerID string) (*PlayerCharacter, error)
	// HasAny reports whether the player owns any characters.
	HasAny(ctx context.Context, playerID string) (bool, error)
	// Create persists a new aggregate. A uniqueness race on the
	// (player, character) key surfaces as ErrConflict.
	Create(ctx context.Context, pc *PlayerCharacter) error
	// UpdateProgress sets level, experience, and gold.
	UpdateProgress(ctx context.Context, id ulid.ULID, level int, experience, gold int64) error
	// SetSelected sets the selection flag on one aggregate.
	SetSelected(ctx context.Context, id ulid.ULID, selected bool) error
	// DeselectAll clears the selection flag on all of a player's aggregates.
	DeselectAll(ctx context.Context, playerID string) error
	// Delete removes an aggregate and, via the storage layer, its ledger
	// rows and inventory.
	Delete(ctx context.Context, id ulid.ULID) error
}

// CompletionRepository provides persistence for the quest completion ledger.
type CompletionRepository interface {
	// Create appends a ledger row.
	Create(ctx context.Context, completion *QuestCompletion) error
	// Get retrieves a ledger row scoped to its owning player.
	Get(ctx context.Context, playerID string, id ulid.ULID) (*QuestCompletion, error)
	// Delete removes a ledger row.
	Delete(ctx context.Context, id ulid.ULID) error
	// ListByPlayer retrieves a player's ledger rows, most recent first.
	ListByPlayer(ctx context.Context, playerID string) ([]*QuestCompletion, error)
	// ListByCharacter retrieves ledger rows for one of the player's
	// characters, most recent first.
	ListByCharacter(ctx context.Context, playerID string, characterID int64) ([]*QuestCompletion, error)
	// ListByQuest retrieves the player's ledger rows for one quest.
	ListByQuest(ctx context.Context, playerID string, questID int64) ([]*QuestCompletion, error)
	// HasCompleted reports whether the character already has a ledger row
	// for the quest.
	HasCompleted(ctx context.Context, playerID string, characterID, questID int64) (bool, error)
}

// CatalogLookup is the read-only slice of the catalog that progression
// consumes.
type CatalogLookup interface {
	GetCharacter(ctx context.Context, id int64) (*catalog.Character, error)
	GetQuest(ctx context.Context, id int64) (*catalog.Quest, error)
	ListCharacters(ctx context.Context) ([]*catalog.Character, error)
}

// ItemGranter adds quest item rewards to a character's inventory.
type ItemGranter interface {
	Grant(ctx context.Context, ownerID ulid.ULID, itemID int64, quantity int) error
}

// Transactor runs a function inside a storage transaction. The transaction
// is carried in the context so repository calls made by fn share it.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
