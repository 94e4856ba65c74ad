// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

// Package api provides the HTTP surface of the service: catalog management
// and per-player progression routes.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"

	"github.com/questline/questline/internal/catalog"
	"github.com/questline/questline/internal/inventory"
	"github.com/questline/questline/internal/progression"
)

// CatalogService is the catalog surface the handlers depend on.
type CatalogService interface {
	GetCharacter(ctx context.Context, id int64) (*catalog.Character, error)
	ListCharacters(ctx context.Context) ([]*catalog.Character, error)
	CreateCharacter(ctx context.Context, char *catalog.Character) (int64, error)
	UpdateCharacter(ctx context.Context, char *catalog.Character) error
	DeleteCharacter(ctx context.Context, id int64) error

	GetQuest(ctx context.Context, id int64) (*catalog.Quest, error)
	ListQuests(ctx context.Context) ([]*catalog.Quest, error)
	CreateQuest(ctx context.Context, quest *catalog.Quest) (int64, error)
	UpdateQuest(ctx context.Context, quest *catalog.Quest) error
	DeleteQuest(ctx context.Context, id int64) error

	GetItem(ctx context.Context, id int64) (*catalog.Item, error)
	ListItems(ctx context.Context) ([]*catalog.Item, error)
	CreateItem(ctx context.Context, item *catalog.Item) (int64, error)
	UpdateItem(ctx context.Context, item *catalog.Item) error
	DeleteItem(ctx context.Context, id int64) error
}

// ProgressionService is the player progression surface the handlers depend
// on.
type ProgressionService interface {
	SelectCharacter(ctx context.Context, playerID string, characterID int64) (*progression.CharacterProgressView, error)
	GetSelectedCharacter(ctx context.Context, playerID string) (*progression.CharacterProgressView, error)
	GetOwnedCharacters(ctx context.Context, playerID string) ([]*progression.CharacterProgressView, error)
	GetAvailableCharacters(ctx context.Context, playerID string) ([]*progression.CharacterProgressView, error)
	AttemptQuest(ctx context.Context, playerID string, characterID, questID int64) (*progression.QuestAttemptResult, error)
	DeleteCompletion(ctx context.Context, playerID string, completionID ulid.ULID) error
	RemoveOwnedCharacter(ctx context.Context, playerID string, characterID int64) (bool, error)
	ListCompletions(ctx context.Context, playerID string) ([]*progression.QuestCompletion, error)
	ListCharacterCompletions(ctx context.Context, playerID string, characterID int64) ([]*progression.QuestCompletion, error)
	GetQuestStatus(ctx context.Context, playerID string, questID int64) (*progression.QuestStatus, error)
}

// InventoryLister is the inventory read surface the handlers depend on.
type InventoryLister interface {
	ListForCharacter(ctx context.Context, playerID string, characterID int64) ([]*inventory.OwnedItem, error)
}

// HandlerConfig holds dependencies for Handler.
type HandlerConfig struct {
	Catalog     CatalogService
	Progression ProgressionService
	Inventory   InventoryLister
	Logger      *slog.Logger
}

// Handler serves the HTTP API.
type Handler struct {
	catalog     CatalogService
	progression ProgressionService
	inventory   InventoryLister
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewHandler creates a Handler with the given configuration.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		catalog:     cfg.Catalog,
		progression: cfg.Progression,
		inventory:   cfg.Inventory,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
	}
}

// Routes builds the chi router for the API.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/characters", func(r chi.Router) {
			r.Get("/", h.listCharacters)
			r.Post("/", h.createCharacter)
			r.Get("/{characterID}", h.getCharacter)
			r.Put("/{characterID}", h.updateCharacter)
			r.Delete("/{characterID}", h.deleteCharacter)
		})

		r.Route("/quests", func(r chi.Router) {
			r.Get("/", h.listQuests)
			r.Post("/", h.createQuest)
			r.Get("/{questID}", h.getQuest)
			r.Put("/{questID}", h.updateQuest)
			r.Delete("/{questID}", h.deleteQuest)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", h.listItems)
			r.Post("/", h.createItem)
			r.Get("/{itemID}", h.getItem)
			r.Put("/{itemID}", h.updateItem)
			r.Delete("/{itemID}", h.deleteItem)
		})

		// Player routes resolve identity from the X-Player-ID header.
		r.Route("/player", func(r chi.Router) {
			r.Use(RequirePlayerID)

			r.Get("/characters", h.availableCharacters)
			r.Get("/characters/owned", h.ownedCharacters)
			r.Get("/characters/selected", h.selectedCharacter)
			r.Post("/characters/{characterID}/select", h.selectCharacter)
			r.Delete("/characters/{characterID}", h.removeCharacter)
			r.Get("/characters/{characterID}/completions", h.characterCompletions)
			r.Get("/characters/{characterID}/inventory", h.characterInventory)

			r.Post("/quests/{questID}/attempt", h.attemptQuest)
			r.Get("/quests/{questID}/status", h.questStatus)

			r.Get("/completions", h.listCompletions)
			r.Delete("/completions/{completionID}", h.deleteCompletion)
		})
	})

	return r
}
