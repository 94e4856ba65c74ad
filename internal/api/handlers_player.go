// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package api

import (
	"net/http"
	"time"

	"github.com/questline/questline/internal/inventory"
	"github.com/questline/questline/internal/progression"
)

type progressResponse struct {
	CharacterID         int64  `json:"character_id"`
	Name                string `json:"name"`
	Class               string `json:"class"`
	ImageURL            string `json:"image_url"`
	Level               int    `json:"level"`
	Experience          int64  `json:"experience"`
	Gold                int64  `json:"gold"`
	Health              int    `json:"health"`
	AttackPower         int    `json:"attack_power"`
	NextLevelExperience int64  `json:"next_level_experience"`
	Owned               bool   `json:"owned"`
	Selected            bool   `json:"selected"`
}

func newProgressResponse(view *progression.CharacterProgressView) progressResponse {
	return progressResponse{
		CharacterID:         view.CharacterID,
		Name:                view.Name,
		Class:               view.Class,
		ImageURL:            view.ImageURL,
		Level:               view.Level,
		Experience:          view.Experience,
		Gold:                view.Gold,
		Health:              view.Health,
		AttackPower:         view.AttackPower,
		NextLevelExperience: view.NextLevelExperience,
		Owned:               view.Owned,
		Selected:            view.Selected,
	}
}

func newProgressResponses(views []*progression.CharacterProgressView) []progressResponse {
	out := make([]progressResponse, 0, len(views))
	for _, view := range views {
		out = append(out, newProgressResponse(view))
	}
	return out
}

type attemptResponse struct {
	Success          bool  `json:"success"`
	RequiredLevel    int   `json:"required_level,omitempty"`
	ExperienceGained int64 `json:"experience_gained"`
	GoldGained       int64 `json:"gold_gained"`
	LeveledUp        bool  `json:"leveled_up"`
	NewLevel         int   `json:"new_level"`
	AlreadyCompleted bool  `json:"already_completed"`
}

type completionResponse struct {
	ID               string    `json:"id"`
	CharacterID      int64     `json:"character_id"`
	QuestID          int64     `json:"quest_id"`
	ExperienceGained int64     `json:"experience_gained"`
	GoldGained       int64     `json:"gold_gained"`
	CompletedAt      time.Time `json:"completed_at"`
}

func newCompletionResponses(completions []*progression.QuestCompletion) []completionResponse {
	out := make([]completionResponse, 0, len(completions))
	for _, c := range completions {
		out = append(out, completionResponse{
			ID:               c.ID.String(),
			CharacterID:      c.CharacterID,
			QuestID:          c.QuestID,
			ExperienceGained: c.ExperienceGained,
			GoldGained:       c.GoldGained,
			CompletedAt:      c.CompletedAt,
		})
	}
	return out
}

type questStatusResponse struct {
	QuestID      int64   `json:"quest_id"`
	Completed    bool    `json:"completed"`
	Completions  int     `json:"completions"`
	CharacterIDs []int64 `json:"character_ids,omitempty"`
}

type ownedItemResponse struct {
	ItemID        int64     `json:"item_id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Description   string    `json:"description"`
	Value         int       `json:"value"`
	AttackBonus   int       `json:"attack_bonus"`
	DefenseBonus  int       `json:"defense_bonus"`
	HealthRestore int       `json:"health_restore"`
	Quantity      int       `json:"quantity"`
	AcquiredAt    time.Time `json:"acquired_at"`
}

func newOwnedItemResponses(items []*inventory.OwnedItem) []ownedItemResponse {
	out := make([]ownedItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ownedItemResponse{
			ItemID:        item.ItemID,
			Name:          item.Name,
			Type:          item.Type,
			Description:   item.Description,
			Value:         item.Value,
			AttackBonus:   item.AttackBonus,
			DefenseBonus:  item.DefenseBonus,
			HealthRestore: item.HealthRestore,
			Quantity:      item.Quantity,
			AcquiredAt:    item.AcquiredAt,
		})
	}
	return out
}

type removalResponse struct {
	WasSelected bool `json:"was_selected"`
}

func (h *Handler) availableCharacters(w http.ResponseWriter, r *http.Request) {
	views, err := h.progression.GetAvailableCharacters(r.Context(), playerIDFrom(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProgressResponses(views))
}

func (h *Handler) ownedCharacters(w http.ResponseWriter, r *http.Request) {
	views, err := h.progression.GetOwnedCharacters(r.Context(), playerIDFrom(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProgressResponses(views))
}

func (h *Handler) selectedCharacter(w http.ResponseWriter, r *http.Request) {
	view, err := h.progression.GetSelectedCharacter(r.Context(), playerIDFrom(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProgressResponse(view))
}

func (h *Handler) selectCharacter(w http.ResponseWriter, r *http.Request) {
	characterID, err := idParam(r, "characterID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	view, err := h.progression.SelectCharacter(r.Context(), playerIDFrom(r.Context()), characterID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProgressResponse(view))
}

func (h *Handler) removeCharacter(w http.ResponseWriter, r *http.Request) {
	characterID, err := idParam(r, "characterID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	wasSelected, err := h.progression.RemoveOwnedCharacter(r.Context(), playerIDFrom(r.Context()), characterID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, removalResponse{WasSelected: wasSelected})
}

func (h *Handler) characterCompletions(w http.ResponseWriter, r *http.Request) {
	characterID, err := idParam(r, "characterID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	completions, err := h.progression.ListCharacterCompletions(r.Context(), playerIDFrom(r.Context()), characterID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCompletionResponses(completions))
}

func (h *Handler) characterInventory(w http.ResponseWriter, r *http.Request) {
	characterID, err := idParam(r, "characterID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	items, err := h.inventory.ListForCharacter(r.Context(), playerIDFrom(r.Context()), characterID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newOwnedItemResponses(items))
}

// attemptQuest resolves the character from the request body.
type attemptPayload struct {
	CharacterID int64 `json:"character_id" validate:"required,gt=0"`
}

func (h *Handler) attemptQuest(w http.ResponseWriter, r *http.Request) {
	questID, err := idParam(r, "questID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var payload attemptPayload
	if err := h.decodeJSON(r, &payload); err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.progression.AttemptQuest(r.Context(), playerIDFrom(r.Context()), payload.CharacterID, questID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, attemptResponse{
		Success:          result.Success,
		RequiredLevel:    result.RequiredLevel,
		ExperienceGained: result.ExperienceGained,
		GoldGained:       result.GoldGained,
		LeveledUp:        result.LeveledUp,
		NewLevel:         result.NewLevel,
		AlreadyCompleted: result.AlreadyCompleted,
	})
}

func (h *Handler) questStatus(w http.ResponseWriter, r *http.Request) {
	questID, err := idParam(r, "questID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	status, err := h.progression.GetQuestStatus(r.Context(), playerIDFrom(r.Context()), questID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, questStatusResponse{
		QuestID:      status.QuestID,
		Completed:    status.Completed,
		Completions:  status.Completions,
		CharacterIDs: status.CharacterIDs,
	})
}

func (h *Handler) listCompletions(w http.ResponseWriter, r *http.Request) {
	completions, err := h.progression.ListCompletions(r.Context(), playerIDFrom(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCompletionResponses(completions))
}

func (h *Handler) deleteCompletion(w http.ResponseWriter, r *http.Request) {
	completionID, err := ulidParam(r, "completionID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.progression.DeleteCompletion(r.Context(), playerIDFrom(r.Context()), completionID); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
