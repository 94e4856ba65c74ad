// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package api

import (
	"net/http"
	"time"

	"github.com/questline/questline/internal/catalog"
)

type characterPayload struct {
	Name             string `json:"name" validate:"required,max=100"`
	Class            string `json:"class" validate:"required,max=100"`
	ImageURL         string `json:"image_url" validate:"omitempty,url"`
	BaseStrength     int    `json:"base_strength" validate:"gte=0"`
	BaseAgility      int    `json:"base_agility" validate:"gte=0"`
	BaseIntelligence int    `json:"base_intelligence" validate:"gte=0"`
	BaseHealth       int    `json:"base_health" validate:"gte=0"`
	BaseAttackPower  int    `json:"base_attack_power" validate:"gte=0"`
}

type characterResponse struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Class            string    `json:"class"`
	ImageURL         string    `json:"image_url"`
	BaseStrength     int       `json:"base_strength"`
	BaseAgility      int       `json:"base_agility"`
	BaseIntelligence int       `json:"base_intelligence"`
	BaseHealth       int       `json:"base_health"`
	BaseAttackPower  int       `json:"base_attack_power"`
	CreatedAt        time.Time `json:"created_at"`
}

func (p *characterPayload) toEntity(id int64) *catalog.Character {
	return &catalog.Character{
		ID:               id,
		Name:             p.Name,
		Class:            p.Class,
		ImageURL:         p.ImageURL,
		BaseStrength:     p.BaseStrength,
		BaseAgility:      p.BaseAgility,
		BaseIntelligence: p.BaseIntelligence,
		BaseHealth:       p.BaseHealth,
		BaseAttackPower:  p.BaseAttackPower,
	}
}

func newCharacterResponse(char *catalog.Character) characterResponse {
	return characterResponse{
		ID:               char.ID,
		Name:             char.Name,
		Class:            char.Class,
		ImageURL:         char.ImageURL,
		BaseStrength:     char.BaseStrength,
		BaseAgility:      char.BaseAgility,
		BaseIntelligence: char.BaseIntelligence,
		BaseHealth:       char.BaseHealth,
		BaseAttackPower:  char.BaseAttackPower,
		CreatedAt:        char.CreatedAt,
	}
}

type questPayload struct {
	Title            string `json:"title" validate:"required,max=100"`
	Description      string `json:"description" validate:"max=2000"`
	RequiredLevel    int    `json:"required_level" validate:"gte=1"`
	ExperienceReward int64  `json:"experience_reward" validate:"gte=0"`
	GoldReward       int64  `json:"gold_reward" validate:"gte=0"`
	ItemRewardID     *int64 `json:"item_reward_id" validate:"omitempty,gt=0"`
	Repeatable       bool   `json:"repeatable"`
}

type questResponse struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	RequiredLevel    int       `json:"required_level"`
	ExperienceReward int64     `json:"experience_reward"`
	GoldReward       int64     `json:"gold_reward"`
	ItemRewardID     *int64    `json:"item_reward_id,omitempty"`
	Repeatable       bool      `json:"repeatable"`
	CreatedAt        time.Time `json:"created_at"`
}

func (p *questPayload) toEntity(id int64) *catalog.Quest {
	return &catalog.Quest{
		ID:               id,
		Title:            p.Title,
		Description:      p.Description,
		RequiredLevel:    p.RequiredLevel,
		ExperienceReward: p.ExperienceReward,
		GoldReward:       p.GoldReward,
		ItemRewardID:     p.ItemRewardID,
		Repeatable:       p.Repeatable,
	}
}

func newQuestResponse(quest *catalog.Quest) questResponse {
	return questResponse{
		ID:               quest.ID,
		Title:            quest.Title,
		Description:      quest.Description,
		RequiredLevel:    quest.RequiredLevel,
		ExperienceReward: quest.ExperienceReward,
		GoldReward:       quest.GoldReward,
		ItemRewardID:     quest.ItemRewardID,
		Repeatable:       quest.Repeatable,
		CreatedAt:        quest.CreatedAt,
	}
}

type itemPayload struct {
	Name          string `json:"name" validate:"required,max=100"`
	Type          string `json:"type" validate:"required,max=100"`
	Description   string `json:"description" validate:"max=2000"`
	Value         int    `json:"value" validate:"gte=0"`
	AttackBonus   int    `json:"attack_bonus" validate:"gte=0"`
	DefenseBonus  int    `json:"defense_bonus" validate:"gte=0"`
	HealthRestore int    `json:"health_restore" validate:"gte=0"`
}

type itemResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Description   string    `json:"description"`
	Value         int       `json:"value"`
	AttackBonus   int       `json:"attack_bonus"`
	DefenseBonus  int       `json:"defense_bonus"`
	HealthRestore int       `json:"health_restore"`
	CreatedAt     time.Time `json:"created_at"`
}

func (p *itemPayload) toEntity(id int64) *catalog.Item {
	return &catalog.Item{
		ID:            id,
		Name:          p.Name,
		Type:          p.Type,
		Description:   p.Description,
		Value:         p.Value,
		AttackBonus:   p.AttackBonus,
		DefenseBonus:  p.DefenseBonus,
		HealthRestore: p.HealthRestore,
	}
}

func newItemResponse(item *catalog.Item) itemResponse {
	return itemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Type:          item.Type,
		Description:   item.Description,
		Value:         item.Value,
		AttackBonus:   item.AttackBonus,
		DefenseBonus:  item.DefenseBonus,
		HealthRestore: item.HealthRestore,
		CreatedAt:     item.CreatedAt,
	}
}

type createdResponse struct {
	ID int64 `json:"id"`
}

func (h *Handler) listCharacters(w http.ResponseWriter, r *http.Request) {
	chars, err := h.catalog.ListCharacters(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	out := make([]characterResponse, 0, len(chars))
	for _, char := range chars {
		out = append(out, newCharacterResponse(char))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "characterID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	char, err := h.catalog.GetCharacter(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCharacterResponse(char))
}

func (h *Handler) createCharacter(w http.ResponseWriter, r *http.Request) {
	var payload characterPayload
	if err := h.decodeJSON(r, &payload); err != nil {
		h.respondError(w, r, err)
		return
	}
	id, err := h.catalog.CreateCharacter(r.Context(), payload.toEntity(0))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *Handler) updateCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "characterID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var payload characterPayload
	if err := h.decodeJSON(r, &payload); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.catalog.UpdateCharacter(r.Context(), payload.toEntity(id)); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) deleteCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "characterID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.catalog.DeleteCharacter(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) listQuests(w http.ResponseWriter, r *http.Request) {
	quests, err := h.catalog.ListQuests(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	out := make([]questResponse, 0, len(quests))
	for _, quest := range quests {
		out = append(out, newQuestResponse(quest))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getQuest(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "questID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	quest, err := h.catalog.GetQuest(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newQuestResponse(quest))
}

func (h *Handler) createQuest(w http.ResponseWriter, r *http.Request) {
	var payload questPayload
	if err := h.decodeJSON(r, &payload); err != nil {
		h.respondError(w, r, err)
		return
	}
	id, err := h.catalog.CreateQuest(r.Context(), payload.toEntity(0))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *Handler) updateQuest(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "questID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var payload questPayload
	if err := h.decodeJSON(r, &payload); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.catalog.UpdateQuest(r.Context(), payload.toEntity(id)); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) deleteQuest(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "questID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.catalog.DeleteQuest(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListItems(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, newItemResponse(item))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "itemID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	item, err := h.catalog.GetItem(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newItemResponse(item))
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var payload itemPayload
	if err := h.decodeJSON(r, &payload); err != nil {
		h.respondError(w, r, err)
		return
	}
	id, err := h.catalog.CreateItem(r.Context(), payload.toEntity(0))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "itemID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var payload itemPayload
	if err := h.decodeJSON(r, &payload); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.catalog.UpdateItem(r.Context(), payload.toEntity(id)); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "itemID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.catalog.DeleteItem(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
