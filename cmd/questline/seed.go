// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

package main

import (
	"context"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/questline/questline/internal/catalog"
	catalogpg "github.com/questline/questline/internal/catalog/postgres"
	"github.com/questline/questline/internal/config"
	"github.com/questline/questline/internal/store"
)

// Default timeout for seed command.
const defaultSeedTimeout = 30 * time.Second

// seedConfig holds configuration for the seed subcommand.
type seedConfig struct {
	timeout time.Duration
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	cfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog with starter definitions",
		Long: `Creates a starter set of character, item, and quest definitions.
This command is idempotent - a catalog that already has characters is
left untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, cfg)
		},
	}

	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")
	cmd.Flags().String("database.url", "", "PostgreSQL connection URL")

	return cmd
}

func runSeed(cmd *cobra.Command, cfg *seedConfig) error {
	serviceCfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	cmd.Println("Connecting to database...")
	pool, err := store.NewPool(ctx, serviceCfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := catalog.NewService(catalog.ServiceConfig{
		Characters: catalogpg.NewCharacterRepository(pool),
		Quests:     catalogpg.NewQuestRepository(pool),
		Items:      catalogpg.NewItemRepository(pool),
	})

	existing, err := svc.ListCharacters(ctx)
	if err != nil {
		return oops.Code("SEED_FAILED").Wrapf(err, "check existing catalog")
	}
	if len(existing) > 0 {
		cmd.Println("Catalog already seeded, skipping")
		return nil
	}

	swordID, err := svc.CreateItem(ctx, &catalog.Item{
		Name:        "Rusty Sword",
		Type:        "weapon",
		Description: "A well-worn blade. It has seen better days.",
		Value:       5,
		AttackBonus: 2,
	})
	if err != nil {
		return oops.Code("SEED_FAILED").Wrapf(err, "seed items")
	}
	potionID, err := svc.CreateItem(ctx, &catalog.Item{
		Name:          "Minor Healing Potion",
		Type:          "consumable",
		Description:   "Restores a small amount of health.",
		Value:         3,
		HealthRestore: 25,
	})
	if err != nil {
		return oops.Code("SEED_FAILED").Wrapf(err, "seed items")
	}

	characters := []*catalog.Character{
		{
			Name:             "Warrior",
			Class:            "Fighter",
			BaseStrength:     10,
			BaseAgility:      5,
			BaseIntelligence: 2,
			BaseHealth:       100,
			BaseAttackPower:  10,
		},
		{
			Name:             "Mage",
			Class:            "Caster",
			BaseStrength:     2,
			BaseAgility:      4,
			BaseIntelligence: 12,
			BaseHealth:       60,
			BaseAttackPower:  20,
		},
		{
			Name:             "Rogue",
			Class:            "Skirmisher",
			BaseStrength:     5,
			BaseAgility:      12,
			BaseIntelligence: 4,
			BaseHealth:       75,
			BaseAttackPower:  14,
		},
	}
	for _, char := range characters {
		if _, err := svc.CreateCharacter(ctx, char); err != nil {
			return oops.Code("SEED_FAILED").Wrapf(err, "seed character %s", char.Name)
		}
	}

	quests := []*catalog.Quest{
		{
			Title:            "Clear the Cellar",
			Description:      "Rats have overrun the tavern cellar. Deal with them.",
			RequiredLevel:    1,
			ExperienceReward: 1000,
			GoldReward:       20,
			ItemRewardID:     &swordID,
			Repeatable:       true,
		},
		{
			Title:            "Escort the Caravan",
			Description:      "Guard a merchant caravan on the north road.",
			RequiredLevel:    2,
			ExperienceReward: 1500,
			GoldReward:       50,
			ItemRewardID:     &potionID,
		},
		{
			Title:            "Slay the Bandit Chief",
			Description:      "The bandit camp in the hills has a price on its leader.",
			RequiredLevel:    4,
			ExperienceReward: 3000,
			GoldReward:       150,
		},
	}
	for _, quest := range quests {
		if _, err := svc.CreateQuest(ctx, quest); err != nil {
			return oops.Code("SEED_FAILED").Wrapf(err, "seed quest %s", quest.Title)
		}
	}

	cmd.Println("Catalog seeded successfully")
	return nil
}
