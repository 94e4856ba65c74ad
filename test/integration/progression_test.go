// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Questline Contributors

//go:build integration

package integration

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/questline/questline/internal/catalog"
	catalogpg "github.com/questline/questline/internal/catalog/postgres"
	"github.com/questline/questline/internal/inventory"
	inventorypg "github.com/questline/questline/internal/inventory/postgres"
	"github.com/questline/questline/internal/progression"
	progressionpg "github.com/questline/questline/internal/progression/postgres"
	"github.com/questline/questline/internal/store"
)

// testEnv holds the shared resources for one container-backed suite.
type testEnv struct {
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool

	catalog     *catalog.Service
	progression *progression.Service
	inventory   inventory.Repository

	warriorID int64
	mageID    int64
	swordID   int64

	cellarID  int64 // level 1, 1000 xp, 20 gold, sword reward
	caravanID int64 // level 2, 1500 xp, 50 gold
	banditID  int64 // level 4, 3000 xp, 150 gold
}

func setupEnv(ctx context.Context) *testEnv {
	env := &testEnv{}

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("questline_test"),
		postgres.WithUsername("questline"),
		postgres.WithPassword("questline"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	Expect(err).NotTo(HaveOccurred())
	env.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	Expect(err).NotTo(HaveOccurred())

	migrator, err := store.NewMigrator(connStr)
	Expect(err).NotTo(HaveOccurred())
	Expect(migrator.Up()).To(Succeed())
	Expect(migrator.Close()).To(Succeed())

	env.pool, err = store.NewPool(ctx, connStr)
	Expect(err).NotTo(HaveOccurred())

	env.catalog = catalog.NewService(catalog.ServiceConfig{
		Characters: catalogpg.NewCharacterRepository(env.pool),
		Quests:     catalogpg.NewQuestRepository(env.pool),
		Items:      catalogpg.NewItemRepository(env.pool),
	})
	inventoryRepo := inventorypg.NewRepository(env.pool)
	env.inventory = inventoryRepo
	env.progression = progression.NewService(progression.ServiceConfig{
		Characters:  progressionpg.NewPlayerCharacterRepository(env.pool),
		Completions: progressionpg.NewCompletionRepository(env.pool),
		Catalog:     env.catalog,
		Items:       inventoryRepo,
		Tx:          progressionpg.NewTransactor(env.pool),
	})

	env.seedCatalog(ctx)
	return env
}

func (env *testEnv) seedCatalog(ctx context.Context) {
	var err error
	env.swordID, err = env.catalog.CreateItem(ctx, &catalog.Item{
		Name:        "Rusty Sword",
		Type:        "weapon",
		Value:       5,
		AttackBonus: 2,
	})
	Expect(err).NotTo(HaveOccurred())

	env.warriorID, err = env.catalog.CreateCharacter(ctx, &catalog.Character{
		Name:            "Warrior",
		Class:           "Fighter",
		BaseStrength:    10,
		BaseAgility:     5,
		BaseHealth:      100,
		BaseAttackPower: 10,
	})
	Expect(err).NotTo(HaveOccurred())
	env.mageID, err = env.catalog.CreateCharacter(ctx, &catalog.Character{
		Name:             "Mage",
		Class:            "Caster",
		BaseStrength:     2,
		BaseIntelligence: 12,
		BaseHealth:       60,
		BaseAttackPower:  20,
	})
	Expect(err).NotTo(HaveOccurred())

	env.cellarID, err = env.catalog.CreateQuest(ctx, &catalog.Quest{
		Title:            "Clear the Cellar",
		RequiredLevel:    1,
		ExperienceReward: 1000,
		GoldReward:       20,
		ItemRewardID:     &env.swordID,
		Repeatable:       true,
	})
	Expect(err).NotTo(HaveOccurred())
	env.caravanID, err = env.catalog.CreateQuest(ctx, &catalog.Quest{
		Title:            "Escort the Caravan",
		RequiredLevel:    2,
		ExperienceReward: 1500,
		GoldReward:       50,
	})
	Expect(err).NotTo(HaveOccurred())
	env.banditID, err = env.catalog.CreateQuest(ctx, &catalog.Quest{
		Title:            "Slay the Bandit Chief",
		RequiredLevel:    4,
		ExperienceReward: 3000,
		GoldReward:       150,
	})
	Expect(err).NotTo(HaveOccurred())
}

func (env *testEnv) cleanup(ctx context.Context) {
	if env.pool != nil {
		env.pool.Close()
	}
	if env.container != nil {
		Expect(env.container.Terminate(ctx)).To(Succeed())
	}
}

// selectedCount reads the selection flag straight from the table, bypassing
// the service's self-repair.
func (env *testEnv) selectedCount(ctx context.Context, playerID string) int {
	var count int
	row := env.pool.QueryRow(ctx,
		"SELECT count(*) FROM player_characters WHERE player_id = $1 AND is_selected", playerID)
	Expect(row.Scan(&count)).To(Succeed())
	return count
}

var _ = Describe("Player progression", Ordered, func() {
	var (
		ctx context.Context
		env *testEnv
	)

	BeforeAll(func() {
		ctx = context.Background()
		env = setupEnv(ctx)
	})

	AfterAll(func() {
		env.cleanup(ctx)
	})

	Describe("quest ledger lifecycle", func() {
		const playerID = "player-ledger"

		It("auto-selects the first character a player touches", func() {
			view, err := env.progression.SelectCharacter(ctx, playerID, env.warriorID)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Selected).To(BeTrue())
			Expect(view.Level).To(Equal(1))
			Expect(view.Health).To(Equal(110))
			Expect(view.AttackPower).To(Equal(12))
			Expect(view.NextLevelExperience).To(Equal(int64(1000)))
		})

		It("levels the character up when a quest attempt succeeds", func() {
			result, err := env.progression.AttemptQuest(ctx, playerID, env.warriorID, env.cellarID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Success).To(BeTrue())
			Expect(result.ExperienceGained).To(Equal(int64(1000)))
			Expect(result.GoldGained).To(Equal(int64(20)))
			Expect(result.LeveledUp).To(BeTrue())
			Expect(result.NewLevel).To(Equal(2))
			Expect(result.AlreadyCompleted).To(BeFalse())

			view, err := env.progression.GetSelectedCharacter(ctx, playerID)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Level).To(Equal(2))
			Expect(view.Experience).To(Equal(int64(1000)))
			Expect(view.Gold).To(Equal(int64(20)))
			Expect(view.Health).To(Equal(120))
			Expect(view.AttackPower).To(Equal(14))
		})

		It("grants the quest's item reward into the character's inventory", func() {
			items, err := env.inventory.ListForCharacter(ctx, playerID, env.warriorID)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].ItemID).To(Equal(env.swordID))
			Expect(items[0].Name).To(Equal("Rusty Sword"))
			Expect(items[0].Quantity).To(Equal(1))
		})

		It("rewards repeat attempts and flags the prior completion", func() {
			result, err := env.progression.AttemptQuest(ctx, playerID, env.warriorID, env.cellarID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Success).To(BeTrue())
			Expect(result.AlreadyCompleted).To(BeTrue())
			Expect(result.LeveledUp).To(BeFalse())
			Expect(result.NewLevel).To(Equal(3))

			items, err := env.inventory.ListForCharacter(ctx, playerID, env.warriorID)
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].Quantity).To(Equal(2))
		})

		It("reports quest status across completions", func() {
			status, err := env.progression.GetQuestStatus(ctx, playerID, env.cellarID)
			Expect(err).NotTo(HaveOccurred())
			Expect(status.Completed).To(BeTrue())
			Expect(status.Completions).To(Equal(2))
			Expect(status.CharacterIDs).To(ConsistOf(env.warriorID))
		})

		It("gates quests above the character's level as a soft failure", func() {
			result, err := env.progression.AttemptQuest(ctx, playerID, env.warriorID, env.banditID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Success).To(BeFalse())
			Expect(result.RequiredLevel).To(Equal(4))
			Expect(result.NewLevel).To(Equal(3))

			completions, err := env.progression.ListCompletions(ctx, playerID)
			Expect(err).NotTo(HaveOccurred())
			Expect(completions).To(HaveLen(2))
		})

		It("reverses a completion by subtracting its rewards", func() {
			completions, err := env.progression.ListCompletions(ctx, playerID)
			Expect(err).NotTo(HaveOccurred())
			Expect(completions).To(HaveLen(2))

			Expect(env.progression.DeleteCompletion(ctx, playerID, completions[0].ID)).To(Succeed())

			view, err := env.progression.GetSelectedCharacter(ctx, playerID)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Experience).To(Equal(int64(1000)))
			Expect(view.Gold).To(Equal(int64(20)))
			Expect(view.Level).To(Equal(2))
		})

		It("returns the character to its starting state when the ledger empties", func() {
			completions, err := env.progression.ListCompletions(ctx, playerID)
			Expect(err).NotTo(HaveOccurred())
			Expect(completions).To(HaveLen(1))

			Expect(env.progression.DeleteCompletion(ctx, playerID, completions[0].ID)).To(Succeed())

			view, err := env.progression.GetSelectedCharacter(ctx, playerID)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Experience).To(Equal(int64(0)))
			Expect(view.Gold).To(Equal(int64(0)))
			Expect(view.Level).To(Equal(1))

			remaining, err := env.progression.ListCompletions(ctx, playerID)
			Expect(err).NotTo(HaveOccurred())
			Expect(remaining).To(BeEmpty())
		})
	})

	Describe("selection invariant", func() {
		const playerID = "player-selection"

		It("keeps at most one character selected across switches", func() {
			_, err := env.progression.SelectCharacter(ctx, playerID, env.warriorID)
			Expect(err).NotTo(HaveOccurred())
			view, err := env.progression.SelectCharacter(ctx, playerID, env.mageID)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Selected).To(BeTrue())

			Expect(env.selectedCount(ctx, playerID)).To(Equal(1))

			selected, err := env.progression.GetSelectedCharacter(ctx, playerID)
			Expect(err).NotTo(HaveOccurred())
			Expect(selected.CharacterID).To(Equal(env.mageID))
		})

		It("marks owned and unowned characters in the available list", func() {
			views, err := env.progression.GetAvailableCharacters(ctx, playerID)
			Expect(err).NotTo(HaveOccurred())

			byID := make(map[int64]bool, len(views))
			for _, v := range views {
				byID[v.CharacterID] = v.Owned
			}
			Expect(byID[env.warriorID]).To(BeTrue())
			Expect(byID[env.mageID]).To(BeTrue())
		})

		It("promotes the lowest remaining character when the selected one is removed", func() {
			wasSelected, err := env.progression.RemoveOwnedCharacter(ctx, playerID, env.mageID)
			Expect(err).NotTo(HaveOccurred())
			Expect(wasSelected).To(BeTrue())

			selected, err := env.progression.GetSelectedCharacter(ctx, playerID)
			Expect(err).NotTo(HaveOccurred())
			Expect(selected.CharacterID).To(Equal(env.warriorID))
			Expect(env.selectedCount(ctx, playerID)).To(Equal(1))
		})

		It("returns not found once the last character is removed", func() {
			wasSelected, err := env.progression.RemoveOwnedCharacter(ctx, playerID, env.warriorID)
			Expect(err).NotTo(HaveOccurred())
			Expect(wasSelected).To(BeTrue())

			_, err = env.progression.GetSelectedCharacter(ctx, playerID)
			Expect(err).To(MatchError(progression.ErrNotFound))
		})
	})
})
