package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"instime/cmd/internal/config"
	"instime/cmd/internal/domain/database"
	"instime/cmd/internal/domain/database/repository"
	"instime/cmd/internal/domain/entity"
	"instime/cmd/internal/utils"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	seedNames  = []string{"Bob", "Bill", "Sam", "Sally", "Tim", "Rob"}
	seedTitles = []string{"Dishes", "Laundry", "Vacuum Living Room", "Walk Dog", "Make Dinner", "Learn Boxing"}
)

var seedCount int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the database with demo users, freetimes, tasks and blocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		config.SetupLogging(cfg)

		db, err := database.Init(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		return seed(cmd.Context(), db, seedCount)
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 24, "number of freetimes and tasks to create")
}

// seed creates one user per demo name (password "<name>pass1") and then
// count freetimes and tasks spread randomly across them. Blocks only ever
// link a task to a freetime of the same user.
func seed(ctx context.Context, db *gorm.DB, count int) error {
	userRepo := repository.NewUserRepository(db)
	freetimeRepo := repository.NewFreetimeRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	users := make([]*entity.User, 0, len(seedNames))
	for _, name := range seedNames {
		email := strings.ToLower(name) + "@example.com"
		existing, err := userRepo.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			users = append(users, existing)
			continue
		}

		hash, err := utils.HashPassword(strings.ToLower(name) + "pass1")
		if err != nil {
			return err
		}
		user := &entity.User{Name: name, Email: email, Password: hash}
		if err := userRepo.Save(ctx, user); err != nil {
			return err
		}
		users = append(users, user)
	}

	freetimes := make(map[int][]*entity.Freetime)
	for range count {
		user := users[rand.IntN(len(users))]
		start := randomTime()
		freetime := &entity.Freetime{
			UserID:    user.ID,
			StartTime: start,
			EndTime:   start.Add(time.Duration(30+rand.IntN(180)) * time.Minute),
		}
		if err := freetimeRepo.Save(ctx, freetime); err != nil {
			return err
		}
		freetimes[user.ID] = append(freetimes[user.ID], freetime)
	}

	for range count {
		user := users[rand.IntN(len(users))]
		title := seedTitles[rand.IntN(len(seedTitles))]
		task := &entity.Task{
			Title:       title,
			Description: fmt.Sprintf("%s description for %s... more stuff & instructions", title, user.Name),
			Status:      entity.Statuses[rand.IntN(len(entity.Statuses))],
			Priority:    rand.IntN(entity.MaxPriority + 1),
		}
		if rand.IntN(4) > 0 {
			estimate := 15 * (1 + rand.IntN(16))
			task.TimeEstimate = &estimate
		}
		task.UserID = user.ID
		if err := taskRepo.Save(ctx, task); err != nil {
			return err
		}

		owned := freetimes[user.ID]
		if len(owned) == 0 {
			continue
		}
		picked := make([]*entity.Freetime, 0, 2)
		for range rand.IntN(3) {
			picked = append(picked, owned[rand.IntN(len(owned))])
		}
		if err := taskRepo.ReplaceFreetimes(ctx, task, dedupe(picked)); err != nil {
			return err
		}
	}

	log.Infof("seeded %d users, %d freetimes and %d tasks", len(users), count, count)
	return nil
}

func randomTime() time.Time {
	return time.Date(
		2020+rand.IntN(11),
		time.Month(1+rand.IntN(12)),
		1+rand.IntN(28),
		rand.IntN(24),
		rand.IntN(60),
		0, 0, time.UTC,
	)
}

func dedupe(freetimes []*entity.Freetime) []*entity.Freetime {
	seen := make(map[int]bool, len(freetimes))
	out := freetimes[:0]
	for _, f := range freetimes {
		if !seen[f.ID] {
			seen[f.ID] = true
			out = append(out, f)
		}
	}
	return out
}
