package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fittrack/internal/repository/postgres"
	"fittrack/internal/seed"
	"fittrack/internal/service"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := loadConfigAndDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := postgres.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		logrus.Info("schema migrated")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the muscle group and exercise catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := loadConfigAndDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := postgres.Migrate(cmd.Context(), db); err != nil {
			return err
		}

		seeder := seed.NewSeeder(
			postgres.NewMuscleGroupRepository(db),
			postgres.NewExerciseRepository(db),
			postgres.NewChallengeRepository(db),
		)
		count, err := seeder.SeedCatalog(cmd.Context())
		if err != nil {
			return err
		}
		logrus.WithField("exercises", count).Info("catalog populated")
		return nil
	},
}

var challengesCmd = &cobra.Command{
	Use:   "challenges",
	Short: "Generate workout challenges from the exercise catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := loadConfigAndDB()
		if err != nil {
			return err
		}
		defer db.Close()

		seeder := seed.NewSeeder(
			postgres.NewMuscleGroupRepository(db),
			postgres.NewExerciseRepository(db),
			postgres.NewChallengeRepository(db),
		)
		created, err := seeder.GenerateChallenges(cmd.Context())
		if err != nil {
			return err
		}
		logrus.WithField("challenges", created).Info("challenge generation finished")
		return nil
	},
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the reminder sweeps once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := loadConfigAndDB()
		if err != nil {
			return err
		}
		defer db.Close()

		reminderService := service.NewReminderService(
			postgres.NewReminderRepository(db),
			postgres.NewRoutineRepository(db),
			postgres.NewWorkoutRepository(db),
			postgres.NewUserRepository(db),
			service.LogNotifier{},
		)

		now := time.Now().UTC()
		created, err := reminderService.GenerateMissedExerciseReminders(cmd.Context(), now)
		if err != nil {
			return err
		}
		sent, err := reminderService.Sweep(cmd.Context(), now)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"created": created, "sent": sent}).Info("reminder run finished")
		return nil
	},
}
