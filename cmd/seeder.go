package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/absence-request/internal"
	"github.com/frahmantamala/absence-request/internal/activity"
	activityPostgres "github.com/frahmantamala/absence-request/internal/activity/postgres"
	"github.com/frahmantamala/absence-request/internal/auth"
	"github.com/frahmantamala/absence-request/internal/user"
	userPostgres "github.com/frahmantamala/absence-request/internal/user/postgres"
	"github.com/frahmantamala/absence-request/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	seedStaffEmail    string
	seedStaffPassword string
	seedStaffName     string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a staff account and activity categories",
	Long:  `Seed the database with the default staff account and the activity category catalogue. Existing rows are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		lg := logger.L()

		db, gormDB, err := initDB(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx, cancel := internal.WithTimeout(context.Background(), 0)
		defer cancel()

		userRepo := userPostgres.NewUserRepository(gormDB)
		_, err = userRepo.FindByEmail(ctx, seedStaffEmail)
		switch {
		case err == nil:
			lg.Info("staff account already exists", "email", seedStaffEmail)
		case !errors.Is(err, user.ErrNotFound):
			return fmt.Errorf("look up staff account: %w", err)
		default:
			roleID := int(user.RoleStaff)
			svc := user.NewService(userRepo, auth.NewBcryptHasher(cfg.Security.BCryptCost), lg)
			if _, err := svc.Register(ctx, user.RegisterDTO{
				Email:    seedStaffEmail,
				Password: seedStaffPassword,
				Name:     seedStaffName,
				RoleID:   &roleID,
			}); err != nil {
				return fmt.Errorf("seed staff account: %w", err)
			}
			lg.Info("seeded staff account", "email", seedStaffEmail)
		}

		activityService := activity.NewService(activityPostgres.NewActivityRepository(gormDB), lg)
		for _, c := range activity.DefaultCategories {
			created, err := activityService.EnsureCategory(ctx, c.Name, c.Description)
			if err != nil {
				return fmt.Errorf("seed activity %s: %w", c.Name, err)
			}
			if created {
				lg.Info("seeded activity category", "name", c.Name)
			}
		}

		lg.Info("seeding complete")
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedStaffEmail, "staff-email", "staff@example.com", "email of the seeded staff account")
	seedCmd.Flags().StringVar(&seedStaffPassword, "staff-password", "Staff1234", "password of the seeded staff account")
	seedCmd.Flags().StringVar(&seedStaffName, "staff-name", "教員", "display name of the seeded staff account")
}
