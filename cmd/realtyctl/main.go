// realtyctl bundles the operational chores that do not belong in the API
// server: schema migration and seeding the first admin account.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"realtychance/internal/config"
	"realtychance/internal/models"
	"realtychance/internal/repositories"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	config.LoadEnv()

	rootCmd := &cobra.Command{
		Use:   "realtyctl",
		Short: "RealtyChance operations tool",
	}

	rootCmd.AddCommand(
		migrateCmd(),
		seedAdminCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the schema to the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cleanup, err := openDB()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := repositories.Migrate(db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			log.Println("✅ Schema migrated")
			return nil
		},
	}
}

func seedAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the admin account from ADMIN_* environment variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			adminEmail := os.Getenv("ADMIN_EMAIL")
			adminPassword := os.Getenv("ADMIN_PASSWORD")
			adminPhone := os.Getenv("ADMIN_PHONE")

			if adminEmail == "" || adminPassword == "" || adminPhone == "" {
				return errors.New("ADMIN_EMAIL, ADMIN_PASSWORD, and ADMIN_PHONE must be set in environment")
			}

			db, cleanup, err := openDB()
			if err != nil {
				return err
			}
			defer cleanup()

			var existing models.User
			if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
				log.Println("Admin user already exists")
				return nil
			}

			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			admin := models.User{
				Email:           adminEmail,
				Password:        string(hashedPassword),
				Phone:           adminPhone,
				FullName:        "Administrator",
				Role:            models.RoleAdmin,
				IsStaff:         true,
				IsPhoneVerified: true,
				TokenVersion:    1,
			}

			if err := db.Create(&admin).Error; err != nil {
				return fmt.Errorf("failed to create admin user: %w", err)
			}

			if repositories.RedisClient != nil {
				repositories.RedisClient.Del(repositories.RedisCtx,
					repositories.GetUserCacheKeyByEmail(adminEmail),
					repositories.GetUserCacheKeyByPhone(adminPhone),
				)
			}

			log.Println("✅ Admin account created successfully!")
			return nil
		},
	}
}

func openDB() (*gorm.DB, func(), error) {
	if err := repositories.InitDB(); err != nil {
		return nil, func() {}, fmt.Errorf("failed to initialize database: %w", err)
	}

	cleanup := func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Printf("⚠️ Failed to close PostgreSQL connection: %v", err)
				}
			}
		}
		if repositories.RedisClient != nil {
			if err := repositories.RedisClient.Close(); err != nil {
				log.Printf("⚠️ Failed to close Redis connection: %v", err)
			}
		}
	}

	return repositories.DB, cleanup, nil
}
