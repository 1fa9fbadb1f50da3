package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/mahmoud-sadrian/Bsc-project/internal/config"
	"github.com/mahmoud-sadrian/Bsc-project/internal/database"
	"github.com/mahmoud-sadrian/Bsc-project/internal/model"
	"github.com/mahmoud-sadrian/Bsc-project/internal/repository"
	"github.com/mahmoud-sadrian/Bsc-project/migrations"
	"github.com/mahmoud-sadrian/Bsc-project/pkg/auth"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Devices are never created through the API, so demo accounts get theirs here
var demoDevices = []string{"Bedroom Light", "Desk Fan", "Kitchen Heater"}

func main() {
	reset := flag.Bool("reset", false, "drop and recreate all tables before seeding")
	flag.Parse()

	// Load config
	cfg := config.Load()

	// Force DB logging off to avoid noise
	db, err := database.Open(cfg.DB, logger.Default.LogMode(logger.Silent))
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Println("✅ Connected to Database")

	if *reset {
		if err := resetSchema(db, cfg.DB); err != nil {
			log.Fatalf("❌ Reset failed: %v", err)
		}
	}
	if err := migrate(db, cfg.DB); err != nil {
		log.Fatalf("❌ %v", err)
	}

	// Common password for all users
	password := "password123"
	hashedPassword, err := auth.HashPassword(password, bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)

	log.Println("🌱 Seeding 3 users...")

	for i := 1; i <= 3; i++ {
		username := fmt.Sprintf("demo%d", i)

		user, err := userRepo.FindByUsername(ctx, username)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = &model.User{
				FirstName:     "Demo",
				LastName:      fmt.Sprintf("User %d", i),
				Username:      username,
				PasswordHash:  hashedPassword,
				AgreedToTerms: true,
			}
			if err := userRepo.Create(ctx, user); err != nil {
				log.Printf("❌ Failed to create user %s: %v", username, err)
				continue
			}
			log.Printf("✅ Created user: %s | Pass: %s", username, password)
		} else if err != nil {
			log.Printf("❌ Failed to look up user %s: %v", username, err)
			continue
		}

		seedDevices(ctx, deviceRepo, user)
	}

	log.Println("🎉 Seeding completed!")
}

func seedDevices(ctx context.Context, deviceRepo *repository.DeviceRepository, user *model.User) {
	existing, err := deviceRepo.ListByUser(ctx, user.ID)
	if err != nil {
		log.Printf("❌ Failed to list devices of %s: %v", user.Username, err)
		return
	}
	if len(existing) > 0 {
		return
	}

	for _, name := range demoDevices {
		device := &model.Device{
			UserID: user.ID,
			Name:   name,
			Status: model.DeviceStatusOff,
		}
		if err := deviceRepo.Create(ctx, device); err != nil {
			log.Printf("❌ Failed to create device %q: %v", name, err)
			continue
		}
		log.Printf("💡 Device #%d %q -> %s", device.ID, name, user.Username)
	}
}

func migrate(db *gorm.DB, cfg config.DBConfig) error {
	if cfg.Driver == config.DriverPostgres {
		err := migrations.Run(cfg.URL())
		if err == nil {
			return nil
		}
		log.Printf("⚠️  Migration warning: %v", err)
	}
	return database.AutoMigrate(db)
}

func resetSchema(db *gorm.DB, cfg config.DBConfig) error {
	if cfg.Driver == config.DriverPostgres {
		return migrations.Reset(cfg.URL())
	}

	// Reverse dependency order
	for i := len(database.Models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(database.Models[i]); err != nil {
			return err
		}
	}
	log.Println("🧹 Dropped all tables")
	return nil
}
