package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"orphancare/internal/config"
	"orphancare/internal/db"
	"orphancare/internal/model"
	"orphancare/internal/repository"
)

// Seeds the bootstrap admin user from ADMIN_EMAIL / ADMIN_PASSWORD so the
// first operator can log in and manage staff accounts.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	existing, err := userRepo.FindByEmail(ctx, cfg.AdminEmail)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check admin user: %v", err)
	}
	if existing != nil {
		log.Printf("Admin user %s already exists, nothing to do", cfg.AdminEmail)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := &model.User{
		FirstName:    "System",
		LastName:     "Admin",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
		IsVerified:   true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Seed completed successfully, admin user: %s", cfg.AdminEmail)
}
