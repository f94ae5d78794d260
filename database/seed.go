package database

import (
	"fmt"
	"log"
	"os"

	"github.com/campushire/placement-api/model"
	"github.com/campushire/placement-api/utils/auth"
	"gorm.io/gorm"
)

// RunSeeds creates the initial admin user from ADMIN_EMAIL and
// ADMIN_PASSWORD environment variables. Existing rows are left alone so
// the seeder is safe to run repeatedly.
func RunSeeds(db *gorm.DB) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin user creation")
		return nil
	}

	var existing model.User
	err := db.Where("email = ?", adminEmail).First(&existing).Error
	if err == nil {
		log.Printf("Admin user %s already exists, skipping", adminEmail)
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := model.User{
		Email:        adminEmail,
		PasswordHash: passwordHash,
		Name:         "Placement Cell Admin",
		Role:         model.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Printf("Created admin user %s", adminEmail)
	return nil
}
