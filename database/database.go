// File: /database/database.go
package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"perfectspot-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Interest{},
		&models.Event{},
		&models.EventAttendee{},
		&models.Review{},
		&models.FriendRequest{},
		&models.Friendship{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addDatabaseConstraints(db); err != nil {
		return fmt.Errorf("failed to add database constraints: %w", err)
	}

	return nil
}

func addDatabaseConstraints(db *gorm.DB) error {
	// Belt-and-braces checks the unique indexes in the model tags don't cover.
	// Errors are logged, not fatal: the constraints may already exist, and not
	// every engine supports ALTER TABLE ADD CONSTRAINT.

	// A user cannot send a friend request to themselves
	if err := db.Exec("ALTER TABLE friend_requests ADD CONSTRAINT ck_friend_requests_no_self CHECK (from_user_id != to_user_id)").Error; err != nil {
		fmt.Printf("Warning: Could not add check constraint for friend_requests: %v\n", err)
	}

	// Friendship pairs are stored in canonical order, never self-referential
	if err := db.Exec("ALTER TABLE friendships ADD CONSTRAINT ck_friendships_ordered CHECK (user1_id < user2_id)").Error; err != nil {
		fmt.Printf("Warning: Could not add check constraint for friendships: %v\n", err)
	}

	return nil
}

// SeedData populates the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	interests := []models.Interest{
		{Name: "music"},
		{Name: "sports"},
		{Name: "food"},
		{Name: "art"},
		{Name: "tech"},
	}
	for _, interest := range interests {
		if err := db.Create(&interest).Error; err != nil {
			fmt.Printf("Warning: Could not create interest %s: %v\n", interest.Name, err)
		}
	}

	orgName := "Warsaw Concert Hall"
	testUsers := []models.User{
		{
			ID:              "user-1",
			Username:        "john_doe",
			Email:           "john@example.com",
			Password:        "$2a$10$dummy", // replaced by a real hash in real scenarios
			UserType:        models.UserTypeIndividual,
			IsEmailVerified: true,
		},
		{
			ID:               "user-2",
			Username:         "warsaw_concerts",
			Email:            "events@warsawconcerts.example.com",
			Password:         "$2a$10$dummy",
			UserType:         models.UserTypeOrganization,
			OrganizationName: &orgName,
			IsOrgVerified:    true,
			IsEmailVerified:  true,
		},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create test user %s: %v\n", user.Username, err)
		}
	}

	fmt.Println("Database seeded with test data")
	return nil
}
