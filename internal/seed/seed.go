package seed

import (
	"fmt"
	"log"
	"os"

	"ripple/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers            int  `yaml:"users"`
	ThoughtsPerUser     int  `yaml:"thoughtsPerUser"`
	ReactionsPerThought int  `yaml:"reactionsPerThought"`
	FriendsPerUser      int  `yaml:"friendsPerUser"`
	ShouldClean         bool `yaml:"clean"`
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users, %d thoughts each...",
		opts.NumUsers, opts.ThoughtsPerUser)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	thoughts := make([]*models.Thought, 0, opts.NumUsers*opts.ThoughtsPerUser)
	for _, user := range users {
		for i := 0; i < opts.ThoughtsPerUser; i++ {
			thought, err := factory.CreateThought(user)
			if err != nil {
				return fmt.Errorf("failed to create thought: %w", err)
			}
			thoughts = append(thoughts, thought)
		}
	}
	log.Printf("Created %d thoughts", len(thoughts))

	for _, thought := range thoughts {
		for i := 0; i < opts.ReactionsPerThought; i++ {
			reactor := users[factory.rng.Intn(len(users))]
			if err := factory.AddReaction(thought, reactor); err != nil {
				return fmt.Errorf("failed to add reaction: %w", err)
			}
		}
	}

	for _, user := range users {
		for i := 0; i < opts.FriendsPerUser; i++ {
			friend := users[factory.rng.Intn(len(users))]
			if friend.ID == user.ID {
				continue
			}
			if err := factory.Befriend(user, friend); err != nil {
				return fmt.Errorf("failed to create friendship: %w", err)
			}
		}
	}

	log.Println("Database seeding completed")
	return nil
}

// RunProfile loads a YAML seed profile and runs the seeder with it.
func RunProfile(db *gorm.DB, path string) error {
	opts, err := LoadProfile(path)
	if err != nil {
		return err
	}
	return Seed(db, opts)
}

// LoadProfile reads seeding options from a YAML file.
func LoadProfile(path string) (Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read seed profile: %w", err)
	}

	var opts Options
	if err := yaml.Unmarshal(raw, &opts); err != nil {
		return Options{}, fmt.Errorf("parse seed profile: %w", err)
	}
	if opts.NumUsers <= 0 {
		return Options{}, fmt.Errorf("seed profile %s: users must be positive", path)
	}
	return opts, nil
}

func clearData(db *gorm.DB) error {
	if err := db.Exec("DELETE FROM thoughts").Error; err != nil {
		return err
	}
	return db.Exec("DELETE FROM users").Error
}
