// Command main runs the database seeder for Ripple.
package main

import (
	"flag"
	"log"

	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 25, "Number of users to create")
	thoughtsPerUser := flag.Int("thoughts", 4, "Number of thoughts per user")
	reactionsPerThought := flag.Int("reactions", 2, "Number of reactions per thought")
	friendsPerUser := flag.Int("friends", 3, "Number of friendships per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	profile := flag.String("profile", "", "YAML seed profile (overrides other flags)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *profile != "" {
		log.Printf("Applying profile: %s (ignoring other flags)", *profile)
		if err := seed.RunProfile(db, *profile); err != nil {
			log.Fatalf("Profile seeding failed: %v", err)
		}
	} else {
		err := seed.Seed(db, seed.Options{
			NumUsers:            *numUsers,
			ThoughtsPerUser:     *thoughtsPerUser,
			ReactionsPerThought: *reactionsPerThought,
			FriendsPerUser:      *friendsPerUser,
			ShouldClean:         *shouldClean,
		})
		if err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	}

	log.Println("All done! Your database is now populated with test data.")
}
