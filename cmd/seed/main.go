// Command seed populates a development database with demo data.
package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"retroexchange/internal/config"
	"retroexchange/internal/database"
	"retroexchange/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	gamesPerUser := flag.Int("games", 4, "Maximum games per user")
	numOffers := flag.Int("offers", 30, "Number of pending offers to create")
	password := flag.String("password", "changeme-dev1", "Password shared by all seeded users")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.Users(*numUsers, *password)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}

	games, err := s.Games(users, *gamesPerUser)
	if err != nil {
		log.Fatalf("Game seeding failed: %v", err)
	}

	if err := s.Offers(games, *numOffers); err != nil {
		log.Fatalf("Offer seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
