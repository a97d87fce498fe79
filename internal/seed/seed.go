// Package seed populates the database with development data.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"retroexchange/internal/models"
)

var systems = []string{
	"NES", "SNES", "Sega Genesis", "Game Boy", "PlayStation",
	"Nintendo 64", "Sega Saturn", "Atari 2600", "Dreamcast",
}

var conditions = []models.Condition{
	models.ConditionMint, models.ConditionGood, models.ConditionFair, models.ConditionPoor,
}

// Seeder creates demo users, games, and pending offers.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll removes all seeded records. Offers go first so foreign keys
// never dangle mid-clean.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{&models.TradeOffer{}, &models.Game{}, &models.User{}} {
		if err := s.db.Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// Users creates numUsers fake users, all sharing the given password.
func (s *Seeder) Users(numUsers int, password string) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user := models.User{
			Name:          gofakeit.Name(),
			Email:         strings.ToLower(gofakeit.Email()),
			PasswordHash:  string(hashed),
			StreetAddress: gofakeit.Street(),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))
	return users, nil
}

// Games creates up to gamesPerUser games for each user.
func (s *Seeder) Games(users []models.User, gamesPerUser int) ([]models.Game, error) {
	var games []models.Game
	for _, user := range users {
		n := 1 + rand.Intn(gamesPerUser)
		for i := 0; i < n; i++ {
			prev := rand.Intn(5)
			game := models.Game{
				OwnerID:        user.ID,
				Name:           gofakeit.ProductName(),
				Publisher:      gofakeit.Company(),
				YearPublished:  1970 + rand.Intn(40),
				System:         systems[rand.Intn(len(systems))],
				Condition:      conditions[rand.Intn(len(conditions))],
				PreviousOwners: &prev,
			}
			if err := s.db.Create(&game).Error; err != nil {
				return nil, fmt.Errorf("creating game for user %d: %w", user.ID, err)
			}
			games = append(games, game)
		}
	}
	log.Printf("Created %d games", len(games))
	return games, nil
}

// Offers creates numOffers pending offers between random game pairs with
// different owners.
func (s *Seeder) Offers(games []models.Game, numOffers int) error {
	if len(games) < 2 {
		return nil
	}

	created := 0
	for attempts := 0; created < numOffers && attempts < numOffers*10; attempts++ {
		requested := games[rand.Intn(len(games))]
		offered := games[rand.Intn(len(games))]
		if requested.OwnerID == offered.OwnerID {
			continue
		}

		offer := models.TradeOffer{
			RequestedGameID: requested.ID,
			OfferedGameID:   offered.ID,
			OffererUserID:   offered.OwnerID,
			Status:          models.OfferPending,
		}
		if err := s.db.Create(&offer).Error; err != nil {
			return fmt.Errorf("creating offer: %w", err)
		}
		created++
	}
	log.Printf("Created %d offers", created)
	return nil
}
