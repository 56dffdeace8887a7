// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"julie/internal/models"
	"julie/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data gets created.
type Options struct {
	Users        int
	ItemsPerUser int
	Password     string // plaintext password shared by every demo user
}

// DefaultOptions seeds a small but browsable demo wardrobe.
func DefaultOptions() Options {
	return Options{
		Users:        5,
		ItemsPerUser: 8,
		Password:     "demopass1",
	}
}

var clothingTypes = []string{"top", "bottom", "dress", "outerwear", "shoes", "accessory"}
var sizes = []string{"XS", "S", "M", "L", "XL"}
var seasons = []string{"Spring", "Summer", "Autumn", "Winter"}

// Run populates the database with demo users, profiles and wardrobe items.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	hashed, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	for i := 0; i < opts.Users; i++ {
		user := &models.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("demo%d+%s", i, gofakeit.Email()),
			Password: string(hashed),
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create demo user: %w", err)
		}

		profile := &models.Profile{
			UserID: user.ID,
			Height: fmt.Sprintf("%d", 150+r.Intn(45)),
			Chest:  fmt.Sprintf("%d", 80+r.Intn(35)),
			Weight: fmt.Sprintf("%d", 50+r.Intn(50)),
			Waist:  fmt.Sprintf("%d", 60+r.Intn(40)),
			Gender: gofakeit.RandomString([]string{"female", "male", "other"}),
			Age:    fmt.Sprintf("%d", 18+r.Intn(50)),
		}
		if err := db.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create demo profile: %w", err)
		}

		for j := 0; j < opts.ItemsPerUser; j++ {
			item := &models.WardrobeItem{
				UserID:             user.ID,
				OriginalImagePath:  fmt.Sprintf("image-%d-%s.jpg", time.Now().UnixMilli(), gofakeit.LetterN(8)),
				ProcessedImagePath: fmt.Sprintf("processed-%d-%s.png", time.Now().UnixMilli(), gofakeit.LetterN(8)),
				Brand:              gofakeit.Company(),
				ClothingType:       gofakeit.RandomString(clothingTypes),
				Size:               gofakeit.RandomString(sizes),
				Color:              gofakeit.Color(),
				Season:             gofakeit.RandomString(seasons),
				Description:        gofakeit.Sentence(6),
				CreatedAt:          time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
			}
			if err := db.Create(item).Error; err != nil {
				return fmt.Errorf("failed to create demo wardrobe item: %w", err)
			}
		}

		log.Printf("Seeded user %s (%s) with %d items", user.Name, user.Email, opts.ItemsPerUser)
	}

	// Touch the repositories once so listings warm up the cache path.
	wardrobeRepo := repository.NewWardrobeRepository(db)
	var firstUser models.User
	if err := db.First(&firstUser).Error; err == nil {
		if _, err := wardrobeRepo.ListByUser(context.Background(), firstUser.ID, repository.OrderInsertion); err != nil {
			log.Printf("warmup listing failed: %v", err)
		}
	}

	return nil
}
