package database

import (
	"errors"
	"fmt"

	"github.com/manav1309/manavinverse-create-verse/internal/domain"

	"gorm.io/gorm"
)

var defaultGenres = []domain.Genre{
	{Name: "reflection", DisplayOrder: 1},
	{Name: "nature", DisplayOrder: 2},
	{Name: "love", DisplayOrder: 3},
	{Name: "society", DisplayOrder: 4},
}

// SeedGenres inserts the starter genre set, skipping any that already exist.
func SeedGenres(db *gorm.DB) error {
	for _, g := range defaultGenres {
		var existing domain.Genre
		err := db.Where("name = ?", g.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup genre %q: %w", g.Name, err)
		}
		genre := g
		if err := db.Create(&genre).Error; err != nil {
			return fmt.Errorf("seed genre %q: %w", g.Name, err)
		}
	}
	return nil
}
