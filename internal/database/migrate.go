package database

import (
	"github.com/manav1309/manavinverse-create-verse/internal/domain"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Genre{},
		&domain.Blog{},
		&domain.Article{},
		&domain.Poem{},
		&domain.ContactSubmission{},
	)
}
