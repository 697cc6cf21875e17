package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/manav1309/manavinverse-create-verse/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRepositoryDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Genre{},
		&domain.Blog{},
		&domain.Article{},
		&domain.Poem{},
		&domain.ContactSubmission{},
	); err != nil {
		t.Fatalf("migrate db: %v", err)
	}
	return db
}

func createGenreForTest(t *testing.T, db *gorm.DB, name string, order int) *domain.Genre {
	t.Helper()
	g := &domain.Genre{Name: name, DisplayOrder: order}
	if err := NewGenreRepository(db).Create(g); err != nil {
		t.Fatalf("create genre %s: %v", name, err)
	}
	return g
}
