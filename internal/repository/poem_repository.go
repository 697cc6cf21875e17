package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/manav1309/manavinverse-create-verse/internal/domain"
	"github.com/manav1309/manavinverse-create-verse/internal/observability"
)

var ErrPoemNotFound = errors.New("poem not found")

type PoemRepository interface {
	List() ([]domain.Poem, error)
	FindByID(id uuid.UUID) (*domain.Poem, error)
	FindBySlug(slug string) (*domain.Poem, error)
	Create(poem *domain.Poem, genres []domain.Genre) error
	Update(poem *domain.Poem, genres []domain.Genre) error
	Delete(id uuid.UUID) error
}

type GormPoemRepository struct{ db *gorm.DB }

func NewPoemRepository(db *gorm.DB) PoemRepository {
	return &GormPoemRepository{db: db}
}

func (r *GormPoemRepository) List() ([]domain.Poem, error) {
	var poems []domain.Poem
	if err := r.db.Preload("Genres", genrePreload).Order("created_at desc").Find(&poems).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "poem", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "poem", "list", "success")
	return poems, nil
}

func (r *GormPoemRepository) FindByID(id uuid.UUID) (*domain.Poem, error) {
	var poem domain.Poem
	if err := r.db.Preload("Genres", genrePreload).First(&poem, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "poem", "find_by_id", "not_found")
			return nil, ErrPoemNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "poem", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "poem", "find_by_id", "success")
	return &poem, nil
}

func (r *GormPoemRepository) FindBySlug(slug string) (*domain.Poem, error) {
	var poem domain.Poem
	if err := r.db.Preload("Genres", genrePreload).Where("slug = ?", slug).First(&poem).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "poem", "find_by_slug", "not_found")
			return nil, ErrPoemNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "poem", "find_by_slug", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "poem", "find_by_slug", "success")
	return &poem, nil
}

func (r *GormPoemRepository) Create(poem *domain.Poem, genres []domain.Genre) error {
	poem.Genres = genres
	if err := r.db.Create(poem).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "poem", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "poem", "create", "success")
	return nil
}

func (r *GormPoemRepository) Update(poem *domain.Poem, genres []domain.Genre) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Poem{}).Where("id = ?", poem.ID).Updates(map[string]any{
			"title":   poem.Title,
			"slug":    poem.Slug,
			"preview": poem.Preview,
			"content": poem.Content,
			"image":   poem.Image,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPoemNotFound
		}
		return tx.Model(poem).Association("Genres").Replace(genres)
	})
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrPoemNotFound) {
			outcome = "not_found"
		}
		observability.RecordRepositoryOperation(context.Background(), "poem", "update", outcome)
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "poem", "update", "success")
	return nil
}

func (r *GormPoemRepository) Delete(id uuid.UUID) error {
	res := r.db.Select("Genres").Delete(&domain.Poem{ID: id})
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "poem", "delete", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "poem", "delete", "not_found")
		return ErrPoemNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "poem", "delete", "success")
	return nil
}
