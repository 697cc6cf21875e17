package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/manav1309/manavinverse-create-verse/internal/domain"
	"github.com/manav1309/manavinverse-create-verse/internal/observability"
)

var ErrGenreNotFound = errors.New("genre not found")

type GenreRepository interface {
	List() ([]domain.Genre, error)
	FindByID(id uuid.UUID) (*domain.Genre, error)
	FindByIDs(ids []uuid.UUID) ([]domain.Genre, error)
	Create(genre *domain.Genre) error
	Update(genre *domain.Genre) error
	Delete(id uuid.UUID) error
}

type GormGenreRepository struct{ db *gorm.DB }

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &GormGenreRepository{db: db}
}

func (r *GormGenreRepository) List() ([]domain.Genre, error) {
	var genres []domain.Genre
	if err := r.db.Order("display_order asc").Order("name asc").Find(&genres).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "genre", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "genre", "list", "success")
	return genres, nil
}

func (r *GormGenreRepository) FindByID(id uuid.UUID) (*domain.Genre, error) {
	var genre domain.Genre
	if err := r.db.First(&genre, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "genre", "find_by_id", "not_found")
			return nil, ErrGenreNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "genre", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "genre", "find_by_id", "success")
	return &genre, nil
}

// FindByIDs resolves a genre id set; a missing id yields ErrGenreNotFound so
// content can never reference a genre that does not exist.
func (r *GormGenreRepository) FindByIDs(ids []uuid.UUID) ([]domain.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var genres []domain.Genre
	if err := r.db.Where("id IN ?", ids).Find(&genres).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "genre", "find_by_ids", "error")
		return nil, err
	}
	if len(genres) != len(dedupeIDs(ids)) {
		observability.RecordRepositoryOperation(context.Background(), "genre", "find_by_ids", "not_found")
		return nil, ErrGenreNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "genre", "find_by_ids", "success")
	return genres, nil
}

func (r *GormGenreRepository) Create(genre *domain.Genre) error {
	genre.Name = strings.TrimSpace(genre.Name)
	if err := r.db.Create(genre).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "genre", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "genre", "create", "success")
	return nil
}

func (r *GormGenreRepository) Update(genre *domain.Genre) error {
	res := r.db.Model(&domain.Genre{}).Where("id = ?", genre.ID).Updates(map[string]any{
		"name":          strings.TrimSpace(genre.Name),
		"description":   genre.Description,
		"display_order": genre.DisplayOrder,
	})
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "genre", "update", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "genre", "update", "not_found")
		return ErrGenreNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "genre", "update", "success")
	return nil
}

func (r *GormGenreRepository) Delete(id uuid.UUID) error {
	res := r.db.Delete(&domain.Genre{}, "id = ?", id)
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "genre", "delete", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "genre", "delete", "not_found")
		return ErrGenreNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "genre", "delete", "success")
	return nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
