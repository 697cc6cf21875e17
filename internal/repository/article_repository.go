package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/manav1309/manavinverse-create-verse/internal/domain"
	"github.com/manav1309/manavinverse-create-verse/internal/observability"
)

var ErrArticleNotFound = errors.New("article not found")

type ArticleRepository interface {
	List(publishedOnly bool) ([]domain.Article, error)
	FindByID(id uuid.UUID) (*domain.Article, error)
	FindBySlug(slug string) (*domain.Article, error)
	Create(article *domain.Article, genres []domain.Genre) error
	Update(article *domain.Article, genres []domain.Genre) error
	Delete(id uuid.UUID) error
}

type GormArticleRepository struct{ db *gorm.DB }

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &GormArticleRepository{db: db}
}

func (r *GormArticleRepository) List(publishedOnly bool) ([]domain.Article, error) {
	q := r.db.Preload("Genres", genrePreload).Order("created_at desc")
	if publishedOnly {
		q = q.Where("status = ?", domain.StatusPublished)
	}
	var articles []domain.Article
	if err := q.Find(&articles).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "article", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "article", "list", "success")
	return articles, nil
}

func (r *GormArticleRepository) FindByID(id uuid.UUID) (*domain.Article, error) {
	var article domain.Article
	if err := r.db.Preload("Genres", genrePreload).First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "article", "find_by_id", "not_found")
			return nil, ErrArticleNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "article", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "article", "find_by_id", "success")
	return &article, nil
}

func (r *GormArticleRepository) FindBySlug(slug string) (*domain.Article, error) {
	var article domain.Article
	if err := r.db.Preload("Genres", genrePreload).Where("slug = ?", slug).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "article", "find_by_slug", "not_found")
			return nil, ErrArticleNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "article", "find_by_slug", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "article", "find_by_slug", "success")
	return &article, nil
}

func (r *GormArticleRepository) Create(article *domain.Article, genres []domain.Genre) error {
	article.Genres = genres
	if err := r.db.Create(article).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "article", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "article", "create", "success")
	return nil
}

func (r *GormArticleRepository) Update(article *domain.Article, genres []domain.Genre) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Article{}).Where("id = ?", article.ID).Updates(map[string]any{
			"title":   article.Title,
			"slug":    article.Slug,
			"excerpt": article.Excerpt,
			"content": article.Content,
			"author":  article.Author,
			"image":   article.Image,
			"status":  article.Status,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrArticleNotFound
		}
		return tx.Model(article).Association("Genres").Replace(genres)
	})
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrArticleNotFound) {
			outcome = "not_found"
		}
		observability.RecordRepositoryOperation(context.Background(), "article", "update", outcome)
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "article", "update", "success")
	return nil
}

func (r *GormArticleRepository) Delete(id uuid.UUID) error {
	res := r.db.Select("Genres").Delete(&domain.Article{ID: id})
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "article", "delete", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "article", "delete", "not_found")
		return ErrArticleNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "article", "delete", "success")
	return nil
}
