package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/manav1309/manavinverse-create-verse/internal/domain"
	"github.com/manav1309/manavinverse-create-verse/internal/observability"
)

var ErrBlogNotFound = errors.New("blog not found")

type BlogRepository interface {
	List(publishedOnly bool) ([]domain.Blog, error)
	FindByID(id uuid.UUID) (*domain.Blog, error)
	FindBySlug(slug string) (*domain.Blog, error)
	Create(blog *domain.Blog, genres []domain.Genre) error
	Update(blog *domain.Blog, genres []domain.Genre) error
	Delete(id uuid.UUID) error
}

type GormBlogRepository struct{ db *gorm.DB }

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &GormBlogRepository{db: db}
}

func genrePreload(db *gorm.DB) *gorm.DB {
	return db.Order("display_order asc").Order("name asc")
}

func (r *GormBlogRepository) List(publishedOnly bool) ([]domain.Blog, error) {
	q := r.db.Preload("Genres", genrePreload).Order("created_at desc")
	if publishedOnly {
		q = q.Where("status = ?", domain.StatusPublished)
	}
	var blogs []domain.Blog
	if err := q.Find(&blogs).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "blog", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "blog", "list", "success")
	return blogs, nil
}

func (r *GormBlogRepository) FindByID(id uuid.UUID) (*domain.Blog, error) {
	var blog domain.Blog
	if err := r.db.Preload("Genres", genrePreload).First(&blog, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "blog", "find_by_id", "not_found")
			return nil, ErrBlogNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "blog", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "blog", "find_by_id", "success")
	return &blog, nil
}

func (r *GormBlogRepository) FindBySlug(slug string) (*domain.Blog, error) {
	var blog domain.Blog
	if err := r.db.Preload("Genres", genrePreload).Where("slug = ?", slug).First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "blog", "find_by_slug", "not_found")
			return nil, ErrBlogNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "blog", "find_by_slug", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "blog", "find_by_slug", "success")
	return &blog, nil
}

func (r *GormBlogRepository) Create(blog *domain.Blog, genres []domain.Genre) error {
	blog.Genres = genres
	if err := r.db.Create(blog).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "blog", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "blog", "create", "success")
	return nil
}

// Update saves the row and replaces the genre join-set in one transaction.
func (r *GormBlogRepository) Update(blog *domain.Blog, genres []domain.Genre) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Blog{}).Where("id = ?", blog.ID).Updates(map[string]any{
			"title":   blog.Title,
			"slug":    blog.Slug,
			"excerpt": blog.Excerpt,
			"content": blog.Content,
			"author":  blog.Author,
			"image":   blog.Image,
			"status":  blog.Status,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBlogNotFound
		}
		return tx.Model(blog).Association("Genres").Replace(genres)
	})
	if err != nil {
		outcome := "error"
		if errors.Is(err, ErrBlogNotFound) {
			outcome = "not_found"
		}
		observability.RecordRepositoryOperation(context.Background(), "blog", "update", outcome)
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "blog", "update", "success")
	return nil
}

func (r *GormBlogRepository) Delete(id uuid.UUID) error {
	res := r.db.Select("Genres").Delete(&domain.Blog{ID: id})
	if res.Error != nil {
		observability.RecordRepositoryOperation(context.Background(), "blog", "delete", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(context.Background(), "blog", "delete", "not_found")
		return ErrBlogNotFound
	}
	observability.RecordRepositoryOperation(context.Background(), "blog", "delete", "success")
	return nil
}
