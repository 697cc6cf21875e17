package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/manav1309/manavinverse-create-verse/internal/domain"
	"github.com/manav1309/manavinverse-create-verse/internal/observability"
	"github.com/manav1309/manavinverse-create-verse/internal/repository"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
	ErrInvalidStatus   = errors.New("status must be draft or published")
	ErrInvalidID       = errors.New("invalid id")
)

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL slug from a title: lowercase, non-alphanumeric runs
// collapsed to single hyphens, leading and trailing hyphens trimmed.
func Slugify(title string) string {
	slug := slugStripPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}

type BlogInput struct {
	Title    string
	Excerpt  string
	Content  string
	Author   string
	Image    *string
	Status   string
	GenreIDs []uuid.UUID
}

type ArticleInput = BlogInput

type PoemInput struct {
	Title    string
	Preview  string
	Content  string
	Image    *string
	GenreIDs []uuid.UUID
}

type GenreInput struct {
	Name         string
	Description  *string
	DisplayOrder int
}

type ContentServiceInterface interface {
	ListBlogs(publishedOnly bool) ([]domain.Blog, error)
	GetBlogBySlug(slug string) (*domain.Blog, error)
	CreateBlog(ctx context.Context, in BlogInput) (*domain.Blog, error)
	UpdateBlog(ctx context.Context, id string, in BlogInput) (*domain.Blog, error)
	DeleteBlog(ctx context.Context, id string) error

	ListArticles(publishedOnly bool) ([]domain.Article, error)
	GetArticleBySlug(slug string) (*domain.Article, error)
	CreateArticle(ctx context.Context, in ArticleInput) (*domain.Article, error)
	UpdateArticle(ctx context.Context, id string, in ArticleInput) (*domain.Article, error)
	DeleteArticle(ctx context.Context, id string) error

	ListPoems() ([]domain.Poem, error)
	GetPoemBySlug(slug string) (*domain.Poem, error)
	CreatePoem(ctx context.Context, in PoemInput) (*domain.Poem, error)
	UpdatePoem(ctx context.Context, id string, in PoemInput) (*domain.Poem, error)
	DeletePoem(ctx context.Context, id string) error

	ListGenres() ([]domain.Genre, error)
	CreateGenre(ctx context.Context, in GenreInput) (*domain.Genre, error)
	UpdateGenre(ctx context.Context, id string, in GenreInput) (*domain.Genre, error)
	DeleteGenre(ctx context.Context, id string) error
}

// ContentService owns the publishing rules shared by every content type:
// slugs come from titles and are regenerated whenever the title changes, and
// genre assignments always replace the whole set.
type ContentService struct {
	blogs    repository.BlogRepository
	articles repository.ArticleRepository
	poems    repository.PoemRepository
	genres   repository.GenreRepository
}

func NewContentService(
	blogs repository.BlogRepository,
	articles repository.ArticleRepository,
	poems repository.PoemRepository,
	genres repository.GenreRepository,
) *ContentService {
	return &ContentService{blogs: blogs, articles: articles, poems: poems, genres: genres}
}

func validateStatus(status string) (string, error) {
	switch status {
	case "":
		return domain.StatusDraft, nil
	case domain.StatusDraft, domain.StatusPublished:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s *ContentService) validateTitleContent(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(content) == "" {
		return ErrContentRequired
	}
	return nil
}

func (s *ContentService) ListBlogs(publishedOnly bool) ([]domain.Blog, error) {
	return s.blogs.List(publishedOnly)
}

func (s *ContentService) GetBlogBySlug(slug string) (*domain.Blog, error) {
	return s.blogs.FindBySlug(slug)
}

func (s *ContentService) CreateBlog(ctx context.Context, in BlogInput) (*domain.Blog, error) {
	if err := s.validateTitleContent(in.Title, in.Content); err != nil {
		observability.RecordContentEvent(ctx, "blog", "create", "invalid")
		return nil, err
	}
	status, err := validateStatus(in.Status)
	if err != nil {
		observability.RecordContentEvent(ctx, "blog", "create", "invalid")
		return nil, err
	}
	genres, err := s.genres.FindByIDs(in.GenreIDs)
	if err != nil {
		observability.RecordContentEvent(ctx, "blog", "create", "error")
		return nil, err
	}
	blog := &domain.Blog{
		Title:   strings.TrimSpace(in.Title),
		Slug:    Slugify(in.Title),
		Excerpt: strings.TrimSpace(in.Excerpt),
		Content: in.Content,
		Author:  strings.TrimSpace(in.Author),
		Image:   in.Image,
		Status:  status,
	}
	if err := s.blogs.Create(blog, genres); err != nil {
		observability.RecordContentEvent(ctx, "blog", "create", "error")
		return nil, err
	}
	observability.RecordContentEvent(ctx, "blog", "create", "success")
	return blog, nil
}

func (s *ContentService) UpdateBlog(ctx context.Context, id string, in BlogInput) (*domain.Blog, error) {
	blogID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateTitleContent(in.Title, in.Content); err != nil {
		observability.RecordContentEvent(ctx, "blog", "update", "invalid")
		return nil, err
	}
	status, err := validateStatus(in.Status)
	if err != nil {
		observability.RecordContentEvent(ctx, "blog", "update", "invalid")
		return nil, err
	}
	genres, err := s.genres.FindByIDs(in.GenreIDs)
	if err != nil {
		observability.RecordContentEvent(ctx, "blog", "update", "error")
		return nil, err
	}
	blog := &domain.Blog{
		ID:      blogID,
		Title:   strings.TrimSpace(in.Title),
		Slug:    Slugify(in.Title),
		Excerpt: strings.TrimSpace(in.Excerpt),
		Content: in.Content,
		Author:  strings.TrimSpace(in.Author),
		Image:   in.Image,
		Status:  status,
	}
	if err := s.blogs.Update(blog, genres); err != nil {
		observability.RecordContentEvent(ctx, "blog", "update", "error")
		return nil, err
	}
	observability.RecordContentEvent(ctx, "blog", "update", "success")
	return s.blogs.FindByID(blogID)
}

func (s *ContentService) DeleteBlog(ctx context.Context, id string) error {
	blogID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.blogs.Delete(blogID); err != nil {
		observability.RecordContentEvent(ctx, "blog", "delete", "error")
		return err
	}
	observability.RecordContentEvent(ctx, "blog", "delete", "success")
	return nil
}

func (s *ContentService) ListArticles(publishedOnly bool) ([]domain.Article, error) {
	return s.articles.List(publishedOnly)
}

func (s *ContentService) GetArticleBySlug(slug string) (*domain.Article, error) {
	return s.articles.FindBySlug(slug)
}

func (s *ContentService) CreateArticle(ctx context.Context, in ArticleInput) (*domain.Article, error) {
	if err := s.validateTitleContent(in.Title, in.Content); err != nil {
		observability.RecordContentEvent(ctx, "article", "create", "invalid")
		return nil, err
	}
	status, err := validateStatus(in.Status)
	if err != nil {
		observability.RecordContentEvent(ctx, "article", "create", "invalid")
		return nil, err
	}
	genres, err := s.genres.FindByIDs(in.GenreIDs)
	if err != nil {
		observability.RecordContentEvent(ctx, "article", "create", "error")
		return nil, err
	}
	article := &domain.Article{
		Title:   strings.TrimSpace(in.Title),
		Slug:    Slugify(in.Title),
		Excerpt: strings.TrimSpace(in.Excerpt),
		Content: in.Content,
		Author:  strings.TrimSpace(in.Author),
		Image:   in.Image,
		Status:  status,
	}
	if err := s.articles.Create(article, genres); err != nil {
		observability.RecordContentEvent(ctx, "article", "create", "error")
		return nil, err
	}
	observability.RecordContentEvent(ctx, "article", "create", "success")
	return article, nil
}

func (s *ContentService) UpdateArticle(ctx context.Context, id string, in ArticleInput) (*domain.Article, error) {
	articleID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateTitleContent(in.Title, in.Content); err != nil {
		observability.RecordContentEvent(ctx, "article", "update", "invalid")
		return nil, err
	}
	status, err := validateStatus(in.Status)
	if err != nil {
		observability.RecordContentEvent(ctx, "article", "update", "invalid")
		return nil, err
	}
	genres, err := s.genres.FindByIDs(in.GenreIDs)
	if err != nil {
		observability.RecordContentEvent(ctx, "article", "update", "error")
		return nil, err
	}
	article := &domain.Article{
		ID:      articleID,
		Title:   strings.TrimSpace(in.Title),
		Slug:    Slugify(in.Title),
		Excerpt: strings.TrimSpace(in.Excerpt),
		Content: in.Content,
		Author:  strings.TrimSpace(in.Author),
		Image:   in.Image,
		Status:  status,
	}
	if err := s.articles.Update(article, genres); err != nil {
		observability.RecordContentEvent(ctx, "article", "update", "error")
		return nil, err
	}
	observability.RecordContentEvent(ctx, "article", "update", "success")
	return s.articles.FindByID(articleID)
}

func (s *ContentService) DeleteArticle(ctx context.Context, id string) error {
	articleID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.articles.Delete(articleID); err != nil {
		observability.RecordContentEvent(ctx, "article", "delete", "error")
		return err
	}
	observability.RecordContentEvent(ctx, "article", "delete", "success")
	return nil
}

func (s *ContentService) ListPoems() ([]domain.Poem, error) {
	return s.poems.List()
}

func (s *ContentService) GetPoemBySlug(slug string) (*domain.Poem, error) {
	return s.poems.FindBySlug(slug)
}

func (s *ContentService) CreatePoem(ctx context.Context, in PoemInput) (*domain.Poem, error) {
	if err := s.validateTitleContent(in.Title, in.Content); err != nil {
		observability.RecordContentEvent(ctx, "poem", "create", "invalid")
		return nil, err
	}
	genres, err := s.genres.FindByIDs(in.GenreIDs)
	if err != nil {
		observability.RecordContentEvent(ctx, "poem", "create", "error")
		return nil, err
	}
	poem := &domain.Poem{
		Title:   strings.TrimSpace(in.Title),
		Slug:    Slugify(in.Title),
		Preview: strings.TrimSpace(in.Preview),
		Content: in.Content,
		Image:   in.Image,
	}
	if err := s.poems.Create(poem, genres); err != nil {
		observability.RecordContentEvent(ctx, "poem", "create", "error")
		return nil, err
	}
	observability.RecordContentEvent(ctx, "poem", "create", "success")
	return poem, nil
}

func (s *ContentService) UpdatePoem(ctx context.Context, id string, in PoemInput) (*domain.Poem, error) {
	poemID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateTitleContent(in.Title, in.Content); err != nil {
		observability.RecordContentEvent(ctx, "poem", "update", "invalid")
		return nil, err
	}
	genres, err := s.genres.FindByIDs(in.GenreIDs)
	if err != nil {
		observability.RecordContentEvent(ctx, "poem", "update", "error")
		return nil, err
	}
	poem := &domain.Poem{
		ID:      poemID,
		Title:   strings.TrimSpace(in.Title),
		Slug:    Slugify(in.Title),
		Preview: strings.TrimSpace(in.Preview),
		Content: in.Content,
		Image:   in.Image,
	}
	if err := s.poems.Update(poem, genres); err != nil {
		observability.RecordContentEvent(ctx, "poem", "update", "error")
		return nil, err
	}
	observability.RecordContentEvent(ctx, "poem", "update", "success")
	return s.poems.FindByID(poemID)
}

func (s *ContentService) DeletePoem(ctx context.Context, id string) error {
	poemID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.poems.Delete(poemID); err != nil {
		observability.RecordContentEvent(ctx, "poem", "delete", "error")
		return err
	}
	observability.RecordContentEvent(ctx, "poem", "delete", "success")
	return nil
}

func (s *ContentService) ListGenres() ([]domain.Genre, error) {
	return s.genres.List()
}

func (s *ContentService) CreateGenre(ctx context.Context, in GenreInput) (*domain.Genre, error) {
	if strings.TrimSpace(in.Name) == "" {
		observability.RecordContentEvent(ctx, "genre", "create", "invalid")
		return nil, ErrTitleRequired
	}
	genre := &domain.Genre{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
	}
	if err := s.genres.Create(genre); err != nil {
		observability.RecordContentEvent(ctx, "genre", "create", "error")
		return nil, err
	}
	observability.RecordContentEvent(ctx, "genre", "create", "success")
	return genre, nil
}

func (s *ContentService) UpdateGenre(ctx context.Context, id string, in GenreInput) (*domain.Genre, error) {
	genreID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		observability.RecordContentEvent(ctx, "genre", "update", "invalid")
		return nil, ErrTitleRequired
	}
	genre := &domain.Genre{
		ID:           genreID,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
	}
	if err := s.genres.Update(genre); err != nil {
		observability.RecordContentEvent(ctx, "genre", "update", "error")
		return nil, err
	}
	observability.RecordContentEvent(ctx, "genre", "update", "success")
	return s.genres.FindByID(genreID)
}

func (s *ContentService) DeleteGenre(ctx context.Context, id string) error {
	genreID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.genres.Delete(genreID); err != nil {
		observability.RecordContentEvent(ctx, "genre", "delete", "error")
		return err
	}
	observability.RecordContentEvent(ctx, "genre", "delete", "success")
	return nil
}
