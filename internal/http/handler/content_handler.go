package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/manav1309/manavinverse-create-verse/internal/http/response"
	"github.com/manav1309/manavinverse-create-verse/internal/repository"
	"github.com/manav1309/manavinverse-create-verse/internal/service"
)

type ContentHandler struct {
	svc service.ContentServiceInterface
}

func NewContentHandler(svc service.ContentServiceInterface) *ContentHandler {
	return &ContentHandler{svc: svc}
}

type postPayload struct {
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Author   string   `json:"author"`
	Image    *string  `json:"image"`
	Status   string   `json:"status"`
	GenreIDs []string `json:"genre_ids"`
}

type poemPayload struct {
	Title    string   `json:"title"`
	Preview  string   `json:"preview"`
	Content  string   `json:"content"`
	Image    *string  `json:"image"`
	GenreIDs []string `json:"genre_ids"`
}

type genrePayload struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	DisplayOrder int     `json:"display_order"`
}

func parseGenreIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(strings.TrimSpace(r))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// writeContentError maps the shared service errors onto status codes; the
// caller provides the fallback message for everything unclassified.
func writeContentError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrContentRequired),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidID):
		response.Error(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, repository.ErrBlogNotFound),
		errors.Is(err, repository.ErrArticleNotFound),
		errors.Is(err, repository.ErrPoemNotFound),
		errors.Is(err, repository.ErrGenreNotFound):
		response.Error(w, r, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	default:
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", fallback, nil)
	}
}

func (h *ContentHandler) blogInput(p postPayload) (service.BlogInput, error) {
	genreIDs, err := parseGenreIDs(p.GenreIDs)
	if err != nil {
		return service.BlogInput{}, err
	}
	return service.BlogInput{
		Title:    p.Title,
		Excerpt:  p.Excerpt,
		Content:  p.Content,
		Author:   p.Author,
		Image:    p.Image,
		Status:   p.Status,
		GenreIDs: genreIDs,
	}, nil
}

func (h *ContentHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	// The public site only sees published posts; the admin panel asks for
	// everything.
	publishedOnly := r.URL.Query().Get("include_drafts") != "true"
	blogs, err := h.svc.ListBlogs(publishedOnly)
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list blogs", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"items": blogs})
}

func (h *ContentHandler) GetBlog(w http.ResponseWriter, r *http.Request) {
	blog, err := h.svc.GetBlogBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		writeContentError(w, r, err, "failed to load blog")
		return
	}
	response.JSON(w, r, http.StatusOK, blog)
}

func (h *ContentHandler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var body postPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	in, err := h.blogInput(body)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid genre id", nil)
		return
	}
	blog, err := h.svc.CreateBlog(r.Context(), in)
	if err != nil {
		writeContentError(w, r, err, "failed to create blog")
		return
	}
	response.JSON(w, r, http.StatusCreated, blog)
}

func (h *ContentHandler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	var body postPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	in, err := h.blogInput(body)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid genre id", nil)
		return
	}
	blog, err := h.svc.UpdateBlog(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeContentError(w, r, err, "failed to update blog")
		return
	}
	response.JSON(w, r, http.StatusOK, blog)
}

func (h *ContentHandler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteBlog(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeContentError(w, r, err, "failed to delete blog")
		return
	}
	response.JSONWithMessage(w, r, http.StatusOK, "Blog deleted", nil)
}

func (h *ContentHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	publishedOnly := r.URL.Query().Get("include_drafts") != "true"
	articles, err := h.svc.ListArticles(publishedOnly)
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list articles", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"items": articles})
}

func (h *ContentHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.svc.GetArticleBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		writeContentError(w, r, err, "failed to load article")
		return
	}
	response.JSON(w, r, http.StatusOK, article)
}

func (h *ContentHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var body postPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	in, err := h.blogInput(body)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid genre id", nil)
		return
	}
	article, err := h.svc.CreateArticle(r.Context(), in)
	if err != nil {
		writeContentError(w, r, err, "failed to create article")
		return
	}
	response.JSON(w, r, http.StatusCreated, article)
}

func (h *ContentHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	var body postPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	in, err := h.blogInput(body)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid genre id", nil)
		return
	}
	article, err := h.svc.UpdateArticle(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeContentError(w, r, err, "failed to update article")
		return
	}
	response.JSON(w, r, http.StatusOK, article)
}

func (h *ContentHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteArticle(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeContentError(w, r, err, "failed to delete article")
		return
	}
	response.JSONWithMessage(w, r, http.StatusOK, "Article deleted", nil)
}

func (h *ContentHandler) ListPoems(w http.ResponseWriter, r *http.Request) {
	poems, err := h.svc.ListPoems()
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list poems", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"items": poems})
}

func (h *ContentHandler) GetPoem(w http.ResponseWriter, r *http.Request) {
	poem, err := h.svc.GetPoemBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		writeContentError(w, r, err, "failed to load poem")
		return
	}
	response.JSON(w, r, http.StatusOK, poem)
}

func (h *ContentHandler) CreatePoem(w http.ResponseWriter, r *http.Request) {
	var body poemPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	genreIDs, err := parseGenreIDs(body.GenreIDs)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid genre id", nil)
		return
	}
	poem, err := h.svc.CreatePoem(r.Context(), service.PoemInput{
		Title:    body.Title,
		Preview:  body.Preview,
		Content:  body.Content,
		Image:    body.Image,
		GenreIDs: genreIDs,
	})
	if err != nil {
		writeContentError(w, r, err, "failed to create poem")
		return
	}
	response.JSON(w, r, http.StatusCreated, poem)
}

func (h *ContentHandler) UpdatePoem(w http.ResponseWriter, r *http.Request) {
	var body poemPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	genreIDs, err := parseGenreIDs(body.GenreIDs)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid genre id", nil)
		return
	}
	poem, err := h.svc.UpdatePoem(r.Context(), chi.URLParam(r, "id"), service.PoemInput{
		Title:    body.Title,
		Preview:  body.Preview,
		Content:  body.Content,
		Image:    body.Image,
		GenreIDs: genreIDs,
	})
	if err != nil {
		writeContentError(w, r, err, "failed to update poem")
		return
	}
	response.JSON(w, r, http.StatusOK, poem)
}

func (h *ContentHandler) DeletePoem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePoem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeContentError(w, r, err, "failed to delete poem")
		return
	}
	response.JSONWithMessage(w, r, http.StatusOK, "Poem deleted", nil)
}

func (h *ContentHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.svc.ListGenres()
	if err != nil {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "failed to list genres", nil)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"items": genres})
}

func (h *ContentHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var body genrePayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	genre, err := h.svc.CreateGenre(r.Context(), service.GenreInput{
		Name:         body.Name,
		Description:  body.Description,
		DisplayOrder: body.DisplayOrder,
	})
	if err != nil {
		writeContentError(w, r, err, "failed to create genre")
		return
	}
	response.JSON(w, r, http.StatusCreated, genre)
}

func (h *ContentHandler) UpdateGenre(w http.ResponseWriter, r *http.Request) {
	var body genrePayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	genre, err := h.svc.UpdateGenre(r.Context(), chi.URLParam(r, "id"), service.GenreInput{
		Name:         body.Name,
		Description:  body.Description,
		DisplayOrder: body.DisplayOrder,
	})
	if err != nil {
		writeContentError(w, r, err, "failed to update genre")
		return
	}
	response.JSON(w, r, http.StatusOK, genre)
}

func (h *ContentHandler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteGenre(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeContentError(w, r, err, "failed to delete genre")
		return
	}
	response.JSONWithMessage(w, r, http.StatusOK, "Genre deleted", nil)
}
