package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/manav1309/manavinverse-create-verse/internal/http/handler"
	"github.com/manav1309/manavinverse-create-verse/internal/http/middleware"
	"github.com/manav1309/manavinverse-create-verse/internal/http/response"
	"github.com/manav1309/manavinverse-create-verse/internal/security"
)

type Handlers struct {
	Contact          *handler.ContactHandler
	Auth             *handler.AuthHandler
	Content          *handler.ContentHandler
	AdminSubmissions *handler.AdminSubmissionHandler
	Media            *handler.MediaHandler
}

type Limits struct {
	ContactPerMin int
	LoginPerMin   int
	Limiter       middleware.Limiter
	Mode          middleware.FailureMode
}

// New wires the full route tree: the public site surface, the rate-limited
// contact form and login, and the token-gated admin panel.
func New(
	h Handlers,
	jwtMgr *security.JWTManager,
	allowedOrigins []string,
	limits Limits,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(allowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	contactLimiter := middleware.NewDistributedRateLimiter(
		limits.Limiter, limits.ContactPerMin, time.Minute, limits.Mode, "contact")
	loginLimiter := middleware.NewDistributedRateLimiter(
		limits.Limiter, limits.LoginPerMin, time.Minute, limits.Mode, "login")

	r.Route("/api/v1", func(r chi.Router) {
		// Public site
		r.Get("/blogs", h.Content.ListBlogs)
		r.Get("/blogs/{slug}", h.Content.GetBlog)
		r.Get("/articles", h.Content.ListArticles)
		r.Get("/articles/{slug}", h.Content.GetArticle)
		r.Get("/poems", h.Content.ListPoems)
		r.Get("/poems/{slug}", h.Content.GetPoem)
		r.Get("/genres", h.Content.ListGenres)

		r.With(contactLimiter.Middleware()).Post("/contact", h.Contact.Submit)
		r.With(loginLimiter.Middleware()).Post("/auth/login", h.Auth.Login)
		r.Post("/auth/logout", h.Auth.Logout)

		// Admin panel
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(jwtMgr))

			r.Get("/auth/me", h.Auth.Me)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/submissions", h.AdminSubmissions.List)
				r.Delete("/submissions/{id}", h.AdminSubmissions.Delete)
				r.Get("/submissions/export", h.AdminSubmissions.Export)

				r.Post("/blogs", h.Content.CreateBlog)
				r.Put("/blogs/{id}", h.Content.UpdateBlog)
				r.Delete("/blogs/{id}", h.Content.DeleteBlog)

				r.Post("/articles", h.Content.CreateArticle)
				r.Put("/articles/{id}", h.Content.UpdateArticle)
				r.Delete("/articles/{id}", h.Content.DeleteArticle)

				r.Post("/poems", h.Content.CreatePoem)
				r.Put("/poems/{id}", h.Content.UpdatePoem)
				r.Delete("/poems/{id}", h.Content.DeletePoem)

				r.Post("/genres", h.Content.CreateGenre)
				r.Put("/genres/{id}", h.Content.UpdateGenre)
				r.Delete("/genres/{id}", h.Content.DeleteGenre)

				if h.Media != nil {
					r.Post("/media", h.Media.Upload)
					r.Delete("/media", h.Media.Delete)
				}
			})
		})
	})

	return r
}
