package di

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/manav1309/manavinverse-create-verse/internal/config"
	"github.com/manav1309/manavinverse-create-verse/internal/database"
	"github.com/manav1309/manavinverse-create-verse/internal/http/handler"
	"github.com/manav1309/manavinverse-create-verse/internal/http/middleware"
	"github.com/manav1309/manavinverse-create-verse/internal/http/router"
	"github.com/manav1309/manavinverse-create-verse/internal/observability"
	"github.com/manav1309/manavinverse-create-verse/internal/repository"
	"github.com/manav1309/manavinverse-create-verse/internal/security"
	"github.com/manav1309/manavinverse-create-verse/internal/service"
	"github.com/manav1309/manavinverse-create-verse/internal/sheets"
)

var ConfigSet = wire.NewSet(provideConfig)

var ObservabilitySet = wire.NewSet(provideLogger)

var DatabaseSet = wire.NewSet(provideDB)

var RepositorySet = wire.NewSet(
	repository.NewSubmissionRepository,
	repository.NewBlogRepository,
	repository.NewArticleRepository,
	repository.NewPoemRepository,
	repository.NewGenreRepository,
)

var SecuritySet = wire.NewSet(provideJWTManager, provideCookieManager)

var ServiceSet = wire.NewSet(
	provideSubmissionService,
	provideContentService,
	provideAuthService,
	provideMediaService,
)

var HTTPSet = wire.NewSet(
	provideContactHandler,
	provideAuthHandler,
	provideContentHandler,
	provideAdminSubmissionHandler,
	provideMediaHandler,
	provideRouterLimits,
	provideRouter,
	provideHTTPServer,
)

func provideConfig() (*config.Config, error) {
	return config.Load()
}

func provideLogger(cfg *config.Config) *slog.Logger {
	return observability.NewLogger(cfg.LogLevel)
}

func provideDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	if err := database.SeedGenres(db); err != nil {
		logger.Warn("genre seeding failed", "error", err)
	}
	return db, nil
}

func provideJWTManager(cfg *config.Config) *security.JWTManager {
	return security.NewJWTManager(cfg.JWTIssuer, cfg.JWTAudience, cfg.AdminTokenSecret)
}

func provideCookieManager(cfg *config.Config) *security.CookieManager {
	return security.NewCookieManager(cfg.CookieDomain, cfg.CookieSecure, cfg.CookieSameSite)
}

// provideSubmissionService leaves the sheets legs nil when sync is not
// configured; the orchestrator then persists without mirroring.
func provideSubmissionService(
	cfg *config.Config,
	repo repository.SubmissionRepository,
	logger *slog.Logger,
) (service.SubmissionServiceInterface, error) {
	if !cfg.SheetsSyncConfigured() {
		return service.NewSubmissionService(repo, nil, nil, "", "", logger), nil
	}
	signer, err := sheets.NewAssertionSigner(sheets.ServiceCredential{
		ClientEmail:   cfg.SheetsServiceAccountEmail,
		PrivateKeyPEM: cfg.SheetsPrivateKeyPEM,
		TokenURL:      cfg.SheetsTokenURL,
		Scope:         cfg.SheetsScope,
	})
	if err != nil {
		return nil, fmt.Errorf("sheets credential: %w", err)
	}
	client := sheets.NewClient(cfg.SheetsTokenURL, cfg.SheetsTimeout)
	return service.NewSubmissionService(
		repo, signer, client, cfg.SheetsSpreadsheetID, cfg.SheetsRange, logger), nil
}

func provideContentService(
	blogs repository.BlogRepository,
	articles repository.ArticleRepository,
	poems repository.PoemRepository,
	genres repository.GenreRepository,
) service.ContentServiceInterface {
	return service.NewContentService(blogs, articles, poems, genres)
}

func provideAuthService(cfg *config.Config, jwtMgr *security.JWTManager) service.AuthServiceInterface {
	return service.NewAuthService(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.AdminTokenTTL, jwtMgr)
}

func provideMediaService(cfg *config.Config, logger *slog.Logger) service.MediaService {
	if cfg.MinIOEndpoint == "" {
		return nil
	}
	svc, err := service.NewMinIOMediaService(
		cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL)
	if err != nil {
		logger.Warn("media storage unavailable, uploads disabled", "error", err)
		return nil
	}
	return svc
}

func provideContactHandler(svc service.SubmissionServiceInterface) *handler.ContactHandler {
	return handler.NewContactHandler(svc)
}

func provideAuthHandler(cfg *config.Config, svc service.AuthServiceInterface, cookies *security.CookieManager) *handler.AuthHandler {
	return handler.NewAuthHandler(svc, cookies, cfg.AdminTokenTTL)
}

func provideContentHandler(svc service.ContentServiceInterface) *handler.ContentHandler {
	return handler.NewContentHandler(svc)
}

func provideAdminSubmissionHandler(svc service.SubmissionServiceInterface) *handler.AdminSubmissionHandler {
	return handler.NewAdminSubmissionHandler(svc)
}

func provideMediaHandler(svc service.MediaService) *handler.MediaHandler {
	if svc == nil {
		return nil
	}
	return handler.NewMediaHandler(svc)
}

// provideRouterLimits picks the shared Redis limiter when an address is
// configured, otherwise a per-process fixed window. Redis failures let
// requests through: losing a contact message costs more than an over-limit
// burst.
func provideRouterLimits(cfg *config.Config) router.Limits {
	limits := router.Limits{
		ContactPerMin: cfg.ContactRateLimitPerMin,
		LoginPerMin:   cfg.LoginRateLimitPerMin,
		Limiter:       middleware.NewLocalFixedWindowLimiter(),
		Mode:          middleware.FailClosed,
	}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limits.Limiter = middleware.NewRedisFixedWindowLimiter(client, "manavinverse:rl")
		limits.Mode = middleware.FailOpen
	}
	return limits
}

func provideRouter(
	cfg *config.Config,
	contact *handler.ContactHandler,
	auth *handler.AuthHandler,
	content *handler.ContentHandler,
	adminSubs *handler.AdminSubmissionHandler,
	media *handler.MediaHandler,
	jwtMgr *security.JWTManager,
	limits router.Limits,
) http.Handler {
	return router.New(router.Handlers{
		Contact:          contact,
		Auth:             auth,
		Content:          content,
		AdminSubmissions: adminSubs,
		Media:            media,
	}, jwtMgr, cfg.CORSAllowedOrigins, limits)
}

func provideHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// MigrationRunner migrates and seeds, then exits; used by the migrate
// subcommand so deploys can run schema changes separately from serving.
type MigrationRunner struct {
	db *gorm.DB
}

func NewMigrationRunner(cfg *config.Config) (*MigrationRunner, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	return &MigrationRunner{db: db}, nil
}

func (m *MigrationRunner) Run() error {
	if err := database.Migrate(m.db); err != nil {
		return err
	}
	return database.SeedGenres(m.db)
}
