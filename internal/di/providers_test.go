package di

import (
	"testing"

	"github.com/manav1309/manavinverse-create-verse/internal/config"
	"github.com/manav1309/manavinverse-create-verse/internal/http/middleware"
)

func TestProvideHTTPServer(t *testing.T) {
	cfg := &config.Config{HTTPPort: "9999"}
	srv := provideHTTPServer(cfg, nil)
	if srv.Addr != ":9999" {
		t.Fatalf("unexpected addr: %s", srv.Addr)
	}
	if srv.ReadTimeout.Seconds() != 10 {
		t.Fatalf("unexpected read timeout: %v", srv.ReadTimeout)
	}
}

func TestProvideRouterLimits(t *testing.T) {
	cfg := &config.Config{ContactRateLimitPerMin: 10, LoginRateLimitPerMin: 5}
	limits := provideRouterLimits(cfg)
	if limits.ContactPerMin != 10 || limits.LoginPerMin != 5 {
		t.Fatalf("unexpected limits: %+v", limits)
	}
	if limits.Mode != middleware.FailClosed {
		t.Fatalf("local limiter should fail closed, got %s", limits.Mode)
	}

	cfg.RedisAddr = "127.0.0.1:6379"
	limits = provideRouterLimits(cfg)
	if limits.Mode != middleware.FailOpen {
		t.Fatalf("redis limiter should fail open, got %s", limits.Mode)
	}
	if _, ok := limits.Limiter.(*middleware.RedisFixedWindowLimiter); !ok {
		t.Fatalf("expected redis limiter, got %T", limits.Limiter)
	}
}

func TestProvideSubmissionServiceWithoutSheets(t *testing.T) {
	cfg := &config.Config{}
	svc, err := provideSubmissionService(cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc == nil {
		t.Fatal("expected a service even without sheets credentials")
	}
}
