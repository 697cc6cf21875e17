package integration

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/manav1309/manavinverse-create-verse/internal/domain"
	"github.com/manav1309/manavinverse-create-verse/internal/http/handler"
	"github.com/manav1309/manavinverse-create-verse/internal/http/middleware"
	"github.com/manav1309/manavinverse-create-verse/internal/http/router"
	"github.com/manav1309/manavinverse-create-verse/internal/repository"
	"github.com/manav1309/manavinverse-create-verse/internal/security"
	"github.com/manav1309/manavinverse-create-verse/internal/service"
	"github.com/manav1309/manavinverse-create-verse/internal/sheets"
)

func newDBForTest(t *testing.T) *gorm.DB {
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

func serviceAccountPEMForTest(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
}

// fakeGoogle serves both the token endpoint and the sheets append endpoint.
type fakeGoogle struct {
	appends atomic.Int64
	lastRow []string
}

func (f *fakeGoogle) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.Form.Get("assertion") == "" {
			http.Error(w, "missing assertion", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"fake-token","expires_in":3600}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Values [][]string `json:"values"`
		}
		_ = json.Unmarshal(body, &payload)
		if len(payload.Values) == 1 {
			f.lastRow = payload.Values[0]
		}
		f.appends.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})
	return mux
}

type testEnv struct {
	server *httptest.Server
	repo   repository.SubmissionRepository
	google *fakeGoogle
	jwtMgr *security.JWTManager
	authTk string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newDBForTest(t)

	google := &fakeGoogle{}
	googleSrv := httptest.NewServer(google.handler())
	t.Cleanup(googleSrv.Close)

	signer, err := sheets.NewAssertionSigner(sheets.ServiceCredential{
		ClientEmail:   "svc@test.iam.gserviceaccount.com",
		PrivateKeyPEM: serviceAccountPEMForTest(t),
		TokenURL:      googleSrv.URL + "/token",
		Scope:         "https://www.googleapis.com/auth/spreadsheets",
	})
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	client := sheets.NewClient(googleSrv.URL+"/token", 5*time.Second,
		sheets.WithSheetsBaseURL(googleSrv.URL))

	subRepo := repository.NewSubmissionRepository(db)
	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	subSvc := service.NewSubmissionService(subRepo, signer, client, "sheet-1", "Sheet1!A:E", slogger)

	contentSvc := service.NewContentService(
		repository.NewBlogRepository(db),
		repository.NewArticleRepository(db),
		repository.NewPoemRepository(db),
		repository.NewGenreRepository(db),
	)

	jwtMgr := security.NewJWTManager("manavinverse", "manavinverse-admin", "integration-test-secret-32-bytes!")
	hash, err := security.HashPassword("verse-admin-pass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	authSvc := service.NewAuthService("manav", hash, time.Hour, jwtMgr)
	cookies := security.NewCookieManager("", false, "lax")

	mux := router.New(router.Handlers{
		Contact:          handler.NewContactHandler(subSvc),
		Auth:             handler.NewAuthHandler(authSvc, cookies, time.Hour),
		Content:          handler.NewContentHandler(contentSvc),
		AdminSubmissions: handler.NewAdminSubmissionHandler(subSvc),
	}, jwtMgr, nil, router.Limits{
		ContactPerMin: 100,
		LoginPerMin:   100,
		Limiter:       middleware.NewLocalFixedWindowLimiter(),
		Mode:          middleware.FailClosed,
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	token, err := jwtMgr.SignAdminToken("manav", time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	return &testEnv{server: srv, repo: subRepo, google: google, jwtMgr: jwtMgr, authTk: token}
}

func (e *testEnv) post(t *testing.T, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(e.server.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func (e *testEnv) adminDo(t *testing.T, method, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, e.server.URL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.authTk)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func TestContactFormEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/api/v1/contact",
		`{"name":"Ravi","email":"ravi@example.com","phone":"+1 555 0100","message":"Where can I read more poems?"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}

	subs, err := env.repo.ListAll()
	if err != nil {
		t.Fatalf("list submissions: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("submissions = %d, want 1", len(subs))
	}
	if !subs[0].GoogleSheetsSynced {
		t.Fatal("submission should be marked synced after a successful mirror")
	}
	if got := env.google.appends.Load(); got != 1 {
		t.Fatalf("sheet appends = %d, want 1", got)
	}
	if len(env.google.lastRow) != 5 || env.google.lastRow[0] != "Ravi" || env.google.lastRow[2] != "+1 555 0100" {
		t.Fatalf("appended row = %v", env.google.lastRow)
	}
}

func TestContactFormValidationOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/api/v1/contact", `{"name":"Ravi"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Message != "Name, email, and message are required" {
		t.Fatalf("message = %q", body.Error.Message)
	}

	subs, err := env.repo.ListAll()
	if err != nil {
		t.Fatalf("list submissions: %v", err)
	}
	if len(subs) != 0 {
		t.Fatal("invalid submission was persisted")
	}
	if env.google.appends.Load() != 0 {
		t.Fatal("sheet touched for invalid submission")
	}
}

func TestAdminSubmissionLifecycle(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/api/v1/contact",
		`{"name":"Asha","email":"asha@example.com","message":"hello"}`)
	resp.Body.Close()

	// unauthenticated admin access is rejected
	plain, err := http.Get(env.server.URL + "/api/v1/admin/submissions")
	if err != nil {
		t.Fatalf("GET submissions: %v", err)
	}
	plain.Body.Close()
	if plain.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", plain.StatusCode)
	}

	listResp := env.adminDo(t, "GET", "/api/v1/admin/submissions")
	defer listResp.Body.Close()
	if listResp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", listResp.StatusCode)
	}
	var listBody struct {
		Data struct {
			Items []domain.ContactSubmission `json:"items"`
		} `json:"data"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listBody); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listBody.Data.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(listBody.Data.Items))
	}

	exportResp := env.adminDo(t, "GET", "/api/v1/admin/submissions/export?format=csv")
	defer exportResp.Body.Close()
	if exportResp.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d", exportResp.StatusCode)
	}
	csvBody, _ := io.ReadAll(exportResp.Body)
	if !strings.Contains(string(csvBody), "asha@example.com") {
		t.Fatalf("export missing submission: %s", csvBody)
	}

	delResp := env.adminDo(t, "DELETE", "/api/v1/admin/submissions/"+listBody.Data.Items[0].ID.String())
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", delResp.StatusCode)
	}

	subs, err := env.repo.ListAll()
	if err != nil {
		t.Fatalf("list submissions: %v", err)
	}
	if len(subs) != 0 {
		t.Fatalf("submissions after delete = %d, want 0", len(subs))
	}
}

func TestLoginRateLimitOverHTTP(t *testing.T) {
	env := newTestEnvWithLoginLimit(t, 2)

	for i := 0; i < 2; i++ {
		resp := env.post(t, "/api/v1/auth/login", `{"username":"manav","password":"wrong"}`)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("attempt %d status = %d, want 401", i, resp.StatusCode)
		}
	}

	resp := env.post(t, "/api/v1/auth/login", `{"username":"manav","password":"wrong"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.StatusCode)
	}
}

func newTestEnvWithLoginLimit(t *testing.T, loginPerMin int) *testEnv {
	t.Helper()
	db := newDBForTest(t)

	jwtMgr := security.NewJWTManager("manavinverse", "manavinverse-admin", "integration-test-secret-32-bytes!")
	hash, err := security.HashPassword("verse-admin-pass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	authSvc := service.NewAuthService("manav", hash, time.Hour, jwtMgr)
	cookies := security.NewCookieManager("", false, "lax")

	subRepo := repository.NewSubmissionRepository(db)
	slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	subSvc := service.NewSubmissionService(subRepo, nil, nil, "", "", slogger)
	contentSvc := service.NewContentService(
		repository.NewBlogRepository(db),
		repository.NewArticleRepository(db),
		repository.NewPoemRepository(db),
		repository.NewGenreRepository(db),
	)

	mux := router.New(router.Handlers{
		Contact:          handler.NewContactHandler(subSvc),
		Auth:             handler.NewAuthHandler(authSvc, cookies, time.Hour),
		Content:          handler.NewContentHandler(contentSvc),
		AdminSubmissions: handler.NewAdminSubmissionHandler(subSvc),
	}, jwtMgr, nil, router.Limits{
		ContactPerMin: 100,
		LoginPerMin:   loginPerMin,
		Limiter:       middleware.NewLocalFixedWindowLimiter(),
		Mode:          middleware.FailClosed,
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &testEnv{server: srv, repo: subRepo, jwtMgr: jwtMgr}
}
