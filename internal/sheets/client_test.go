package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestExchangeTokenSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "urn:ietf:params:oauth:grant-type:jwt-bearer" {
			t.Fatalf("unexpected grant_type %q", got)
		}
		if got := r.PostForm.Get("assertion"); got != "signed-assertion" {
			t.Fatalf("unexpected assertion %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "token-123", "expires_in": 3600})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	token, err := c.ExchangeToken(context.Background(), "signed-assertion")
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if token != "token-123" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestExchangeTokenFailures(t *testing.T) {
	t.Run("non-success status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("invalid_grant"))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, 5*time.Second)
		_, err := c.ExchangeToken(context.Background(), "a")
		if !errors.Is(err, ErrTokenExchange) {
			t.Fatalf("expected ErrTokenExchange, got %v", err)
		}
		if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "invalid_grant") {
			t.Fatalf("expected status and body in error, got %q", err.Error())
		}
	})

	t.Run("missing access token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"token_type": "Bearer"})
		}))
		defer srv.Close()

		c := NewClient(srv.URL, 5*time.Second)
		if _, err := c.ExchangeToken(context.Background(), "a"); !errors.Is(err, ErrTokenExchange) {
			t.Fatalf("expected ErrTokenExchange, got %v", err)
		}
	})
}

func TestAppendRowSuccess(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody struct {
		Values [][]string `json:"values"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient("unused", 5*time.Second, WithSheetsBaseURL(srv.URL))
	row := []string{"Bo", "bo@x.com", "555-1", "Hey", "2025-06-01T12:00:00Z"}
	if err := c.AppendRow(context.Background(), "tok", "sheet-id", "Sheet1!A:E", row); err != nil {
		t.Fatalf("append: %v", err)
	}

	if !strings.Contains(gotPath, "/sheet-id/values/") || !strings.Contains(gotPath, ":append") {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if !strings.Contains(gotPath, "valueInputOption=RAW") {
		t.Fatalf("expected RAW input option in %q", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if len(gotBody.Values) != 1 || len(gotBody.Values[0]) != 5 {
		t.Fatalf("unexpected body %+v", gotBody)
	}
	for i, want := range row {
		if gotBody.Values[0][i] != want {
			t.Fatalf("column %d: got %q want %q", i, gotBody.Values[0][i], want)
		}
	}
}

func TestAppendRowNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limited"))
	}))
	defer srv.Close()

	c := NewClient("unused", 5*time.Second, WithSheetsBaseURL(srv.URL))
	err := c.AppendRow(context.Background(), "tok", "sheet-id", "Sheet1!A:E", []string{"a"})
	if !errors.Is(err, ErrAppend) {
		t.Fatalf("expected ErrAppend, got %v", err)
	}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected status and body in error, got %q", err.Error())
	}
}

func TestTimeoutSurfacesDistinctly(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		srv.Close()
	}()

	c := NewClient(srv.URL, 50*time.Millisecond, WithSheetsBaseURL(srv.URL))
	if _, err := c.ExchangeToken(context.Background(), "a"); !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout on exchange, got %v", err)
	}
	if err := c.AppendRow(context.Background(), "tok", "s", "r", []string{"a"}); !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout on append, got %v", err)
	}
}
