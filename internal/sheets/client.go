package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultSheetsBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

var (
	ErrTokenExchange = errors.New("token exchange failed")
	ErrAppend        = errors.New("sheets append failed")
	ErrTimeout       = errors.New("sheets request timed out")
)

// Client talks to the OAuth token endpoint and the Sheets values API. All
// calls carry a bounded timeout through the underlying HTTP client and the
// request context.
type Client struct {
	httpClient    *http.Client
	tokenURL      string
	sheetsBaseURL string
}

type ClientOption func(*Client)

// WithSheetsBaseURL overrides the values API base, used by tests to point at
// a local server.
func WithSheetsBaseURL(base string) ClientOption {
	return func(c *Client) { c.sheetsBaseURL = strings.TrimRight(base, "/") }
}

func NewClient(tokenURL string, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		httpClient:    &http.Client{Timeout: timeout},
		tokenURL:      tokenURL,
		sheetsBaseURL: defaultSheetsBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExchangeToken trades a signed assertion for a bearer access token using the
// JWT-bearer grant.
func (c *Client) ExchangeToken(ctx context.Context, assertion string) (string, error) {
	form := url.Values{
		"grant_type": {"urn:ietf:params:oauth:grant-type:jwt-bearer"},
		"assertion":  {assertion},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrTokenExchange, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: token exchange: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d: %s", ErrTokenExchange, resp.StatusCode, string(body))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrTokenExchange, err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("%w: response carried no access token", ErrTokenExchange)
	}
	return payload.AccessToken, nil
}

// AppendRow appends one row of values to the given range. The row order is
// fixed by the sheet layout; the caller builds it.
func (c *Client) AppendRow(ctx context.Context, accessToken, spreadsheetID, rangeRef string, row []string) error {
	values := make([]any, len(row))
	for i, v := range row {
		values[i] = v
	}
	payload, err := json.Marshal(map[string]any{"values": []any{values}})
	if err != nil {
		return fmt.Errorf("%w: encode row: %v", ErrAppend, err)
	}

	endpoint := fmt.Sprintf("%s/%s/values/%s:append?valueInputOption=RAW",
		c.sheetsBaseURL, url.PathEscape(spreadsheetID), url.PathEscape(rangeRef))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrAppend, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: append: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrAppend, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return fmt.Errorf("%w: status %d: %s", ErrAppend, resp.StatusCode, string(body))
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
