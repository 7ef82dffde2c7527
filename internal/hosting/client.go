package hosting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sitegenio/sitegen-backend/config"
)

// ErrNoToken is returned when hosting operations run without a configured
// provider token. Unlike generation there is no fallback; the operation fails
// at call time.
var ErrNoToken = errors.New("hosting provider token not configured")

// ProviderError carries the provider's own error message so callers can
// surface it verbatim.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("hosting provider status %d: %s", e.StatusCode, e.Message)
}

// Client handles communication with the Vercel-compatible hosting API.
type Client struct {
	baseURL    string
	token      string
	teamID     string
	httpClient *http.Client
	// Deployment uploads carry the whole site; they get a longer timeout.
	deployClient *http.Client
}

func NewClient(cfg *config.HostingConfig) *Client {
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		token:        cfg.APIToken,
		teamID:       cfg.TeamID,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		deployClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Configured reports whether a provider token is present.
func (c *Client) Configured() bool {
	return c.token != ""
}

func (c *Client) endpoint(path string) string {
	u := c.baseURL + path
	if c.teamID != "" {
		q := url.Values{"teamId": {c.teamID}}
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) do(ctx context.Context, httpClient *http.Client, method, path string, body any, out any) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrNoToken
	}

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	if httpClient == nil {
		httpClient = c.httpClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hosting request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Message: providerMessage(raw)}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}
	return raw, nil
}

// providerMessage extracts {"error":{"message":...}} bodies, falling back to
// the raw text.
func providerMessage(raw []byte) string {
	var wrapped struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Error.Message != "" {
		return wrapped.Error.Message
	}
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = "unknown provider error"
	}
	if len(msg) > 512 {
		msg = msg[:512] + "..."
	}
	return msg
}
