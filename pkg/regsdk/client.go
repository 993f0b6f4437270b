package regsdk

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the development deployment of the registration API.
	DefaultBaseURL = "https://admin.delveng.com/api/development"

	DefaultTimeout = 10 * time.Second
)

// Config configures a Client.
type Config struct {
	BaseURL string
	APIKey  string

	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Client talks to the registration API.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Tokens     TokenStore
}

// NewClient builds a client with an in-memory token store.
func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		BaseURL:    strings.TrimSuffix(base, "/"),
		APIKey:     cfg.APIKey,
		HTTPClient: &http.Client{Timeout: timeout},
		Tokens:     &MemoryTokenStore{},
	}
}

// WithTokenStore returns a copy of c that reads and writes its session token
// through ts. The HTTP client is shared.
func (c *Client) WithTokenStore(ts TokenStore) *Client {
	cp := *c
	cp.Tokens = ts
	return &cp
}

// SignOut forgets the stored session token.
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.Tokens.Clear(ctx); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}
