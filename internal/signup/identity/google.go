// Package identity reads user profiles from third-party identity providers.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/delveng/signup/internal/signup/domain"
)

// DefaultGoogleUserInfoURL is Google's OpenID Connect userinfo endpoint.
const DefaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// ErrProfileUnavailable is returned when the provider does not answer with a profile.
var ErrProfileUnavailable = errors.New("identity: failed to fetch Google user info")

// GoogleProfiles fetches profiles with a Google OAuth access token.
type GoogleProfiles struct {
	UserInfoURL string
	HTTPClient  *http.Client
}

func NewGoogleProfiles(userInfoURL string, timeout time.Duration) *GoogleProfiles {
	if userInfoURL == "" {
		userInfoURL = DefaultGoogleUserInfoURL
	}
	return &GoogleProfiles{
		UserInfoURL: userInfoURL,
		HTTPClient:  &http.Client{Timeout: timeout},
	}
}

// FetchProfile returns the profile the access token was issued for.
func (g *GoogleProfiles) FetchProfile(ctx context.Context, accessToken string) (domain.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.UserInfoURL, nil)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("identity: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	client := g.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %w", ErrProfileUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return domain.Profile{}, fmt.Errorf("%w: HTTP %d", ErrProfileUnavailable, resp.StatusCode)
	}

	var p domain.Profile
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&p); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: decode: %w", ErrProfileUnavailable, err)
	}
	return p, nil
}
