package regsdk

import (
	"context"
	"fmt"
)

// ExchangeIdentityToken trades an identity provider access token for an API
// session token and stores it.
//
// Endpoint: POST /auth/google/callback
func (c *Client) ExchangeIdentityToken(ctx context.Context, accessToken string) (*IdentityExchange, error) {
	status, raw, err := c.postJSON(ctx, OpExchange, "/auth/google/callback", identityExchangeRequest{AccessToken: accessToken})
	if err != nil {
		return nil, err
	}

	env := decodeEnvelope[IdentityExchange](raw)
	if !isSuccessStatus(status) || env.Data.AccessToken == "" {
		msg := env.Message
		if msg == "" {
			msg = MsgExchangeFailure
		}
		return nil, &AuthError{StatusCode: status, Message: msg}
	}

	if err := c.Tokens.Set(ctx, env.Data.AccessToken); err != nil {
		return nil, fmt.Errorf("store session token: %w", err)
	}

	out := env.Data
	return &out, nil
}
