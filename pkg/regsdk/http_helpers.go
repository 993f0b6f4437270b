package regsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// postJSON sends body to path with the API key and, when present, the stored
// session token. It returns the status and raw response body. A transport
// failure comes back as a *NetworkError tagged with op.
func (c *Client) postJSON(ctx context.Context, op Op, path string, body any) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	token, err := c.Tokens.Get(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("read session token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, &NetworkError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	return resp.StatusCode, raw, nil
}

// decodeEnvelope parses raw regardless of status. An unparsable body yields a
// zero envelope so the caller falls through to its default error.
func decodeEnvelope[T any](raw []byte) Envelope[T] {
	var env Envelope[T]
	if len(bytes.TrimSpace(raw)) == 0 {
		return env
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope[T]{}
	}
	return env
}

func isSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
