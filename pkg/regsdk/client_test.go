package regsdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Path   string
	APIKey string
	Authz  string
	Body   map[string]string
}

type recorder struct {
	mu   sync.Mutex
	reqs []recordedRequest
}

func (r *recorder) all() []recordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedRequest(nil), r.reqs...)
}

// fakeAPI answers every request with status and body and records what it saw.
func fakeAPI(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()
	seen := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Path:   r.URL.Path,
			APIKey: r.Header.Get("x-api-key"),
			Authz:  r.Header.Get("Authorization"),
		}
		_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		seen.mu.Lock()
		seen.reqs = append(seen.reqs, rec)
		seen.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func newTestClient(url string) *Client {
	return NewClient(Config{BaseURL: url + "/", APIKey: "test-key"})
}

func TestNewClientDefaults(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{})
	require.Equal(t, DefaultBaseURL, c.BaseURL)
	require.Equal(t, DefaultTimeout, c.HTTPClient.Timeout)
	require.IsType(t, &MemoryTokenStore{}, c.Tokens)
}

func TestSubmitRegistration(t *testing.T) {
	t.Parallel()

	req := RegistrationRequest{
		FirstName:    "Ahmed",
		SecondName:   "Ali",
		Email:        "a@b.co",
		Interests:    "electrical",
		LearningMode: "live",
		HoursPerWeek: "1-5",
	}

	t.Run("code one is success", func(t *testing.T) {
		t.Parallel()
		srv, seen := fakeAPI(t, http.StatusOK, `{"code":1,"type":"success","message":"Registered"}`)

		resp, err := newTestClient(srv.URL).SubmitRegistration(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, 1, resp.Code)

		reqs := seen.all()
		require.Len(t, reqs, 1)
		got := reqs[0]
		require.Equal(t, "/early-registration", got.Path)
		require.Equal(t, "test-key", got.APIKey)
		require.Empty(t, got.Authz)
		require.Equal(t, map[string]string{
			"first_name":  "Ahmed",
			"second_name": "Ali",
			"email":       "a@b.co",
			"question_1":  "electrical",
			"question_2":  "live",
			"question_3":  "1-5",
		}, got.Body)
	})

	t.Run("success in message is success", func(t *testing.T) {
		t.Parallel()
		srv, _ := fakeAPI(t, http.StatusOK, `{"code":0,"message":"Registration SUCCESSFUL"}`)

		_, err := newTestClient(srv.URL).SubmitRegistration(context.Background(), req)
		require.NoError(t, err)
	})

	t.Run("field errors flattened in field order", func(t *testing.T) {
		t.Parallel()
		srv, _ := fakeAPI(t, http.StatusUnprocessableEntity,
			`{"code":0,"message":"Invalid","errors":{"email":["Email already taken"],"first_name":"First name too long"}}`)

		_, err := newTestClient(srv.URL).SubmitRegistration(context.Background(), req)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		require.Equal(t, http.StatusUnprocessableEntity, valErr.StatusCode)
		require.Equal(t, "Email already taken, First name too long", Message(err))
	})

	t.Run("message without errors is generic", func(t *testing.T) {
		t.Parallel()
		srv, _ := fakeAPI(t, http.StatusOK, `{"code":0,"message":"Registrations are closed"}`)

		_, err := newTestClient(srv.URL).SubmitRegistration(context.Background(), req)
		var genErr *GenericError
		require.ErrorAs(t, err, &genErr)
		require.Equal(t, "Registrations are closed", Message(err))
	})

	t.Run("unparsable body falls back to default", func(t *testing.T) {
		t.Parallel()
		srv, _ := fakeAPI(t, http.StatusBadGateway, `<html>bad gateway</html>`)

		_, err := newTestClient(srv.URL).SubmitRegistration(context.Background(), req)
		require.Equal(t, MsgRegistrationFailed, Message(err))
	})

	t.Run("no response is a network error", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := newTestClient(url).SubmitRegistration(context.Background(), req)
		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
		require.Equal(t, OpRegister, netErr.Op)
		require.Equal(t, MsgNetworkFailure, Message(err))
	})
}

func TestExchangeIdentityToken(t *testing.T) {
	t.Parallel()

	t.Run("stores token and sends it afterwards", func(t *testing.T) {
		t.Parallel()
		srv, seen := fakeAPI(t, http.StatusOK,
			`{"code":1,"type":"success","message":"ok","data":{"access_token":"sess-123","user":{"id":"7","email":"a@b.co","name":"Ahmed Ali"}}}`)

		c := newTestClient(srv.URL)
		ex, err := c.ExchangeIdentityToken(context.Background(), "google-token")
		require.NoError(t, err)
		require.Equal(t, "sess-123", ex.AccessToken)
		require.Equal(t, "a@b.co", ex.User.Email)

		stored, err := c.Tokens.Get(context.Background())
		require.NoError(t, err)
		require.Equal(t, "sess-123", stored)

		_, _ = c.SubmitRegistration(context.Background(), RegistrationRequest{})
		reqs := seen.all()
		require.Len(t, reqs, 2)
		require.Equal(t, "/auth/google/callback", reqs[0].Path)
		require.Equal(t, "google-token", reqs[0].Body["access_token"])
		require.Equal(t, "Bearer sess-123", reqs[1].Authz)
	})

	t.Run("missing token is an auth error", func(t *testing.T) {
		t.Parallel()
		srv, _ := fakeAPI(t, http.StatusOK, `{"code":0,"data":{}}`)

		c := newTestClient(srv.URL)
		_, err := c.ExchangeIdentityToken(context.Background(), "google-token")
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		require.Equal(t, MsgExchangeFailure, Message(err))

		stored, _ := c.Tokens.Get(context.Background())
		require.Empty(t, stored)
	})

	t.Run("rejection message is kept", func(t *testing.T) {
		t.Parallel()
		srv, _ := fakeAPI(t, http.StatusUnauthorized, `{"code":0,"message":"Invalid Google token"}`)

		_, err := newTestClient(srv.URL).ExchangeIdentityToken(context.Background(), "bad")
		require.Equal(t, "Invalid Google token", Message(err))
	})

	t.Run("no response names the sign-in step", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := newTestClient(url).ExchangeIdentityToken(context.Background(), "google-token")
		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
		require.Equal(t, OpExchange, netErr.Op)
		require.Equal(t, MsgExchangeNetworkFailure, Message(err))
	})
}

type countingStore struct {
	MemoryTokenStore
	sets atomic.Int32
}

func (c *countingStore) Set(ctx context.Context, tok string) error {
	c.sets.Add(1)
	return c.MemoryTokenStore.Set(ctx, tok)
}

func TestWithTokenStoreAndSignOut(t *testing.T) {
	t.Parallel()

	srv, _ := fakeAPI(t, http.StatusOK, `{"code":1,"data":{"access_token":"sess-9"}}`)
	base := newTestClient(srv.URL)

	slot := &countingStore{}
	bound := base.WithTokenStore(slot)

	_, err := bound.ExchangeIdentityToken(context.Background(), "g")
	require.NoError(t, err)
	require.EqualValues(t, 1, slot.sets.Load())

	// the original client keeps its own slot
	tok, _ := base.Tokens.Get(context.Background())
	require.Empty(t, tok)

	require.NoError(t, bound.SignOut(context.Background()))
	tok, _ = slot.Get(context.Background())
	require.Empty(t, tok)
}

func TestMessage(t *testing.T) {
	t.Parallel()

	require.Empty(t, Message(nil))
	require.Equal(t, MsgRegistrationFailed, Message(errors.New("boom")))
	require.Equal(t, "nope", Message(&AuthError{Message: "nope"}))
}
