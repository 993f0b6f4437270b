package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/delveng/signup/internal/signup/domain"
	"github.com/delveng/signup/internal/signup/flow"
	"github.com/delveng/signup/internal/signup/store"
	"github.com/delveng/signup/internal/signup/store/drivers/sqlite"
	"github.com/delveng/signup/pkg/cryptox"
	"github.com/delveng/signup/pkg/regsdk"
	"github.com/delveng/signup/pkg/slogx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("a-test-secret-that-is-long-enough-for-hkdf")

type profilesFunc func(ctx context.Context, token string) (domain.Profile, error)

func (f profilesFunc) FetchProfile(ctx context.Context, token string) (domain.Profile, error) {
	return f(ctx, token)
}

// upstream fakes the registration API. It records the bearer token sent with
// each registration.
type upstream struct {
	mu           sync.Mutex
	bearers      []string
	registerBody string
}

func (u *upstream) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/google/callback", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"code":1,"data":{"access_token":"sess-abc","user":{"id":"1","email":"a@b.co"}}}`)
	})
	mux.HandleFunc("POST /early-registration", func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.bearers = append(u.bearers, r.Header.Get("Authorization"))
		body := u.registerBody
		u.mu.Unlock()
		_, _ = io.WriteString(w, body)
	})
	return mux
}

func (u *upstream) seen() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.bearers...)
}

type fixture struct {
	svc   *FlowService
	store *sqlite.Store
	up    *upstream
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	up := &upstream{registerBody: `{"code":1,"message":"Registration successful"}`}
	srv := httptest.NewServer(up.handler())
	t.Cleanup(srv.Close)

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	slots, err := NewTokenSlots(st, testSecret)
	require.NoError(t, err)
	handles, err := NewHandles(testSecret, time.Hour)
	require.NoError(t, err)

	profiles := profilesFunc(func(context.Context, string) (domain.Profile, error) {
		return domain.Profile{GivenName: "Ahmed", FamilyName: "Ali", Email: "a@b.co"}, nil
	})

	reg := regsdk.NewClient(regsdk.Config{BaseURL: srv.URL, APIKey: "k"})
	return &fixture{
		svc:   NewFlowService(reg, profiles, slots, handles, st, time.Minute),
		store: st,
		up:    up,
	}
}

func startSignup(t *testing.T, f *fixture, prev string) (FlowHandle, *flow.Controller) {
	t.Helper()
	h, view, err := f.svc.CreateFlow(context.Background(), prev)
	require.NoError(t, err)
	require.Equal(t, flow.PageWelcome, view.Page)

	j, err := f.svc.Journey(h.FlowID, h.DeviceID)
	require.NoError(t, err)
	require.NoError(t, j.Router.Start())
	ctrl, err := j.Signup()
	require.NoError(t, err)
	return h, ctrl
}

var prefs = domain.PreferencesDraft{LearningMode: "recorded", Interests: "construction", HoursPerWeek: "11-15"}

func TestIdentitySignupPersistsSessionToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	h, ctrl := startSignup(t, f, "")

	require.NoError(t, ctrl.BeginIdentitySignup(ctx, "google-token"))
	view, err := f.svc.SubmitPreferences(ctx, h.FlowID, h.DeviceID, prefs)
	require.NoError(t, err)
	require.Equal(t, flow.PageComplete, view.Page)

	require.Equal(t, []string{"Bearer sess-abc"}, f.up.seen())

	sealed, err := f.store.SessionTokens().GetSessionToken(ctx, h.DeviceID)
	require.NoError(t, err)
	require.NotContains(t, string(sealed), "sess-abc")

	attempts, err := f.store.Attempts().ListAttemptsByEmail(ctx, "a@b.co", 5)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	require.Equal(t, store.OutcomeAccepted, attempts[0].Outcome)
	require.Equal(t, string(flow.OriginIdentity), attempts[0].Origin)

	// a returning device keeps its id and token
	h2, ctrl2 := startSignup(t, f, h.Token)
	require.Equal(t, h.DeviceID, h2.DeviceID)
	require.NotEqual(t, h.FlowID, h2.FlowID)
	_, err = f.svc.Journey(h.FlowID, h.DeviceID)
	require.ErrorIs(t, err, ErrFlowNotFound)

	require.NoError(t, ctrl2.UpdateDraft(domain.RegistrationDraft{FirstName: "A", LastName: "B", Email: "a@b.co", Password: "longenough"}))
	require.NoError(t, ctrl2.SubmitLocal())
	_, err = f.svc.SubmitPreferences(ctx, h2.FlowID, h2.DeviceID, prefs)
	require.NoError(t, err)
	require.Equal(t, []string{"Bearer sess-abc", "Bearer sess-abc"}, f.up.seen())

	require.NoError(t, f.svc.SignOut(ctx, h.DeviceID))
	_, err = f.store.SessionTokens().GetSessionToken(ctx, h.DeviceID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRejectedRegistrationIsAudited(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	f.up.mu.Lock()
	f.up.registerBody = `{"code":0,"errors":{"email":["Email already registered"]}}`
	f.up.mu.Unlock()

	h, ctrl := startSignup(t, f, "")
	require.NoError(t, ctrl.UpdateDraft(domain.RegistrationDraft{FirstName: "A", LastName: "B", Email: "a@b.co", Password: "longenough"}))
	require.NoError(t, ctrl.SubmitLocal())

	view, err := f.svc.SubmitPreferences(ctx, h.FlowID, h.DeviceID, prefs)
	require.True(t, flow.IsRemote(err))
	require.Equal(t, "Email already registered", view.Flow.Error)

	// local validation failures are not attempts
	_, err = f.svc.SubmitPreferences(ctx, h.FlowID, h.DeviceID, domain.PreferencesDraft{})
	require.ErrorIs(t, err, flow.ErrInvalidInput)

	attempts, err := f.store.Attempts().ListAttemptsByEmail(ctx, "a@b.co", 5)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	require.Equal(t, store.OutcomeInvalidFields, attempts[0].Outcome)
}

func TestJourneyOwnershipAndExpiry(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	h, _, err := f.svc.CreateFlow(context.Background(), "")
	require.NoError(t, err)

	_, err = f.svc.Journey(h.FlowID, "someone-else")
	require.ErrorIs(t, err, ErrFlowNotFound)

	now = now.Add(30 * time.Second)
	_, err = f.svc.Journey(h.FlowID, h.DeviceID)
	require.NoError(t, err, "touch resets the idle clock")

	now = now.Add(50 * time.Second)
	require.Zero(t, f.svc.EvictIdle())
	require.Equal(t, 1, f.svc.Len())

	now = now.Add(2 * time.Minute)
	require.Equal(t, 1, f.svc.EvictIdle())
	require.Zero(t, f.svc.Len())
}

func TestInvalidPreviousHandleGetsNewDevice(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	h, _, err := f.svc.CreateFlow(context.Background(), "not-a-token")
	require.NoError(t, err)
	require.NotEmpty(t, h.DeviceID)

	claims, err := f.svc.Handles.Verify(h.Token)
	require.NoError(t, err)
	require.Equal(t, h.DeviceID, claims.DeviceID())
	require.Equal(t, h.FlowID, claims.FlowID())
}

func TestTokenSlotIsBoundToDevice(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	a := f.svc.Slots.Slot("dev-a")
	require.NoError(t, a.Set(ctx, "tok"))
	got, err := a.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok", got)

	// move the sealed row to another device
	sealed, err := f.store.SessionTokens().GetSessionToken(ctx, "dev-a")
	require.NoError(t, err)
	require.NoError(t, f.store.SessionTokens().PutSessionToken(ctx, "dev-b", sealed))
	_, err = f.svc.Slots.Slot("dev-b").Get(ctx)
	require.Error(t, err)

	empty, err := f.svc.Slots.Slot("dev-c").Get(ctx)
	require.NoError(t, err)
	require.Empty(t, empty)

	require.NoError(t, a.Set(ctx, ""))
	got, err = a.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestTokenSlotLogsFingerprintOnly(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := slogx.WithContext(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))
	f := newFixture(t)

	require.NoError(t, f.svc.Slots.Slot("dev-a").Set(ctx, "sess-secret-value"))

	logged := buf.String()
	require.Contains(t, logged, cryptox.FingerprintToken("sess-secret-value"))
	require.NotContains(t, logged, "sess-secret-value")
}

func TestHousekeepingStartStop(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	hk := NewHousekeepingService(f.svc, slog.New(slog.NewTextHandler(io.Discard, nil)), 10*time.Millisecond)
	hk.Start()
	hk.Stop()
}

func TestOutcomeOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, store.OutcomeAccepted, outcomeOf(nil))
	require.Equal(t, store.OutcomeExchangeFailed, outcomeOf(&flow.RemoteError{Step: flow.StepExchange, Err: &regsdk.AuthError{}}))
	require.Equal(t, store.OutcomeNetworkError, outcomeOf(&flow.RemoteError{Step: flow.StepRegistration, Err: &regsdk.NetworkError{}}))
	require.Equal(t, store.OutcomeInvalidFields, outcomeOf(&flow.RemoteError{Step: flow.StepRegistration, Err: &regsdk.ValidationError{}}))
	require.Equal(t, store.OutcomeRejected, outcomeOf(&flow.RemoteError{Step: flow.StepRegistration, Err: &regsdk.GenericError{}}))

}
