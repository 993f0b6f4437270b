package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(ip string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/v1/flows", nil)
	r.RemoteAddr = ip + ":40000"
	return r
}

func TestIPKeyExtractor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "10.0.0.1:1234", "10.0.0.1"},
		{"remote addr without port", nil, "10.0.0.1", "10.0.0.1"},
		{"forwarded for first hop", map[string]string{"X-Forwarded-For": "1.1.1.1, 2.2.2.2"}, "10.0.0.1:1", "1.1.1.1"},
		{"real ip", map[string]string{"X-Real-IP": " 3.3.3.3 "}, "10.0.0.1:1", "3.3.3.3"},
		{"forwarded wins over real ip", map[string]string{"X-Forwarded-For": "1.1.1.1", "X-Real-IP": "3.3.3.3"}, "10.0.0.1:1", "1.1.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			require.Equal(t, tt.want, IPKeyExtractor(r))
		})
	}
}

func TestCompositeKeyExtractor(t *testing.T) {
	t.Parallel()

	fixed := func(s string) KeyExtractor { return func(*http.Request) string { return s } }
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	require.Equal(t, "a|b", CompositeKeyExtractor("|", fixed("a"), fixed(""), fixed("b"))(r))
	require.Empty(t, CompositeKeyExtractor("|", fixed(""))(r))
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	cfg := RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}

	t.Run("allows burst then rejects", func(t *testing.T) {
		t.Parallel()
		h := RateLimitByIP(cfg)(okHandler())

		for range 2 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestFrom("192.0.2.1"))
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.0.2.1"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
		require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

		var body ErrorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "rate_limit_exceeded", body.Error)
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		h := RateLimitByIP(RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1})(okHandler())

		for _, ip := range []string{"192.0.2.1", "192.0.2.2"} {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestFrom(ip))
			require.Equal(t, http.StatusOK, rec.Code, ip)
		}
	})

	t.Run("empty key passes", func(t *testing.T) {
		t.Parallel()
		h := RateLimitMiddleware(RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1},
			func(*http.Request) string { return "" })(okHandler())

		for range 5 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestFrom("192.0.2.1"))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestRateLimitByDevice(t *testing.T) {
	t.Parallel()

	h := RateLimitByDevice(RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1})(okHandler())

	withDevice := func(id string) *http.Request {
		r := requestFrom("192.0.2.9")
		return r.WithContext(context.WithValue(r.Context(), CtxKeyDeviceID, id))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withDevice("dev-a"))
	require.Equal(t, http.StatusOK, rec.Code)

	// same address, different device
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, withDevice("dev-b"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, withDevice("dev-a"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestProfilesAreOrdered(t *testing.T) {
	t.Parallel()

	perSecond := func(c RateLimitConfig) float64 { return float64(c.RequestsPerWindow) / c.Window.Seconds() }
	require.Less(t, perSecond(StrictLimit), perSecond(ModerateLimit))
	require.Less(t, perSecond(ModerateLimit), perSecond(LenientLimit))
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	t.Setenv("RATELIMIT_TEST_REQUESTS", "50")
	t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "30")
	t.Setenv("RATELIMIT_TEST_BURST", "-1")

	got := ParseRateLimitFromEnv("TEST", def)
	require.Equal(t, 50, got.RequestsPerWindow)
	require.Equal(t, 30*time.Second, got.Window)
	require.Equal(t, 5, got.Burst)

	require.Equal(t, def, ParseRateLimitFromEnv("UNSET", def))
}

func BenchmarkRateLimitMiddleware(b *testing.B) {
	h := RateLimitByIP(RateLimitConfig{RequestsPerWindow: 1_000_000, Window: time.Second, Burst: 1_000_000})(okHandler())
	r := requestFrom("192.0.2.1")

	b.ResetTimer()
	for range b.N {
		h.ServeHTTP(httptest.NewRecorder(), r)
	}
}
