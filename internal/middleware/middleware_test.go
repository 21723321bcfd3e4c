package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"journal-transporter/transporter/internal/auth"
	"journal-transporter/transporter/internal/logging"
	"journal-transporter/transporter/internal/metrics"
	"journal-transporter/transporter/internal/models/entities"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeys map[string]bool

func (f fakeKeys) GetStatus(_ context.Context, key string) (*entities.ApiKey, error) {
	status, ok := f[key]
	if !ok {
		return nil, nil
	}
	return &entities.ApiKey{ApiKey: key, Status: status}, nil
}

var testSecret = []byte("middleware-secret")

func protected(t *testing.T, m *metrics.MetricsRegistry) http.Handler {
	t.Helper()
	logging.InitNop()
	keys := fakeKeys{"active": true, "revoked": false}
	return AuthMiddleware(keys, testSecret, m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetClientClaims(r.Context())
		w.Write([]byte(claims.ClientID()))
	}))
}

func TestAuthMiddleware(t *testing.T) {
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	handler := protected(t, m)

	token, err := auth.IssueToken(testSecret, "cli", time.Hour, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
		wantBody   string
	}{
		{"active key", map[string]string{"X-API-Key": "active"}, http.StatusOK, "active"},
		{"revoked key", map[string]string{"X-API-Key": "revoked"}, http.StatusUnauthorized, ""},
		{"unknown key", map[string]string{"X-API-Key": "nope"}, http.StatusUnauthorized, ""},
		{"bearer token", map[string]string{"Authorization": "Bearer " + token}, http.StatusOK, "cli"},
		{"bad token", map[string]string{"Authorization": "Bearer junk"}, http.StatusUnauthorized, ""},
		{"no credentials", nil, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/journals", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthFailuresTotal.WithLabelValues("api_key")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthFailuresTotal.WithLabelValues("none")))
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "given")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "given", seen)
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	logging.InitNop()
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.Get("/journals/{pk}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/journals/7", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/journals/{pk}", "GET", "418")))
}

func TestRateLimiterPerClient(t *testing.T) {
	logging.InitNop()
	rl := NewRateLimiter(0.001, 2)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	call := func(remote, key string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		if key != "" {
			req.Header.Set("X-API-Key", key)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1000", ""))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1000", ""))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1000", ""))

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1000", "k1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1000", ""))

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, call("127.0.0.1:1000", ""))
	}
}
