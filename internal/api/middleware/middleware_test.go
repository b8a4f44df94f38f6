package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercuts/BookingService/internal/service/auth"
	"github.com/mastercuts/BookingService/pkg/logger"
)

type observed struct {
	method, route string
	status        int
}

type fakeMetrics struct{ calls []observed }

func (f *fakeMetrics) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.calls = append(f.calls, observed{method, route, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/admin/reservations/{reservationId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/admin/reservations/123", nil))

	require.Len(t, m.calls, 1)
	assert.Equal(t, observed{http.MethodGet, "/api/v1/admin/reservations/{reservationId}", http.StatusNotFound}, m.calls[0])
}

func TestAdminAuth(t *testing.T) {
	svc := auth.NewService(auth.Config{Secret: "secret", TokenTTL: time.Hour, Issuer: "test"}, logger.Nop())
	state, err := svc.IssueState()
	require.NoError(t, err)

	protected := AdminAuth(svc, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"state token is not an admin token", "Bearer " + state, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reservations", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func newTestLimiter(t *testing.T, burst int, trusted ...string) (*RateLimiter, http.Handler) {
	t.Helper()
	limiter, err := NewRateLimiter(1, burst, trusted, logger.Nop())
	require.NoError(t, err)
	h := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	return limiter, h
}

func call(h http.Handler, remote, forwarded string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	req.RemoteAddr = remote
	if forwarded != "" {
		req.Header.Set("X-Forwarded-For", forwarded)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_PerIP(t *testing.T) {
	_, h := newTestLimiter(t, 2)

	assert.Equal(t, http.StatusOK, call(h, "10.0.0.1:5000", ""))
	assert.Equal(t, http.StatusOK, call(h, "10.0.0.1:5001", ""))
	assert.Equal(t, http.StatusTooManyRequests, call(h, "10.0.0.1:5002", ""))

	// другой клиент не затронут
	assert.Equal(t, http.StatusOK, call(h, "10.0.0.2:5000", ""))
}

func TestRateLimiter_IgnoresForwardedFromUntrustedPeer(t *testing.T) {
	limiter, h := newTestLimiter(t, 3)

	allowed := 0
	for i := 0; i < 100; i++ {
		if call(h, "203.0.113.7:4000", fmt.Sprintf("10.0.0.%d", i)) == http.StatusOK {
			allowed++
		}
	}

	assert.Equal(t, 3, allowed)
	assert.Equal(t, 1, limiter.size())
}

func TestRateLimiter_TrustedProxy(t *testing.T) {
	limiter, h := newTestLimiter(t, 1, "10.0.0.0/8")

	// клиенты за прокси различаются по X-Forwarded-For
	assert.Equal(t, http.StatusOK, call(h, "10.1.1.1:80", "203.0.113.7"))
	assert.Equal(t, http.StatusTooManyRequests, call(h, "10.1.1.1:80", "203.0.113.7"))
	assert.Equal(t, http.StatusOK, call(h, "10.1.1.1:80", "198.51.100.4"))

	// подделанный левый адрес не помогает: берётся самый правый недоверенный
	assert.Equal(t, http.StatusTooManyRequests, call(h, "10.1.1.1:80", "1.2.3.4, 203.0.113.7, 10.2.2.2"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.1.1:80"
	assert.Equal(t, "10.1.1.1", limiter.clientIP(req))
}

func TestRateLimiter_SweepEvictsIdle(t *testing.T) {
	limiter, h := newTestLimiter(t, 1)
	now := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	call(h, "10.0.0.1:1", "")
	now = now.Add(limiterIdleTTL / 2)
	call(h, "10.0.0.2:1", "")
	now = now.Add(limiterIdleTTL/2 + time.Minute)

	assert.Equal(t, 1, limiter.sweep())
	assert.Equal(t, 1, limiter.size())

	// после вытеснения клиент начинает с полным запасом
	assert.Equal(t, http.StatusOK, call(h, "10.0.0.1:1", ""))
}

func TestRateLimiter_RunCleanupStops(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1)
	stopCh := make(chan struct{})
	done := make(chan struct{})

	go func() {
		limiter.RunCleanup(stopCh)
		close(done)
	}()
	close(stopCh)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunCleanup did not stop")
	}
}

func TestNewRateLimiter_InvalidProxy(t *testing.T) {
	_, err := NewRateLimiter(1, 1, []string{"not-an-ip"}, logger.Nop())
	assert.Error(t, err)
}
