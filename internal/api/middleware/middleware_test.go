package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoUserID(t *testing.T, want *uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := GetUserID(r.Context())
		if want == nil {
			assert.False(t, ok)
		} else {
			require.True(t, ok)
			assert.Equal(t, *want, got)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid", header: userID.String(), want: http.StatusOK},
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "not a uuid", header: "42", want: http.StatusUnauthorized},
		{name: "nil uuid", header: uuid.Nil.String(), want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set(UserIDHeader, tt.header)
			}
			w := httptest.NewRecorder()

			Auth(echoUserID(t, &userID)).ServeHTTP(w, r)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	userID := uuid.New()

	t.Run("guest", func(t *testing.T) {
		w := httptest.NewRecorder()
		OptionalAuth(echoUserID(t, nil)).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("user", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set(UserIDHeader, userID.String())
		w := httptest.NewRecorder()
		OptionalAuth(echoUserID(t, &userID)).ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set(UserIDHeader, "bob")
		w := httptest.NewRecorder()
		OptionalAuth(echoUserID(t, nil)).ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

type httpObservation struct {
	route  string
	method string
	status int
}

type recordingMetrics struct {
	observed []httpObservation
}

func (m *recordingMetrics) ObserveHTTP(route, method string, status int, _ time.Duration) {
	m.observed = append(m.observed, httpObservation{route: route, method: method, status: status})
}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	metrics := &recordingMetrics{}

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(metrics))
	r.HandleFunc("/salons/{salonId}/deals", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salons/"+uuid.NewString()+"/deals", nil))

	require.Len(t, metrics.observed, 1)
	assert.Equal(t, httpObservation{route: "/salons/{salonId}/deals", method: http.MethodGet, status: http.StatusTeapot}, metrics.observed[0])
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2)
	h := limiter.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(userID string) int {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(UserIDHeader, userID)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	alice, bob := uuid.NewString(), uuid.NewString()
	assert.Equal(t, http.StatusOK, call(alice))
	assert.Equal(t, http.StatusOK, call(alice))
	assert.Equal(t, http.StatusTooManyRequests, call(alice))
	assert.Equal(t, http.StatusOK, call(bob))
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(RequestIDHeader, "req-1")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))
}
