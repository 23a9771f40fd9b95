package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/identity"
	"github.com/doodlesbykumbi/hydra-in-go/pkg/token"
)

func newSigner(t *testing.T) *token.Signer {
	t.Helper()
	signer, err := token.NewSigner([]byte("test-secret"))
	require.NoError(t, err)
	return signer
}

func TestJWTMiddleware(t *testing.T) {
	signer := newSigner(t)
	valid, err := signer.Issue(7, "alice", time.Hour)
	require.NoError(t, err)
	other, _ := token.NewSigner([]byte("other-secret"))
	forged, err := other.Issue(7, "alice", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantMsg: "Authorization missing"},
		{name: "wrong scheme", header: "Token token=\"abc\"", wantStatus: http.StatusUnauthorized, wantMsg: "Malformed authorization header"},
		{name: "bad signature", header: "Bearer " + forged, wantStatus: http.StatusUnauthorized, wantMsg: "Invalid token"},
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *identity.Identity
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = identity.Get(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/projects", nil)
			req.RemoteAddr = "10.0.0.5:4321"
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			RequestID(NewJWTAuthenticator(signer).Middleware(next)).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				var body map[string]map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.wantMsg, body["error"]["message"])
				assert.Equal(t, "PermissionError", body["error"]["code"])
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, int64(7), got.UserID)
			assert.Equal(t, "alice", got.Username)
			assert.Equal(t, "10.0.0.5", got.ClientIP())
			assert.Equal(t, w.Header().Get(RequestIDHeader), got.RequestID)
		})
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.168.1.2:80"
	assert.Equal(t, "192.168.1.2", ClientIP(req).String())

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", ClientIP(req).String())
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})
}

func TestRateLimiter(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("disabled", func(t *testing.T) {
		h := NewRateLimiter(0, 1).Middleware(ok)
		for i := 0; i < 5; i++ {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("limits per caller", func(t *testing.T) {
		h := NewRateLimiter(0.001, 2).Middleware(ok)
		serve := func(user int64) int {
			req := httptest.NewRequest("GET", "/", nil)
			req = req.WithContext(identity.Set(req.Context(), &identity.Identity{UserID: user}))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			return w.Code
		}

		assert.Equal(t, http.StatusOK, serve(1))
		assert.Equal(t, http.StatusOK, serve(1))
		assert.Equal(t, http.StatusTooManyRequests, serve(1))
		assert.Equal(t, http.StatusOK, serve(2))
	})

	t.Run("follows limit changes", func(t *testing.T) {
		perSecond, burst := 0.001, 1
		h := NewDynamicRateLimiter(func() (float64, int) { return perSecond, burst }).Middleware(ok)
		serve := func() int {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
			return w.Code
		}

		assert.Equal(t, http.StatusOK, serve())
		assert.Equal(t, http.StatusTooManyRequests, serve())

		perSecond = 0
		assert.Equal(t, http.StatusOK, serve(), "limiting can be switched off")

		perSecond = 1000
		serve()
		time.Sleep(10 * time.Millisecond)
		assert.Equal(t, http.StatusOK, serve(), "a raised limit applies to known callers")
	})
}
