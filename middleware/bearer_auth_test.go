package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timgluz/zuckerspiegel/secret"
)

func TestBearerAuth(t *testing.T) {
	store := secret.NewInMemoryStore()
	require.NoError(t, store.Set("valid-token", "valid-token"))

	called := false
	handler := BearerAuth(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		called = true
		w.WriteHeader(http.StatusOK)
	}, store)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantCalled bool
	}{
		{"valid token", "Bearer valid-token", http.StatusOK, true},
		{"unknown token", "Bearer wrong-token", http.StatusUnauthorized, false},
		{"missing header", "", http.StatusUnauthorized, false},
		{"wrong auth type", "Basic dXNlcjpwYXNz", http.StatusBadRequest, false},
		{"empty token", "Bearer   ", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			r := httptest.NewRequest(http.MethodGet, "/predict", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			handler(w, r, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}
