package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-pairing/utils"
)

const secret = "test-secret"

func protected() http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := GetUserRoleFromContext(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Write([]byte(role))
	})
	return Authenticate(secret)(Authorize(utils.RoleOrganizer)(ok))
}

func TestAuthenticate(t *testing.T) {
	valid, err := utils.GenerateJWT([]byte(secret), utils.RoleOrganizer, time.Hour, time.Now())
	require.NoError(t, err)
	expired, err := utils.GenerateJWT([]byte(secret), utils.RoleOrganizer, time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	foreign, err := utils.GenerateJWT([]byte("other"), utils.RoleOrganizer, time.Hour, time.Now())
	require.NoError(t, err)
	spectator, err := utils.GenerateJWT([]byte(secret), "spectator", time.Hour, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"unknown role", "Bearer " + spectator, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tournaments", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected().ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, utils.RoleOrganizer, rec.Body.String())
			}
		})
	}
}

func TestAuthorizeRejectsOtherRoles(t *testing.T) {
	h := Authorize("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithClaims(req.Context(), jwt.MapClaims{utils.ClaimRole: utils.RoleOrganizer}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
