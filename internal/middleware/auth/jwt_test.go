package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func serve(t *testing.T, mw echo.MiddlewareFunc, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	handler := mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok", "jti": c.Get("access_token_id")})
	})
	e.Any("/*", handler)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIssueAndParseAccessToken(t *testing.T) {
	now := time.Now()
	token, expiresAt, err := IssueAccessToken(testSecret, time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	claims, err := ParseAccessToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, AccessIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	_, err = ParseAccessToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseAccessToken_Rejects(t *testing.T) {
	t.Run("expired", func(t *testing.T) {
		token, _, err := IssueAccessToken(testSecret, time.Minute, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		_, err = ParseAccessToken(testSecret, token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = ParseAccessToken(testSecret, token)
		assert.Error(t, err)
	})

	t.Run("no expiry", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Issuer: AccessIssuer,
		}).SignedString([]byte(testSecret))
		require.NoError(t, err)
		_, err = ParseAccessToken(testSecret, token)
		assert.Error(t, err)
	})
}

func TestJWTMiddleware(t *testing.T) {
	mw := JWTMiddleware(JWTConfig{
		Secret:    testSecret,
		Logger:    zap.NewNop(),
		SkipPaths: []string{"/api/auth/"},
	})

	valid, _, err := IssueAccessToken(testSecret, time.Hour, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"valid token", "/api/customers", "Bearer " + valid, http.StatusOK, ""},
		{"missing header", "/api/customers", "", http.StatusUnauthorized, "MISSING_AUTH_HEADER"},
		{"wrong scheme", "/api/customers", "Basic abc", http.StatusUnauthorized, "INVALID_AUTH_FORMAT"},
		{"bad token", "/api/customers", "Bearer not.a.token", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"skipped path", "/api/auth/check", "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, mw, tt.path, tt.header)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), tt.wantCode)
			}
		})
	}
}
