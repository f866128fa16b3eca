package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, key []byte, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(key)
	require.NoError(t, err)
	return s
}

func invoke(key []byte, authHeader string) (echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/bets", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return c, JWT(key)(next)(c)
}

func TestJWTValidToken(t *testing.T) {
	key := []byte("test-secret")
	userID := uuid.New()
	tok := signToken(t, key, &Claims{
		UserID: userID,
		Email:  "pat@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	c, err := invoke(key, tok)
	require.NoError(t, err)

	got, ok := UserID(c)
	require.True(t, ok)
	assert.Equal(t, userID, got)
	assert.Equal(t, "pat@example.com", c.Get("email"))
}

func TestJWTBearerPrefix(t *testing.T) {
	key := []byte("test-secret")
	tok := signToken(t, key, &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := invoke(key, "Bearer "+tok)
	assert.NoError(t, err)
}

func TestJWTMissingHeader(t *testing.T) {
	_, err := invoke([]byte("test-secret"), "")
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestJWTWrongKey(t *testing.T) {
	tok := signToken(t, []byte("other-secret"), &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := invoke([]byte("test-secret"), tok)
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, "invalid token signature", he.Message)
}

func TestJWTExpiredToken(t *testing.T) {
	key := []byte("test-secret")
	tok := signToken(t, key, &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := invoke(key, tok)
	assert.Error(t, err)
}

func TestJWTMissingUserIDClaim(t *testing.T) {
	key := []byte("test-secret")
	tok := signToken(t, key, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := invoke(key, tok)
	require.Error(t, err)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
