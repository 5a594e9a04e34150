package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshoehub/storefront-gateway/internal/auth"
	"github.com/styleshoehub/storefront-gateway/internal/guard"
	"github.com/styleshoehub/storefront-gateway/internal/model"
)

const testSecret = "session-test-secret"

func mintToken(t *testing.T, secret, email string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  email,
		"name": "Test User",
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runSessionAuth(t *testing.T, decorate func(*http.Request)) *model.Identity {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/policies", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	sessions := &auth.SessionManager{Secret: testSecret, AccessTTL: time.Hour}
	var got *model.Identity
	mw := SessionAuth(sessions)
	err := mw(func(c echo.Context) error {
		got = guard.IdentityFrom(c)
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	return got
}

func TestSessionAuthReadsCookie(t *testing.T) {
	id := runSessionAuth(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: mintToken(t, testSecret, "c@shop.bd")})
	})
	require.NotNil(t, id)
	assert.Equal(t, "c@shop.bd", id.Email)
	assert.Equal(t, "Test User", id.DisplayName)
}

func TestSessionAuthReadsBearerHeader(t *testing.T) {
	id := runSessionAuth(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+mintToken(t, testSecret, "api@shop.bd"))
	})
	require.NotNil(t, id)
	assert.Equal(t, "api@shop.bd", id.Email)
}

func TestSessionAuthAnonymousPassesThrough(t *testing.T) {
	assert.Nil(t, runSessionAuth(t, nil))
}

func TestSessionAuthTreatsBadTokenAsAnonymous(t *testing.T) {
	// Forged and garbage tokens do not error the request; they simply
	// leave it anonymous for the guards to deny.
	id := runSessionAuth(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: mintToken(t, "other-secret", "evil@shop.bd")})
	})
	assert.Nil(t, id)

	id = runSessionAuth(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	})
	assert.Nil(t, id)
}
