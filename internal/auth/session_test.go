package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshoehub/storefront-gateway/internal/model"
)

func testManager(secret string) *SessionManager {
	return &SessionManager{
		Secret:     secret,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager("unit-secret")
	id := model.Identity{
		Email:       "c@shop.bd",
		DisplayName: "Casual Customer",
		PhotoURL:    "https://img.example/c.png",
	}

	tok, err := m.newAccessToken(id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(m.AccessTTL), tok.Exp, 5*time.Second)

	got, err := m.VerifyAccess(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestVerifyAccessRejectsWrongSecret(t *testing.T) {
	tok, err := testManager("secret-a").newAccessToken(model.Identity{Email: "c@shop.bd"})
	require.NoError(t, err)

	_, err = testManager("secret-b").VerifyAccess(tok.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerifyAccessRejectsExpired(t *testing.T) {
	m := testManager("unit-secret")
	m.AccessTTL = -time.Minute

	tok, err := m.newAccessToken(model.Identity{Email: "c@shop.bd"})
	require.NoError(t, err)

	_, err = m.VerifyAccess(tok.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerifyAccessRejectsGarbageAndMissingSubject(t *testing.T) {
	m := testManager("unit-secret")

	_, err := m.VerifyAccess("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)

	// A validly signed token with no subject is still not a session.
	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.Secret))
	require.NoError(t, err)
	_, err = m.VerifyAccess(signed)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerifyAccessRejectsUnexpectedAlgorithm(t *testing.T) {
	m := testManager("unit-secret")
	claims := jwt.MapClaims{"sub": "c@shop.bd", "exp": time.Now().Add(time.Hour).Unix()}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.VerifyAccess(unsigned)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestRefreshTokensAreRandomAndHashedStably(t *testing.T) {
	a, err := newRefreshToken(time.Hour)
	require.NoError(t, err)
	b, err := newRefreshToken(time.Hour)
	require.NoError(t, err)

	assert.Len(t, a.Raw, 96)
	assert.NotEqual(t, a.Raw, b.Raw)

	// Only the hash is ever stored; it must be deterministic and never the
	// raw value itself.
	assert.Equal(t, HashRefreshRaw(a.Raw), HashRefreshRaw(a.Raw))
	assert.NotEqual(t, a.Raw, HashRefreshRaw(a.Raw))
	assert.NotEqual(t, HashRefreshRaw(a.Raw), HashRefreshRaw(b.Raw))
}
