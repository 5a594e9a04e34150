package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/styleshoehub/storefront-gateway/internal/model"
	"github.com/styleshoehub/storefront-gateway/internal/repository"
)

// ErrInvalidSession is returned when an access or refresh token does not
// resolve to a live session.
var ErrInvalidSession = errors.New("invalid session")

// AccessToken is a signed HS256 JWT carrying the identity, set as the
// session cookie. Exp stores the expiration timestamp.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// RefreshToken is the long-lived token used to obtain new access tokens.
// Only a SHA-256 hash of Raw is stored server-side.
type RefreshToken struct {
	Raw string
	Exp time.Time
}

// TokenPair is what a successful sign-in yields alongside the identity.
type TokenPair struct {
	Access  AccessToken
	Refresh RefreshToken
}

// SessionManager implements the session state machine: Anonymous until a
// provider sign-in succeeds, Authenticated while a valid access token is
// presented, Anonymous again after sign-out. A failed operation leaves the
// session untouched; no retry is attempted here.
type SessionManager struct {
	Provider   Provider
	Tokens     *repository.TokenRepo
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewSessionManager(p Provider, tokens *repository.TokenRepo, secret string, accessTTLMin, refreshTTLDays int) *SessionManager {
	return &SessionManager{
		Provider:   p,
		Tokens:     tokens,
		Secret:     secret,
		AccessTTL:  time.Duration(accessTTLMin) * time.Minute,
		RefreshTTL: time.Duration(refreshTTLDays) * 24 * time.Hour,
	}
}

// Establish turns a provider-verified identity into a token pair, persisting
// the refresh token hash. This is the POST /jwt step of the original
// surface: the point where the gateway's own cookie is minted.
func (m *SessionManager) Establish(ctx context.Context, id model.Identity) (TokenPair, error) {
	access, err := m.newAccessToken(id)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := newRefreshToken(m.RefreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	if err := m.Tokens.StoreRefresh(ctx, id.Email, HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh validates a refresh token, revokes it and issues a fresh pair.
// The identity claims are rebuilt from the token's stored email; profile
// fields refresh on next sign-in.
func (m *SessionManager) Refresh(ctx context.Context, rawRefresh string) (model.Identity, TokenPair, error) {
	hash := HashRefreshRaw(rawRefresh)
	email, err := m.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return model.Identity{}, TokenPair{}, ErrInvalidSession
	}
	_ = m.Tokens.RevokeByHash(ctx, hash)
	id := model.Identity{Email: email}
	pair, err := m.Establish(ctx, id)
	if err != nil {
		return model.Identity{}, TokenPair{}, err
	}
	return id, pair, nil
}

// RefreshAccess issues a new access token without rotating the refresh
// token, for clients that only need a fresh short-lived credential.
func (m *SessionManager) RefreshAccess(ctx context.Context, rawRefresh string) (AccessToken, error) {
	email, err := m.Tokens.ValidateRefresh(ctx, HashRefreshRaw(rawRefresh))
	if err != nil {
		return AccessToken{}, ErrInvalidSession
	}
	return m.newAccessToken(model.Identity{Email: email})
}

// SignOut revokes every refresh token for the email and tells the provider.
// The session transitions to Anonymous regardless of provider outcome.
func (m *SessionManager) SignOut(ctx context.Context, email string) error {
	if err := m.Tokens.RevokeAllForEmail(ctx, email); err != nil {
		return err
	}
	return m.Provider.SignOut(ctx, email)
}

// VerifyAccess parses an access token and returns the identity it carries.
func (m *SessionManager) VerifyAccess(raw string) (model.Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return []byte(m.Secret), nil
	})
	if err != nil || !tok.Valid {
		return model.Identity{}, ErrInvalidSession
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return model.Identity{}, ErrInvalidSession
	}
	email, _ := claims["sub"].(string)
	if email == "" {
		return model.Identity{}, ErrInvalidSession
	}
	id := model.Identity{Email: email}
	if v, ok := claims["name"].(string); ok {
		id.DisplayName = v
	}
	if v, ok := claims["photo"].(string); ok {
		id.PhotoURL = v
	}
	return id, nil
}

// newAccessToken builds and signs an HS256 JWT for an identity. Claims:
// subject (sub=email), display name, photo URL, expiration and issued-at.
func (m *SessionManager) newAccessToken(id model.Identity) (AccessToken, error) {
	exp := time.Now().UTC().Add(m.AccessTTL)
	claims := jwt.MapClaims{
		"sub":   id.Email,
		"name":  id.DisplayName,
		"photo": id.PhotoURL,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(m.Secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// newRefreshToken returns a cryptographically random token and its expiry.
func newRefreshToken(ttl time.Duration) (RefreshToken, error) {
	raw, err := randomHex(48) // 48 bytes -> 96 hex chars
	if err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{Raw: raw, Exp: time.Now().UTC().Add(ttl)}, nil
}

// HashRefreshRaw returns the SHA-256 hash of the raw refresh token as a hex
// string. Storing only the hash prevents stolen database rows from being
// replayed as sessions.
func HashRefreshRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
