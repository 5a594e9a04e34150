// Package auth owns the session: it wraps the external auth provider and
// issues/verifies the gateway's own session tokens. Nothing outside this
// package talks to the auth provider.
package auth

import (
	"context"
	"errors"

	"github.com/styleshoehub/storefront-gateway/internal/model"
)

// ErrAuthFailed is the opaque surface for any provider failure. Provider
// error details are logged, never shown: the caller only learns that
// authentication failed, per the storefront's error policy.
var ErrAuthFailed = errors.New("authentication failed")

// Provider abstracts the third-party auth service. Two implementations
// exist: HTTPProvider against the real service and DevProvider backed by
// local MySQL for offline development.
type Provider interface {
	// SignIn verifies email/password credentials.
	SignIn(ctx context.Context, email, password string) (model.Identity, error)
	// SignInWithGoogle exchanges a Google ID token for an identity.
	SignInWithGoogle(ctx context.Context, idToken string) (model.Identity, error)
	// CreateUser registers a new account and returns its identity.
	CreateUser(ctx context.Context, email, password, displayName string) (model.Identity, error)
	// UpdateProfile sets display name and photo URL on the provider account.
	UpdateProfile(ctx context.Context, email, displayName, photoURL string) (model.Identity, error)
	// SignOut invalidates provider-side session state, if any.
	SignOut(ctx context.Context, email string) error
}
