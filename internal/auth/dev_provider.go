package auth

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/styleshoehub/storefront-gateway/internal/model"
	"github.com/styleshoehub/storefront-gateway/internal/repository"
)

// DevProvider implements Provider against the local auth_users table so the
// gateway can run without the external auth service (AUTH_MODE=dev).
// Passwords are bcrypt-hashed; Google sign-in is not available in this mode.
type DevProvider struct {
	Users *repository.UserRepo
	Cost  int
	log   zerolog.Logger
}

func NewDevProvider(users *repository.UserRepo, bcryptCost int, log zerolog.Logger) *DevProvider {
	return &DevProvider{Users: users, Cost: bcryptCost, log: log.With().Str("component", "dev_auth").Logger()}
}

func (p *DevProvider) SignIn(ctx context.Context, email, password string) (model.Identity, error) {
	u, err := p.Users.GetByEmail(ctx, email)
	if err != nil {
		if err != sql.ErrNoRows {
			p.log.Error().Err(err).Msg("dev auth lookup failed")
		}
		return model.Identity{}, ErrAuthFailed
	}
	if !u.VerifyPassword(password) {
		return model.Identity{}, ErrAuthFailed
	}
	_ = p.Users.TouchSignIn(ctx, u.Email)
	return devIdentity(u), nil
}

func (p *DevProvider) SignInWithGoogle(ctx context.Context, idToken string) (model.Identity, error) {
	// No Google federation in dev mode.
	return model.Identity{}, ErrAuthFailed
}

func (p *DevProvider) CreateUser(ctx context.Context, email, password, displayName string) (model.Identity, error) {
	if _, err := p.Users.Create(ctx, email, password, displayName, p.Cost); err != nil {
		if err == repository.ErrEmailExists {
			return model.Identity{}, repository.ErrEmailExists
		}
		p.log.Error().Err(err).Msg("dev auth create failed")
		return model.Identity{}, ErrAuthFailed
	}
	u, err := p.Users.GetByEmail(ctx, email)
	if err != nil {
		return model.Identity{}, ErrAuthFailed
	}
	return devIdentity(u), nil
}

func (p *DevProvider) UpdateProfile(ctx context.Context, email, displayName, photoURL string) (model.Identity, error) {
	if err := p.Users.UpdateProfile(ctx, email, displayName, photoURL); err != nil {
		p.log.Error().Err(err).Msg("dev auth profile update failed")
		return model.Identity{}, ErrAuthFailed
	}
	u, err := p.Users.GetByEmail(ctx, email)
	if err != nil {
		return model.Identity{}, ErrAuthFailed
	}
	return devIdentity(u), nil
}

func (p *DevProvider) SignOut(ctx context.Context, email string) error { return nil }

func devIdentity(u repository.AuthUser) model.Identity {
	last := time.Time{}
	if u.LastSignIn.Valid {
		last = u.LastSignIn.Time
	}
	return model.Identity{
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		PhotoURL:       u.PhotoURL,
		LastSignInTime: last,
	}
}
