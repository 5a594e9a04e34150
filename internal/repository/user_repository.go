package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AuthUser mirrors the 'auth_users' table used by the dev-mode auth
// provider. In provider mode this table is never touched; the external auth
// service owns credentials.
type AuthUser struct {
	ID           uint64
	Email        string
	PasswordHash string
	DisplayName  string
	PhotoURL     string
	LastSignIn   sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a dev-auth user with a bcrypt-hashed password.
func (r *UserRepo) Create(ctx context.Context, email, password, displayName string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO auth_users (email, password_hash, display_name) VALUES (?,?,?)",
		email, string(hash), displayName)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a dev-auth user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (AuthUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u AuthUser
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,display_name,photo_url,last_sign_in,created_at,updated_at FROM auth_users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.PhotoURL, &u.LastSignIn, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// VerifyPassword safely compares the stored bcrypt hash and a candidate.
func (u AuthUser) VerifyPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// TouchSignIn records a successful sign-in time.
func (r *UserRepo) TouchSignIn(ctx context.Context, email string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE auth_users SET last_sign_in=NOW() WHERE email=?", email)
	return err
}

// UpdateProfile sets the display name and photo URL for an email.
func (r *UserRepo) UpdateProfile(ctx context.Context, email, displayName, photoURL string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE auth_users SET display_name=?, photo_url=? WHERE email=?",
		displayName, photoURL, email)
	return err
}
