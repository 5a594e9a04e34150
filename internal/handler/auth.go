package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/styleshoehub/storefront-gateway/internal/auth"
	"github.com/styleshoehub/storefront-gateway/internal/guard"
	"github.com/styleshoehub/storefront-gateway/internal/middleware"
	"github.com/styleshoehub/storefront-gateway/internal/model"
	"github.com/styleshoehub/storefront-gateway/internal/repository"
	"github.com/styleshoehub/storefront-gateway/internal/upstream"
)

// AuthHandler bundles dependencies for session endpoints. Every credential
// failure surfaces the same generic message; provider details stay in logs.
type AuthHandler struct {
	Sessions *auth.SessionManager
	Users    *upstream.UsersAPI
	Log      zerolog.Logger
}

func NewAuthHandler(s *auth.SessionManager, users *upstream.UsersAPI, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{Sessions: s, Users: users, Log: log.With().Str("component", "auth_handler").Logger()}
}

// ----- DTOs -----

type registerReq struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"displayName" validate:"required"`
	PhotoURL    string `json:"photoURL"`
}
type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
type googleReq struct {
	IDToken string `json:"idToken" validate:"required"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}
type profileReq struct {
	DisplayName string `json:"displayName" validate:"required"`
	PhotoURL    string `json:"photoURL" validate:"omitempty,url"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type authResp struct {
	User    model.Identity `json:"user"`
	Access  tokenPart      `json:"access"`
	Refresh tokenPart      `json:"refresh"`
}

// establish mints the session pair, sets the cookies and writes the
// response. This is the common tail of every successful sign-in path.
func (h *AuthHandler) establish(c echo.Context, ctx context.Context, id model.Identity, status int) error {
	pair, err := h.Sessions.Establish(ctx, id)
	if err != nil {
		h.Log.Error().Err(err).Msg("establish session failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	setSessionCookies(c, pair)
	return c.JSON(status, authResp{
		User:    id,
		Access:  tokenPart{Token: pair.Access.Token, Expires: pair.Access.Exp},
		Refresh: tokenPart{Token: pair.Refresh.Raw, Expires: pair.Refresh.Exp},
	})
}

func setSessionCookies(c echo.Context, pair auth.TokenPair) {
	c.SetCookie(&http.Cookie{
		Name: middleware.SessionCookie, Value: pair.Access.Token,
		Path: "/", Expires: pair.Access.Exp, HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
	c.SetCookie(&http.Cookie{
		Name: "refresh_token", Value: pair.Refresh.Raw,
		Path: "/", Expires: pair.Refresh.Exp, HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookies(c echo.Context) {
	for _, name := range []string{middleware.SessionCookie, "refresh_token"} {
		c.SetCookie(&http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	}
}

// Register creates the provider account, mirrors it to the backend user
// directory and signs the user in immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := h.Sessions.Provider.CreateUser(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication failed"})
	}
	// The backend keeps its own user record; new accounts start as
	// customers there. A failure here is logged but does not undo the
	// provider account; the record is recreated on next sign-in.
	if err := h.Users.Create(ctx, model.User{
		Email: id.Email, Name: id.DisplayName, PhotoURL: req.PhotoURL, Role: model.RoleCustomer,
	}); err != nil {
		h.Log.Warn().Err(err).Str("email", id.Email).Msg("backend user record create failed")
	}
	return h.establish(c, ctx, id, http.StatusCreated)
}

// Login verifies credentials with the provider and establishes a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := h.Sessions.Provider.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication failed"})
	}
	return h.establish(c, ctx, id, http.StatusOK)
}

// GoogleLogin exchanges a Google ID token through the provider.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req googleReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := h.Sessions.Provider.SignInWithGoogle(ctx, req.IDToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication failed"})
	}
	// Google sign-ins may be first-time users; mirror the record the same
	// way registration does.
	if err := h.Users.Create(ctx, model.User{
		Email: id.Email, Name: id.DisplayName, PhotoURL: id.PhotoURL, Role: model.RoleCustomer,
	}); err != nil {
		h.Log.Debug().Err(err).Str("email", id.Email).Msg("backend user mirror skipped")
	}
	return h.establish(c, ctx, id, http.StatusOK)
}

// Refresh rotates the refresh token and reissues the pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	raw := refreshTokenFrom(c)
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, pair, err := h.Sessions.Refresh(ctx, raw)
	if err != nil {
		if err == auth.ErrInvalidSession {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	setSessionCookies(c, pair)
	return c.JSON(http.StatusOK, authResp{
		User:    id,
		Access:  tokenPart{Token: pair.Access.Token, Expires: pair.Access.Exp},
		Refresh: tokenPart{Token: pair.Refresh.Raw, Expires: pair.Refresh.Exp},
	})
}

// RefreshAccess issues a new access token without rotating the refresh
// token.
func (h *AuthHandler) RefreshAccess(c echo.Context) error {
	raw := refreshTokenFrom(c)
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	access, err := h.Sessions.RefreshAccess(ctx, raw)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access": tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Logout revokes every session for the signed-in user and clears cookies.
// Transitioning to Anonymous always succeeds from the client's view.
func (h *AuthHandler) Logout(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		clearSessionCookies(c)
		return c.NoContent(http.StatusNoContent)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Sessions.SignOut(ctx, id.Email); err != nil {
		h.Log.Warn().Err(err).Str("email", id.Email).Msg("sign out cleanup failed")
	}
	clearSessionCookies(c)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the session identity.
func (h *AuthHandler) Me(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	return c.JSON(http.StatusOK, id)
}

// UpdateProfile pushes the new display name and photo to the provider and
// reissues the access token so the session carries the fresh claims.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	var req profileReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	updated, err := h.Sessions.Provider.UpdateProfile(ctx, id.Email, req.DisplayName, req.PhotoURL)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "profile update failed"})
	}
	return h.establish(c, ctx, updated, http.StatusOK)
}

// refreshTokenFrom accepts the refresh token from the cookie or the body.
func refreshTokenFrom(c echo.Context) string {
	if ck, err := c.Cookie("refresh_token"); err == nil && ck.Value != "" {
		return ck.Value
	}
	var req refreshReq
	_ = c.Bind(&req)
	return strings.TrimSpace(req.RefreshToken)
}
