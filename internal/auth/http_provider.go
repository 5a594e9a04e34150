package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/styleshoehub/storefront-gateway/internal/model"
)

// HTTPProvider talks to the external auth service over REST. Its errors are
// collapsed to ErrAuthFailed on every credential path so the handler layer
// can surface a single generic message.
type HTTPProvider struct {
	baseURL string
	key     string
	http    *http.Client
	log     zerolog.Logger
}

// NewHTTPProvider builds a provider client. The publishable key is sent on
// every request; baseURL must not end with a slash.
func NewHTTPProvider(baseURL, key string, log zerolog.Logger) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("component", "auth_provider").Logger(),
	}
}

// identityPayload is the provider's account representation.
type identityPayload struct {
	Email          string    `json:"email"`
	DisplayName    string    `json:"displayName"`
	PhotoURL       string    `json:"photoURL"`
	LastSignInTime time.Time `json:"lastSignInTime"`
}

func (p *identityPayload) identity() model.Identity {
	return model.Identity{
		Email:          strings.ToLower(strings.TrimSpace(p.Email)),
		DisplayName:    p.DisplayName,
		PhotoURL:       p.PhotoURL,
		LastSignInTime: p.LastSignInTime,
	}
}

// call posts a JSON body to a provider endpoint and decodes the identity
// response. Non-2xx responses become ErrAuthFailed.
func (p *HTTPProvider) call(ctx context.Context, path string, body any) (model.Identity, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return model.Identity{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return model.Identity{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", p.key)

	resp, err := p.http.Do(req)
	if err != nil {
		p.log.Warn().Err(err).Str("path", path).Msg("provider unreachable")
		return model.Identity{}, ErrAuthFailed
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("provider rejected request")
		return model.Identity{}, ErrAuthFailed
	}
	var out identityPayload
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return model.Identity{}, fmt.Errorf("decode provider response: %w", err)
	}
	return out.identity(), nil
}

func (p *HTTPProvider) SignIn(ctx context.Context, email, password string) (model.Identity, error) {
	return p.call(ctx, "/sessions/password", map[string]string{"email": email, "password": password})
}

func (p *HTTPProvider) SignInWithGoogle(ctx context.Context, idToken string) (model.Identity, error) {
	return p.call(ctx, "/sessions/google", map[string]string{"idToken": idToken})
}

func (p *HTTPProvider) CreateUser(ctx context.Context, email, password, displayName string) (model.Identity, error) {
	return p.call(ctx, "/accounts", map[string]string{
		"email": email, "password": password, "displayName": displayName,
	})
}

func (p *HTTPProvider) UpdateProfile(ctx context.Context, email, displayName, photoURL string) (model.Identity, error) {
	return p.call(ctx, "/accounts/profile", map[string]string{
		"email": email, "displayName": displayName, "photoURL": photoURL,
	})
}

func (p *HTTPProvider) SignOut(ctx context.Context, email string) error {
	_, err := p.call(ctx, "/sessions/revoke", map[string]string{"email": email})
	if err != nil && err != ErrAuthFailed {
		return err
	}
	// A provider that has no session to revoke is still a successful
	// sign-out from the gateway's point of view.
	return nil
}
