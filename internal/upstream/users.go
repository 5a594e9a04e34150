package upstream

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/styleshoehub/storefront-gateway/internal/model"
)

// RoleClient is the single upstream call the role resolver depends on. It
// carries no cache and no invalidator: caching roles is the resolver's job.
type RoleClient struct{ C *Client }

// FetchRole reads GET /user/role/{email} and maps the answer onto the
// closed Role type.
func (rc RoleClient) FetchRole(ctx context.Context, email string) (model.Role, error) {
	raw, err := rc.C.GetRaw(ctx, "/user/role/"+url.PathEscape(email))
	if err != nil {
		return "", err
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", err
	}
	return model.ParseRole(body.Role)
}

// UsersAPI is the admin-facing user directory.
type UsersAPI struct {
	c   *Client
	q   *QueryCache
	inv *Invalidator
}

// List returns every backend user record, cached under ("users","list").
func (a *UsersAPI) List(ctx context.Context) ([]model.User, error) {
	return GetJSON[[]model.User](ctx, a.q, K(ResUsers, "list"), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/users")
	})
}

// Create registers the backend's copy of a new account (POST /user). Runs
// at sign-up, after the auth provider accepts the account.
func (a *UsersAPI) Create(ctx context.Context, u model.User) error {
	if err := a.c.Post(ctx, "/user", u, nil); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutUserCreate)
	return nil
}

// UpdateRole promotes or demotes a user. On success both the users list
// and the target's cached role entry are invalidated through the map, so the
// promotion is visible to the user's own session on its next resolve.
func (a *UsersAPI) UpdateRole(ctx context.Context, email string, role model.Role) error {
	if !role.Valid() {
		return model.ErrUnknownRole
	}
	body := map[string]string{"role": role.String()}
	if err := a.c.Patch(ctx, "/user/role/update/"+url.PathEscape(email), body, nil); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutUserRoleUpdate, email)
	return nil
}

// Delete removes a backend user record by id.
func (a *UsersAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.Delete(ctx, "/user/"+url.PathEscape(id)); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutUserDelete)
	return nil
}
