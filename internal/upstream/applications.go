package upstream

import (
	"context"
	"net/url"

	"github.com/styleshoehub/storefront-gateway/internal/model"
)

// ApplicationsAPI covers policy enrollment requests.
type ApplicationsAPI struct {
	c   *Client
	q   *QueryCache
	inv *Invalidator
}

// List returns all applications (admin dashboard), cached.
func (a *ApplicationsAPI) List(ctx context.Context) ([]model.Application, error) {
	return GetJSON[[]model.Application](ctx, a.q, K(ResApplications, "list"), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/applications")
	})
}

// Get returns one application, cached under its id.
func (a *ApplicationsAPI) Get(ctx context.Context, id string) (model.Application, error) {
	return GetJSON[model.Application](ctx, a.q, K(ResApplications, id), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/applications/"+url.PathEscape(id))
	})
}

// ListByEmail returns a customer's own applications, cached per email.
func (a *ApplicationsAPI) ListByEmail(ctx context.Context, email string) ([]model.Application, error) {
	return GetJSON[[]model.Application](ctx, a.q, K(ResApplications, "email", email), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/applications?email="+url.QueryEscape(email))
	})
}

// Create submits an enrollment request.
func (a *ApplicationsAPI) Create(ctx context.Context, app model.Application) error {
	if err := a.c.Post(ctx, "/applications", app, nil); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutApplicationWrite)
	return nil
}

// UpdateStatus moves an application along Pending -> Approved/Rejected and
// optionally pins an agent (PATCH /applicationUpdate/{id}).
func (a *ApplicationsAPI) UpdateStatus(ctx context.Context, id, status, agentEmail string) error {
	body := map[string]string{"status": status}
	if agentEmail != "" {
		body["agentEmail"] = agentEmail
	}
	if err := a.c.Patch(ctx, "/applicationUpdate/"+url.PathEscape(id), body, nil); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutApplicationWrite)
	return nil
}
