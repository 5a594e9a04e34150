package upstream

import (
	"context"
	"net/url"

	"github.com/styleshoehub/storefront-gateway/internal/model"
)

// BlogsAPI covers dashboard-authored articles.
type BlogsAPI struct {
	c   *Client
	q   *QueryCache
	inv *Invalidator
}

// List returns all published blogs, cached.
func (a *BlogsAPI) List(ctx context.Context) ([]model.Blog, error) {
	return GetJSON[[]model.Blog](ctx, a.q, K(ResBlogs, "list"), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/blogs")
	})
}

// ListByAuthor returns one author's blogs, cached per email.
func (a *BlogsAPI) ListByAuthor(ctx context.Context, email string) ([]model.Blog, error) {
	return GetJSON[[]model.Blog](ctx, a.q, K(ResBlogs, "author", email), func(ctx context.Context) ([]byte, error) {
		return a.c.GetRaw(ctx, "/blogs/author/"+url.PathEscape(email))
	})
}

// Create publishes an article.
func (a *BlogsAPI) Create(ctx context.Context, b model.Blog) error {
	if err := a.c.Post(ctx, "/blogs", b, nil); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutBlogWrite)
	return nil
}

// Update patches an article.
func (a *BlogsAPI) Update(ctx context.Context, id string, b model.Blog) error {
	if err := a.c.Patch(ctx, "/blogs/"+url.PathEscape(id), b, nil); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutBlogWrite)
	return nil
}

// Delete removes an article.
func (a *BlogsAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.Delete(ctx, "/blogs/"+url.PathEscape(id)); err != nil {
		return err
	}
	a.inv.MutationDone(ctx, MutBlogWrite)
	return nil
}

// RecordVisit bumps the visit counter (PATCH /blogs/{id}/visit). The list
// cache is left alone: a stale visit count on the index page is cheaper
// than refetching the whole list per page view.
func (a *BlogsAPI) RecordVisit(ctx context.Context, id string) error {
	return a.c.Patch(ctx, "/blogs/"+url.PathEscape(id)+"/visit", nil, nil)
}
