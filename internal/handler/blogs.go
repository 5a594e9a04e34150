package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/styleshoehub/storefront-gateway/internal/guard"
	"github.com/styleshoehub/storefront-gateway/internal/imagehost"
	"github.com/styleshoehub/storefront-gateway/internal/model"
	"github.com/styleshoehub/storefront-gateway/internal/upstream"
)

// BlogsHandler covers dashboard blog authoring for agents and admins.
type BlogsHandler struct {
	API    *upstream.API
	Images *imagehost.Client
}

func NewBlogsHandler(api *upstream.API, images *imagehost.Client) *BlogsHandler {
	return &BlogsHandler{API: api, Images: images}
}

type blogReq struct {
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content" validate:"required"`
	CoverImage string `json:"coverImage"` // base64, optional
}

// Create handles POST /blogs; the author is the session identity.
func (h *BlogsHandler) Create(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	var req blogReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	ctx = upstream.WithActor(ctx, id.Email)

	imageURL := ""
	if strings.TrimSpace(req.CoverImage) != "" {
		url, err := h.Images.Upload(ctx, req.CoverImage)
		if err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "cover upload failed"})
		}
		imageURL = url
	}
	err := h.API.Blogs.Create(ctx, model.Blog{
		Title:       req.Title,
		Content:     req.Content,
		Image:       imageURL,
		AuthorEmail: id.Email,
		AuthorName:  id.DisplayName,
		PublishedAt: time.Now().UTC(),
	})
	if err != nil {
		return upstreamError(c, "publish blog", err)
	}
	return c.NoContent(http.StatusCreated)
}

// Mine handles GET /blogs/author for the signed-in author.
func (h *BlogsHandler) Mine(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	blogs, err := h.API.Blogs.ListByAuthor(upstream.WithActor(ctx, id.Email), id.Email)
	if err != nil {
		return upstreamError(c, "load blogs", err)
	}
	return c.JSON(http.StatusOK, blogs)
}

// Update handles PATCH /blogs/:id. Authors may only edit their own posts;
// admins may edit any. Ownership is checked against the author list rather
// than trusted from the body.
func (h *BlogsHandler) Update(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	var req blogReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	ctx = upstream.WithActor(ctx, id.Email)

	blogID := c.Param("id")
	if role, ok := guard.RoleFrom(c); !ok || role != model.RoleAdmin {
		if owned, err := h.ownsBlog(c, blogID, id.Email); err != nil {
			return upstreamError(c, "load blogs", err)
		} else if !owned {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden", "guard": "blog_owner"})
		}
	}
	err := h.API.Blogs.Update(ctx, blogID, model.Blog{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return upstreamError(c, "update blog", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /blogs/:id with the same ownership rule.
func (h *BlogsHandler) Delete(c echo.Context) error {
	id := guard.IdentityFrom(c)
	if id == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "login required"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	ctx = upstream.WithActor(ctx, id.Email)

	blogID := c.Param("id")
	if role, ok := guard.RoleFrom(c); !ok || role != model.RoleAdmin {
		if owned, err := h.ownsBlog(c, blogID, id.Email); err != nil {
			return upstreamError(c, "load blogs", err)
		} else if !owned {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden", "guard": "blog_owner"})
		}
	}
	if err := h.API.Blogs.Delete(ctx, blogID); err != nil {
		return upstreamError(c, "delete blog", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BlogsHandler) ownsBlog(c echo.Context, blogID, email string) (bool, error) {
	ctx, cancel := reqCtx(c)
	defer cancel()
	blogs, err := h.API.Blogs.ListByAuthor(upstream.WithActor(ctx, email), email)
	if err != nil {
		return false, err
	}
	for _, b := range blogs {
		if b.ID == blogID {
			return true, nil
		}
	}
	return false, nil
}
