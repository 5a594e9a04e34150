package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/styleshoehub/storefront-gateway/internal/imagehost"
)

// UploadHandler forwards base64 image data to the external image host so
// API keys never reach the browser.
type UploadHandler struct {
	Images *imagehost.Client
}

func NewUploadHandler(images *imagehost.Client) *UploadHandler {
	return &UploadHandler{Images: images}
}

type uploadReq struct {
	Image string `json:"image" validate:"required"`
}

// Upload handles POST /upload-image.
func (h *UploadHandler) Upload(c echo.Context) error {
	var req uploadReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	url, err := h.Images.Upload(ctx, req.Image)
	if err != nil {
		if errors.Is(err, imagehost.ErrEmptyImage) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no image data"})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "image upload failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"url": url})
}
