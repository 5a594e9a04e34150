package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/styleshoehub/storefront-gateway/internal/upstream"
)

// validate is shared by every handler; DTOs declare their rules as tags.
var validate = validator.New(validator.WithRequiredStructEnabled())

// bindAndValidate decodes the JSON body and runs validation. It reports
// whether the request may proceed; on failure it has already written the 400
// naming the offending fields, and the caller must stop without touching the
// upstream API.
func bindAndValidate(c echo.Context, req any) bool {
	if err := c.Bind(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := map[string]string{}
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
		return false
	}
	return true
}

// upstreamError maps a data-API failure onto the caller's response:
// upstream's status is forwarded when it is a client error, everything else
// degrades to 502 with the action named so the page can show "failed to
// load X" in place.
func upstreamError(c echo.Context, action string, err error) error {
	if apiErr, ok := err.(*upstream.APIError); ok && apiErr.Status >= 400 && apiErr.Status < 500 {
		return c.JSON(apiErr.Status, echo.Map{"error": action + " failed"})
	}
	return c.JSON(http.StatusBadGateway, echo.Map{"error": action + " failed"})
}
