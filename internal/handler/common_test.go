package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type restockReq struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"required,min=1"`
}

func bindCtx(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBindAndValidateAcceptsValidBody(t *testing.T) {
	c, rec := bindCtx(`{"name":"runner","count":2}`)

	var req restockReq
	assert.True(t, bindAndValidate(c, &req))
	assert.Equal(t, "runner", req.Name)
	assert.Empty(t, rec.Body.String(), "nothing may be written for a valid request")
}

// A handler that gets false back must stop; the 400 naming the missing
// fields has already been written.
func TestBindAndValidateRejectsAndWrites400(t *testing.T) {
	c, rec := bindCtx(`{"count":0}`)

	var req restockReq
	assert.False(t, bindAndValidate(c, &req))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "required", resp.Fields["Name"])
	assert.Equal(t, "required", resp.Fields["Count"])
}

func TestBindAndValidateRejectsMalformedJSON(t *testing.T) {
	c, rec := bindCtx(`{"name":`)

	var req restockReq
	assert.False(t, bindAndValidate(c, &req))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid body")
}
