package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshoehub/storefront-gateway/internal/cart"
	"github.com/styleshoehub/storefront-gateway/internal/guard"
	"github.com/styleshoehub/storefront-gateway/internal/kvcache"
	"github.com/styleshoehub/storefront-gateway/internal/model"
	"github.com/styleshoehub/storefront-gateway/internal/upstream"
)

type cartFixture struct {
	handler *CartHandler
	hits    *int64
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/policies/"):
			_, _ = w.Write([]byte(`{"_id":"p1","title":"Runner Pro","price":120}`))
		case r.URL.Path == "/cart" && r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`[{"productId":"p1","size":"42","color":"Black","quantity":1}]`))
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	t.Cleanup(srv.Close)

	client := upstream.NewClient(srv.URL, zerolog.Nop())
	cache := upstream.NewQueryCache(kvcache.NewMemory(), "q", time.Minute)
	api := upstream.NewAPI(client, cache, upstream.NewInvalidator(cache, nil))

	return &cartFixture{
		handler: NewCartHandler(cart.NewStore(api.Cart), api),
		hits:    &hits,
	}
}

func postCartAdd(t *testing.T, body string, id *model.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/cart", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		c.Set(guard.CtxIdentity, id)
	}
	return c, rec
}

func TestCartAddIncompleteSelectionMakesNoCall(t *testing.T) {
	fx := newCartFixture(t)
	customer := &model.Identity{Email: "c@shop.bd"}

	for _, body := range []string{
		`{"productId":"p1","size":"","color":"Black","quantity":1}`,
		`{"productId":"p1","size":"42","color":"","quantity":1}`,
		`{"productId":"p1","size":"  ","color":"Black","quantity":1}`,
	} {
		c, rec := postCartAdd(t, body, customer)
		require.NoError(t, fx.handler.Add(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "size and color")
	}
	assert.Zero(t, atomic.LoadInt64(fx.hits), "an incomplete selection must cause zero network calls")
}

func TestCartAddZeroQuantityMakesNoCall(t *testing.T) {
	fx := newCartFixture(t)
	customer := &model.Identity{Email: "c@shop.bd"}

	c, rec := postCartAdd(t, `{"productId":"p1","size":"42","color":"Black","quantity":0}`, customer)
	require.NoError(t, fx.handler.Add(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, atomic.LoadInt64(fx.hits))
}

func TestCartAddValidSelectionMirrorsServer(t *testing.T) {
	fx := newCartFixture(t)
	customer := &model.Identity{Email: "c@shop.bd"}

	c, rec := postCartAdd(t, `{"productId":"p1","size":"42","color":"Black","quantity":1}`, customer)
	require.NoError(t, fx.handler.Add(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	// Product lookup, line-item post, mirror refetch.
	assert.EqualValues(t, 3, atomic.LoadInt64(fx.hits))
	assert.Contains(t, rec.Body.String(), `"p1"`)
}

func TestCartAddRequiresSession(t *testing.T) {
	fx := newCartFixture(t)

	c, rec := postCartAdd(t, `{"productId":"p1","size":"42","color":"Black","quantity":1}`, nil)
	require.NoError(t, fx.handler.Add(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, atomic.LoadInt64(fx.hits))
}
