package handler

import (
	"encoding/json"
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

	"github.com/styleshoehub/storefront-gateway/internal/guard"
	"github.com/styleshoehub/storefront-gateway/internal/imagehost"
	"github.com/styleshoehub/storefront-gateway/internal/kvcache"
	"github.com/styleshoehub/storefront-gateway/internal/model"
	"github.com/styleshoehub/storefront-gateway/internal/upstream"
)

// claimsFixture wires a real handler against a counting HTTP server so the
// tests can assert exactly how many network calls a request caused.
type claimsFixture struct {
	handler *ClaimsHandler
	hits    *int64
}

func newClaimsFixture(t *testing.T) *claimsFixture {
	t.Helper()
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/policies/"):
			_, _ = w.Write([]byte(`{"_id":"p1","title":"Runner Pro"}`))
		case r.URL.Path == "/1/upload":
			_, _ = w.Write([]byte(`{"data":{"url":"https://img.example/doc.png"}}`))
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	t.Cleanup(srv.Close)

	client := upstream.NewClient(srv.URL, zerolog.Nop())
	cache := upstream.NewQueryCache(kvcache.NewMemory(), "q", time.Minute)
	api := upstream.NewAPI(client, cache, upstream.NewInvalidator(cache, nil))
	images := imagehost.New(srv.URL+"/1/upload", "test-key")

	return &claimsFixture{
		handler: NewClaimsHandler(api, images, nil, zerolog.Nop()),
		hits:    &hits,
	}
}

func postClaim(t *testing.T, body string, id *model.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/claims", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		c.Set(guard.CtxIdentity, id)
	}
	return c, rec
}

func TestClaimWithoutDocumentIsRejectedBeforeAnyCall(t *testing.T) {
	fx := newClaimsFixture(t)
	customer := &model.Identity{Email: "c@shop.bd"}

	for _, doc := range []string{`""`, `"   "`} {
		body := `{"policyId":"p1","reason":"sole came off","documentImage":` + doc + `}`
		c, rec := postClaim(t, body, customer)
		require.NoError(t, fx.handler.Create(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp struct {
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "required", resp.Fields["DocumentImage"])
	}
	assert.Zero(t, atomic.LoadInt64(fx.hits), "a documentless claim must cause zero network calls")
}

func TestClaimWithDocumentUploadsThenSubmits(t *testing.T) {
	fx := newClaimsFixture(t)
	customer := &model.Identity{Email: "c@shop.bd"}

	body := `{"policyId":"p1","reason":"sole came off","documentImage":"aGVsbG8="}`
	c, rec := postClaim(t, body, customer)
	require.NoError(t, fx.handler.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	// Policy lookup, document upload, claim create.
	assert.EqualValues(t, 3, atomic.LoadInt64(fx.hits))
}

func TestClaimRequiresSession(t *testing.T) {
	fx := newClaimsFixture(t)

	body := `{"policyId":"p1","reason":"sole came off","documentImage":"aGVsbG8="}`
	c, rec := postClaim(t, body, nil)
	require.NoError(t, fx.handler.Create(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, atomic.LoadInt64(fx.hits))
}

func TestClaimValidationNamesMissingFields(t *testing.T) {
	fx := newClaimsFixture(t)
	customer := &model.Identity{Email: "c@shop.bd"}

	c, rec := postClaim(t, `{"documentImage":"aGVsbG8="}`, customer)
	require.NoError(t, fx.handler.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "required", resp.Fields["PolicyID"])
	assert.Equal(t, "required", resp.Fields["Reason"])
	assert.Zero(t, atomic.LoadInt64(fx.hits))
}
