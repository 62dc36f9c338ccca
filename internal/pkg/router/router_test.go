package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shandysiswandi/mailinglist/internal/pkg/config"
	"github.com/shandysiswandi/mailinglist/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRouter(t *testing.T) {
	cfg, err := config.NewViperFromBytes("yaml", []byte(`
app:
  maintenance:
    endpoints: /down
instrument:
  log_mask_fields: email
`))
	require.NoError(t, err)

	r := NewRouter(Config{Config: cfg, UUID: fixedID("cid-1")})
	r.GET("/ok", func(*Request) (any, error) { return map[string]string{"k": "v"}, nil })
	r.GET("/empty", func(*Request) (any, error) { return nil, nil })
	r.GET("/invalid", func(*Request) (any, error) { return nil, goerror.NewInvalidFormat() })
	r.GET("/plain-error", func(*Request) (any, error) { return nil, errors.New("secret detail") })
	r.GET("/panic", func(*Request) (any, error) { panic("boom") })
	r.GET("/down", func(*Request) (any, error) { return nil, nil })
	r.POSTRaw("/raw", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, map[string]string{"raw": "yes"}, http.StatusAccepted)
	}))

	do := func(method, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		return rec
	}

	t.Run("success envelope", func(t *testing.T) {
		rec := do(http.MethodGet, "/ok")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "cid-1", rec.Header().Get(HeaderCorrelationID))
		assert.Equal(t, map[string]any{"message": "request has been successfully", "data": map[string]any{"k": "v"}}, decodeBody(t, rec))
	})

	t.Run("nil response is no content", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do(http.MethodGet, "/empty").Code)
	})

	t.Run("goerror maps status", func(t *testing.T) {
		rec := do(http.MethodGet, "/invalid")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, map[string]any{"message": "Invalid request body"}, decodeBody(t, rec))
	})

	t.Run("unknown error is hidden", func(t *testing.T) {
		rec := do(http.MethodGet, "/plain-error")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, map[string]any{"message": "Internal server error"}, decodeBody(t, rec))
	})

	t.Run("panic is recovered", func(t *testing.T) {
		rec := do(http.MethodGet, "/panic")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, map[string]any{"message": "Internal server error"}, decodeBody(t, rec))
	})

	t.Run("maintenance", func(t *testing.T) {
		rec := do(http.MethodGet, "/down")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("raw handler", func(t *testing.T) {
		rec := do(http.MethodPost, "/raw")
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, map[string]any{"raw": "yes"}, decodeBody(t, rec))
	})

	t.Run("not found", func(t *testing.T) {
		rec := do(http.MethodGet, "/nope")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, map[string]any{"message": "endpoint not found"}, decodeBody(t, rec))
	})

	t.Run("correlation id from request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(HeaderRequestID, "from-proxy")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, "from-proxy", rec.Header().Get(HeaderCorrelationID))
	})
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "handler") }), mw("a"), mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1", realIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", realIP(req))
}
