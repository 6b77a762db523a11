package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/devserver/middleware"
)

var compressBody = strings.Repeat("<p>hello from the dev server</p>", 64)

func newCompressRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Compress(middleware.DefaultCompressionLevel))
	r.Get("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, compressBody)
	})
	r.Get("/image", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = io.WriteString(w, compressBody)
	})
	return r
}

func TestCompressGzip(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	w := httptest.NewRecorder()

	newCompressRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	assert.Contains(t, w.Header().Values("Vary"), "Accept-Encoding")

	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, compressBody, string(body))
}

func TestCompressDeflate(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.Header.Set("Accept-Encoding", "deflate")
	w := httptest.NewRecorder()

	newCompressRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "deflate", w.Header().Get("Content-Encoding"))

	zr, err := zlib.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, compressBody, string(body))
}

func TestCompressWithoutAcceptEncoding(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	w := httptest.NewRecorder()

	newCompressRouter().ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, compressBody, w.Body.String())
}

func TestCompressSkipsIncompressibleTypes(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/image", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()

	newCompressRouter().ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, compressBody, w.Body.String())
}
