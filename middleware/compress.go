package middleware

import (
	"io"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// DefaultCompressionLevel lets the codecs pick their own default level.
const DefaultCompressionLevel = gzip.DefaultCompression

// Compress returns a middleware that compresses response bodies with the
// encoding negotiated from Accept-Encoding (gzip or deflate).
// Only the content types known to the chi compressor are compressed unless
// types are given explicitly.
//
//	r.Use(middleware.Compress(middleware.DefaultCompressionLevel))
func Compress(level int, types ...string) func(http.Handler) http.Handler {
	c := chimw.NewCompressor(level, types...)
	c.SetEncoder("deflate", encoderDeflate)
	c.SetEncoder("gzip", encoderGzip)
	return c.Handler
}

// encoderGzip and encoderDeflate return writers implementing Reset(io.Writer),
// so the compressor pools them between requests.
func encoderGzip(w io.Writer, level int) io.Writer {
	gw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return nil
	}
	return gw
}

// deflate is the zlib format (RFC 1950), as browsers expect.
func encoderDeflate(w io.Writer, level int) io.Writer {
	zw, err := zlib.NewWriterLevel(w, level)
	if err != nil {
		return nil
	}
	return zw
}
