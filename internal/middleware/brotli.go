package middleware

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// BrotliConfig tunes the Brotli middleware.
type BrotliConfig struct {
	Quality int
	// MinLength is the smallest body worth compressing.
	MinLength int
	// Skipper opts individual requests out.
	Skipper func(c *gin.Context) bool
}

// DefaultBrotliConfig compresses bodies of 1 KiB or more.
var DefaultBrotliConfig = BrotliConfig{
	Quality:   brotli.DefaultCompression,
	MinLength: 1024,
}

// brotliWriter holds output back until MinLength bytes have been written,
// then switches to compressed output for the rest of the response.
type brotliWriter struct {
	gin.ResponseWriter
	enc        *brotli.Writer
	pending    []byte
	minLength  int
	compressed bool
}

func (bw *brotliWriter) Write(data []byte) (int, error) {
	if bw.compressed {
		return bw.enc.Write(data)
	}

	bw.pending = append(bw.pending, data...)
	if len(bw.pending) < bw.minLength {
		return len(data), nil
	}

	bw.compressed = true
	h := bw.ResponseWriter.Header()
	h.Set("Content-Encoding", "br")
	h.Del("Content-Length")

	if _, err := bw.enc.Write(bw.pending); err != nil {
		return 0, err
	}
	bw.pending = nil
	return len(data), nil
}

func (bw *brotliWriter) WriteString(s string) (int, error) {
	return bw.Write([]byte(s))
}

// Flush pushes whatever is buffered to the client.
func (bw *brotliWriter) Flush() {
	if bw.compressed {
		_ = bw.enc.Flush()
	} else if len(bw.pending) > 0 {
		_, _ = bw.ResponseWriter.Write(bw.pending)
		bw.pending = nil
	}
	bw.ResponseWriter.Flush()
}

// finish writes short bodies uncompressed and terminates the Brotli stream.
func (bw *brotliWriter) finish() error {
	if bw.compressed {
		return bw.enc.Close()
	}
	if len(bw.pending) == 0 {
		return nil
	}
	_, err := bw.ResponseWriter.Write(bw.pending)
	bw.pending = nil
	return err
}

// Brotli compresses responses for clients that accept "br".
func Brotli() gin.HandlerFunc {
	return BrotliWithConfig(DefaultBrotliConfig)
}

// BrotliWithConfig is Brotli with explicit settings.
func BrotliWithConfig(cfg BrotliConfig) gin.HandlerFunc {
	if cfg.Quality < brotli.BestSpeed || cfg.Quality > brotli.BestCompression {
		cfg.Quality = brotli.DefaultCompression
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultBrotliConfig.MinLength
	}

	return func(c *gin.Context) {
		if isUpgrade(c) || (cfg.Skipper != nil && cfg.Skipper(c)) || !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		bw := &brotliWriter{
			ResponseWriter: c.Writer,
			enc:            brotli.NewWriterLevel(c.Writer, cfg.Quality),
			minLength:      cfg.MinLength,
		}
		c.Writer = bw

		defer func() {
			if err := bw.finish(); err != nil {
				_ = c.Error(err)
			}
		}()

		c.Next()
	}
}

// SkipPaths returns a Skipper matching request paths by suffix.
func SkipPaths(suffixes ...string) func(c *gin.Context) bool {
	return func(c *gin.Context) bool {
		for _, s := range suffixes {
			if strings.HasSuffix(c.Request.URL.Path, s) {
				return true
			}
		}
		return false
	}
}

// isUpgrade reports WebSocket handshakes, which must reach the handler with
// the raw writer for hijacking.
func isUpgrade(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("Upgrade"), "websocket")
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		name, _, _ := strings.Cut(strings.TrimSpace(enc), ";")
		if strings.EqualFold(name, "br") {
			return true
		}
	}
	return false
}
