package middleware

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

const (
	brotliQuality = brotli.DefaultCompression

	// Responses shorter than this go out uncompressed; the CPU cost is
	// not worth it and tiny payloads can grow under brotli.
	brotliMinLength = 1024
)

// compressWriter buffers the response until it is clear whether the body
// crosses the compression threshold, then commits to one encoding for the
// rest of the response.
type compressWriter struct {
	gin.ResponseWriter
	bw        *brotli.Writer
	pending   []byte
	committed bool
}

func (w *compressWriter) Write(p []byte) (int, error) {
	if w.committed {
		return w.bw.Write(p)
	}

	w.pending = append(w.pending, p...)
	if len(w.pending) < brotliMinLength {
		return len(p), nil
	}

	w.committed = true
	w.Header().Set("Content-Encoding", "br")
	w.Header().Del("Content-Length")
	if _, err := w.bw.Write(w.pending); err != nil {
		return 0, err
	}
	w.pending = nil
	return len(p), nil
}

func (w *compressWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Flush sends whatever is buffered uncompressed and forwards the flush.
// Streaming endpoints flush before the threshold is ever reached.
func (w *compressWriter) Flush() {
	w.drain()
	w.ResponseWriter.Flush()
}

func (w *compressWriter) drain() {
	if len(w.pending) > 0 {
		_, _ = w.ResponseWriter.Write(w.pending)
		w.pending = nil
	}
}

func (w *compressWriter) close() {
	if w.committed {
		_ = w.bw.Close()
		return
	}
	w.drain()
}

// Brotli compresses responses for clients that advertise br support.
// WebSocket upgrades bypass it: the handshake fails behind a buffered
// writer.
func Brotli() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isWebsocketUpgrade(c) || !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")
		w := &compressWriter{
			ResponseWriter: c.Writer,
			bw:             brotli.NewWriterLevel(c.Writer, brotliQuality),
		}
		c.Writer = w
		defer w.close()

		c.Next()
	}
}

func isWebsocketUpgrade(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("Upgrade"), "websocket")
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		if strings.TrimSpace(strings.ToLower(enc)) == "br" {
			return true
		}
	}
	return false
}
