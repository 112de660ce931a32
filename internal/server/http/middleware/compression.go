package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/designstudio/internal/server/http/dto"
)

// DefaultMaxInflatedBody caps a decompressed request body.
const DefaultMaxInflatedBody int64 = 1 << 20

// DecompressRequest inflates gzip encoded JSON bodies before binding.
// Reads past limit bytes fail, so oversized payloads surface as bind errors.
func DecompressRequest(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = DefaultMaxInflatedBody
	}
	return func(c *gin.Context) {
		if !isGzipEncoded(c.GetHeader("Content-Encoding")) {
			c.Next()
			return
		}

		compressed := c.Request.Body
		inflated, err := gzip.NewReader(compressed)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "request body is not valid gzip"})
			return
		}
		defer compressed.Close()
		defer inflated.Close()

		c.Request.Body = http.MaxBytesReader(c.Writer, inflated, limit)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}

func isGzipEncoded(header string) bool {
	for _, part := range strings.Split(header, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "gzip", "x-gzip":
			return true
		}
	}
	return false
}
