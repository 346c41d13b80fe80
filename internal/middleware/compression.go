package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression returns a middleware that gzips responses for clients that accept it.
// PDF receipts and the metrics endpoint are sent as is.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedExtensions([]string{".pdf"}),
		gzip.WithExcludedPathsRegexs([]string{`/receipt$`, `^/metrics`}),
	)
}
