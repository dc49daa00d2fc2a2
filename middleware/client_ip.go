package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// Proxy headers consulted before falling back to the socket address.
const (
	headerForwardedFor = "X-Forwarded-For"
	headerRealIP       = "X-Real-IP"
)

// clientIP resolves the originating address of a request. Behind a proxy the
// leftmost X-Forwarded-For entry is the caller; the rate limiter keys its
// buckets on this value.
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader(headerForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if real := strings.TrimSpace(c.GetHeader(headerRealIP)); real != "" {
		return real
	}

	addr := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
