package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealIP extracts the real client IP from the request, preferring
// X-Real-IP, then the first public address in X-Forwarded-For, then Gin's
// ClientIP fallback.
func GetRealIP(c *gin.Context) string {
	realIP := strings.TrimSpace(c.Request.Header.Get("X-Real-IP"))
	if ip := net.ParseIP(realIP); ip != nil && !isPrivateIP(ip) {
		return realIP
	}

	forwarded := c.Request.Header.Get("X-Forwarded-For")
	for _, part := range strings.Split(forwarded, ",") {
		candidate := strings.TrimSpace(part)
		if ip := net.ParseIP(candidate); ip != nil && !isPrivateIP(ip) {
			return candidate
		}
	}

	return c.ClientIP()
}

func isPrivateIP(ip net.IP) bool {
	if ip == nil {
		return false
	}
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast()
}
