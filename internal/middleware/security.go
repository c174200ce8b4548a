package middleware

import (
	"crypto/subtle"
	"net"
	"strings"

	"github.com/gin-gonic/gin"

	"nlu-router/pkg/response"
	"nlu-router/pkg/telegram"
)

// TelegramSecret rejects webhook calls whose secret token header does not match.
func (m Middleware) TelegramSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.secretToken == "" {
			c.Next()
			return
		}
		got := c.GetHeader(telegram.SecretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(m.secretToken)) != 1 {
			m.l.Warnf(c.Request.Context(), "middleware.TelegramSecret: invalid secret token from %s", c.ClientIP())
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminToken requires "Authorization: Bearer <token>" matching the configured
// admin token. Without a configured token every call is rejected.
func (m Middleware) AdminToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if m.adminToken == "" || !ok || subtle.ConstantTimeCompare([]byte(got), []byte(m.adminToken)) != 1 {
			m.l.Warnf(c.Request.Context(), "middleware.AdminToken: rejected %s %s from %s", c.Request.Method, c.FullPath(), c.ClientIP())
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AllowIPs rejects callers outside the configured IP and CIDR list.
func (m Middleware) AllowIPs() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(m.allowedIPs) == 0 || ipAllowed(c.ClientIP(), m.allowedIPs) {
			c.Next()
			return
		}
		m.l.Warnf(c.Request.Context(), "middleware.AllowIPs: IP %s not whitelisted", c.ClientIP())
		response.Unauthorized(c)
		c.Abort()
	}
}

func ipAllowed(ip string, allowed []string) bool {
	parsed := net.ParseIP(ip)
	for _, a := range allowed {
		if ip == a {
			return true
		}

		// Check CIDR range
		if strings.Contains(a, "/") {
			_, ipNet, err := net.ParseCIDR(a)
			if err != nil {
				continue
			}
			if parsed != nil && ipNet.Contains(parsed) {
				return true
			}
		}
	}
	return false
}
