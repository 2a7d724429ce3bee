package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "weddingstudio/internal/pkg/jwt"
	"weddingstudio/internal/pkg/response"
)

// Auth resolves the current authenticated party from the Bearer token and
// stores it on the context. Every protected route group runs this first.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("party_id", claims.PartyID)
		c.Set("party", claims.Party)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// StaffOnly rejects requests whose token is not a staff token.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("party") != jwtsvc.PartyStaff {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Staff access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CustomerOnly rejects requests whose token is not a customer token.
// The party_id of a customer token is the reservation it was issued for.
func CustomerOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("party") != jwtsvc.PartyCustomer {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Customer access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
