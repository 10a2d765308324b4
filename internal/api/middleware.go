package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserKey holds the authenticated *domain.User.
const ContextUserKey = "currentUser"

// AuthMiddleware resolves the bearer token to a stored user. Tokens of
// deleted users are rejected.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		// Expecting "Bearer <token>"
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		user, err := authService.ResolveToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			respondError(c, err)
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RoleMiddleware creates middleware to check if user has the required role(s).
// Users with any other role get denied. Must run AFTER AuthMiddleware.
func RoleMiddleware(denied error, allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			abortWithError(c, http.StatusInternalServerError, "User not found in context")
			return
		}

		for _, allowedRole := range allowedRoles {
			if user.Role == allowedRole {
				c.Next()
				return
			}
		}
		respondError(c, denied)
	}
}

// currentUser returns the user set by AuthMiddleware, or nil.
func currentUser(c *gin.Context) *domain.User {
	raw, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, _ := raw.(*domain.User)
	return user
}
