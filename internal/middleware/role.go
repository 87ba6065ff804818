package middleware

import (
	"net/http"

	"github.com/dev-ventures/ventures/internal/types"
	"github.com/gin-gonic/gin"
)

// RequireRoles restricts an endpoint to callers holding one of the given
// roles. It must run after AuthMiddleware; it reads the principal from the
// request context and never touches the database.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextUserKey)

		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		user, ok := value.(AuthenticatedUser)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user type in context"})
			return
		}

		for _, role := range roles {
			if user.Role == role {
				ctx.Next()
				return
			}
		}

		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":   "Access denied",
			"message": "Your role '" + user.Role + "' is not allowed",
			"details": gin.H{"required_roles": roles},
		})
	}
}
