package middleware

import (
	"strings"

	"safetour/internal/models"
	"safetour/internal/services"
	"safetour/internal/utils"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "current_user"

// AuthRequired validates the bearer token and loads the account behind it.
// Downstream handlers read the account via CurrentUser.
func AuthRequired(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		user, err := auth.CurrentUser(c.Request.Context(), tokenString)
		if err != nil {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// OperationRequired gates a route on the access policy. It must run after
// AuthRequired.
func OperationRequired(op services.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		if !services.Permits(user.Role, op) {
			utils.ForbiddenResponse(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser returns the authenticated account set by AuthRequired.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
