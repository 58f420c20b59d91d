package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joinapp/join-backend/internal/constants"
	"github.com/joinapp/join-backend/internal/database"
	apierrors "github.com/joinapp/join-backend/internal/errors"
	"github.com/joinapp/join-backend/internal/models"
	"github.com/joinapp/join-backend/internal/repository"
)

// RequireAuth resolves the "Authorization: Token <key>" header to an
// active user and stores it in the request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != constants.TokenScheme || parts[1] == "" {
			apierrors.Unauthorized(c, "Invalid token.")
			c.Abort()
			return
		}

		token, err := repository.NewTokenRepository(database.GetDB()).FindByKey(parts[1])
		if err != nil {
			apierrors.Unauthorized(c, "Invalid token.")
			c.Abort()
			return
		}

		if !token.User.IsActive {
			apierrors.Unauthorized(c, "User inactive or deleted.")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, token.UserID)
		c.Set(constants.ContextKeyUser, token.User)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUser retrieves the authenticated user from context
func GetUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}

	user, ok := value.(models.User)
	return user, ok
}
