package middleware

import (
	"errors"
	"net/http"
	"strings"

	"emurebook/internal/http-api/models"
	"emurebook/internal/http-api/repository"
	"emurebook/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID      = "userID"
	ContextUserRole    = "userRole"
	ContextCurrentUser = "currentUser"
)

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It validates the bearer token and resolves the account behind it, so a
// token for a deleted user is rejected here.
func AuthMiddleware(authService service.AuthService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortUnauthorized(c, "the user belonging to this token no longer exists")
				return
			}
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, user.Role)
		c.Set(ContextCurrentUser, user)

		c.Next()
	}
}

// RequireAdmin gates admin-only routes. It assumes AuthMiddleware ran first.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextUserRole)
		if !exists || role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "fail",
				"message": "you do not have permission to perform this action",
			})
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  "fail",
		"message": message,
	})
}

// CallerID returns the authenticated user's id from the request context.
func CallerID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// CallerRole returns the authenticated user's role from the request context.
func CallerRole(c *gin.Context) string {
	return c.GetString(ContextUserRole)
}

// CurrentUser returns the full user record resolved by AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	if v, exists := c.Get(ContextCurrentUser); exists {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
