package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zara-amin/zeenat-jewels-api/repositories"
	"github.com/zara-amin/zeenat-jewels-api/services"
)

// Role values recognized in the X-Role request header
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

const (
	roleHeader     = "X-Role"
	userIDKey      = "user_id"
	roleContextKey = "role"
)

// RequireAdmin gates mutation endpoints. It accepts either an
// "X-Role: admin" header or a valid bearer token whose subject resolves
// to a stored admin user. A recognized non-admin credential (customer
// role header, or a token for a non-admin user) is rejected with 403;
// a missing or invalid credential with 401.
func RequireAdmin(tokens *services.TokenService, users repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetHeader(roleHeader)
		if role == RoleAdmin {
			c.Set(roleContextKey, RoleAdmin)
			c.Next()
			return
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			if role == RoleCustomer {
				c.JSON(http.StatusForbidden, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "FORBIDDEN",
						"message": "Admin only",
					},
				})
				c.Abort()
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Admin role header or bearer token required",
				},
			})
			c.Abort()
			return
		}

		userID, err := tokens.Parse(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TOKEN",
					"message": "Invalid or expired token",
				},
			})
			c.Abort()
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil || user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Unknown token subject",
				},
			})
			c.Abort()
			return
		}

		if !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Admin only",
				},
			})
			c.Abort()
			return
		}

		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

// OptionalUser decodes a bearer token when one is present so orders can
// be attached to the caller's account. It never rejects the request;
// without a usable token the order is treated as a guest order.
func OptionalUser(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if userID, err := tokens.Parse(tokenString); err == nil {
				c.Set(userIDKey, userID)
			}
		}
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user id from the Gin context
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

// bearerToken pulls the token out of the Authorization header
func bearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return token, token != ""
}
