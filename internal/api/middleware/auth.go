package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princeprakhar/gold-marketplace/internal/config"
	"github.com/princeprakhar/gold-marketplace/internal/models"
	"github.com/princeprakhar/gold-marketplace/internal/utils"
)

const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.SendUnauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		claims, ok := parseBearer(authHeader, cfg.JWTSecret)
		if !ok {
			utils.SendUnauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the caller identity when a valid token is present and
// lets anonymous requests through untouched.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c.GetHeader("Authorization"), cfg.JWTSecret); ok {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

func RequireRoles(allowed ...string) gin.HandlerFunc {
	allowedSet := make(map[string]bool, len(allowed))
	for _, r := range allowed {
		allowedSet[strings.ToLower(r)] = true
	}

	return func(c *gin.Context) {
		if !allowedSet[c.GetString(ContextUserRole)] {
			utils.SendForbidden(c, "Insufficient role")
			c.Abort()
			return
		}
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}

func parseBearer(header, secret string) (*utils.Claims, bool) {
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == "" || tokenString == header {
		return nil, false
	}

	claims, err := utils.ValidateToken(tokenString, secret)
	if err != nil || claims.Type != string(utils.AccessToken) {
		return nil, false
	}
	return claims, true
}

func setIdentity(c *gin.Context, claims *utils.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUserEmail, claims.Email)
	c.Set(ContextUserRole, strings.ToLower(claims.Role))
}
