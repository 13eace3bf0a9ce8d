package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princeprakhar/gold-marketplace/internal/config"
	"github.com/princeprakhar/gold-marketplace/internal/models"
	"github.com/princeprakhar/gold-marketplace/internal/utils"
)

const testSecret = "middleware-secret"

func identityRouter(cfg *config.Config, chain ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetUint(ContextUserID),
			"role":    c.GetString(ContextUserRole),
		})
	})
	router.GET("/", handlers...)
	return router
}

func get(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func tokens(t *testing.T, role string) *utils.TokenPair {
	t.Helper()
	pair, err := utils.GenerateTokenPair(5, "u@example.com", role, testSecret)
	require.NoError(t, err)
	return pair
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	router := identityRouter(cfg, AuthMiddleware(cfg))
	pair := tokens(t, models.RoleSeller)

	assert.Equal(t, http.StatusUnauthorized, get(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(router, "garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, get(router, pair.RefreshToken).Code)

	w := get(router, pair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":5,"role":"seller"}`, w.Body.String())

	wrongSecret := identityRouter(&config.Config{JWTSecret: "other"}, AuthMiddleware(&config.Config{JWTSecret: "other"}))
	assert.Equal(t, http.StatusUnauthorized, get(wrongSecret, pair.AccessToken).Code)
}

func TestOptionalAuth(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	router := identityRouter(cfg, OptionalAuth(cfg))

	w := get(router, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0,"role":""}`, w.Body.String())

	w = get(router, "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0,"role":""}`, w.Body.String())

	w = get(router, tokens(t, models.RoleUser).AccessToken)
	assert.JSONEq(t, `{"user_id":5,"role":"user"}`, w.Body.String())
}

func TestRequireRoles(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	sellerOnly := identityRouter(cfg, AuthMiddleware(cfg), RequireRoles(models.RoleSeller, models.RoleAdmin))
	adminOnly := identityRouter(cfg, AuthMiddleware(cfg), AdminOnly())

	assert.Equal(t, http.StatusOK, get(sellerOnly, tokens(t, models.RoleSeller).AccessToken).Code)
	assert.Equal(t, http.StatusOK, get(sellerOnly, tokens(t, models.RoleAdmin).AccessToken).Code)
	assert.Equal(t, http.StatusForbidden, get(sellerOnly, tokens(t, models.RoleUser).AccessToken).Code)

	assert.Equal(t, http.StatusForbidden, get(adminOnly, tokens(t, models.RoleSeller).AccessToken).Code)
	assert.Equal(t, http.StatusOK, get(adminOnly, tokens(t, "ADMIN").AccessToken).Code)
}
