package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/princeprakhar/gold-marketplace/internal/api/handlers"
	"github.com/princeprakhar/gold-marketplace/internal/api/middleware"
	"github.com/princeprakhar/gold-marketplace/internal/config"
	"github.com/princeprakhar/gold-marketplace/internal/models"
	"github.com/princeprakhar/gold-marketplace/internal/services"
	"github.com/princeprakhar/gold-marketplace/pkg/logger"
)

// Dependencies are the optional collaborators of the HTTP surface. Nil values
// disable the features that need them.
type Dependencies struct {
	Redis    *redis.Client
	Storage  services.ImageStorage
	Notifier services.SellerNotifier
}

func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, deps Dependencies) error {
	rateLimit, err := middleware.RateLimitMiddleware(cfg, deps.Redis)
	if err != nil {
		return err
	}

	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(rateLimit)

	// Initialize services
	catalogService := services.NewCatalogService(db, cfg.DefaultPageSize)
	searchService := services.NewSearchService(catalogService)
	likeService := services.NewLikeService(db, catalogService)
	productService := services.NewProductService(db, catalogService, deps.Storage)
	sellerService := services.NewSellerService(db, deps.Notifier)
	announcementService := services.NewAnnouncementService(db)
	authService := services.NewAuthService(db, cfg.JWTSecret)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService, searchService, productService)
	likeHandler := handlers.NewLikeHandler(likeService)
	sellerHandler := handlers.NewSellerHandler(sellerService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Server is running"})
	})

	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh-token", authHandler.RefreshToken)
		auth.GET("/profile", middleware.AuthMiddleware(cfg), authHandler.GetProfile)
	}

	sellerOrAdmin := middleware.RequireRoles(models.RoleSeller, models.RoleAdmin)

	products := api.Group("/products")
	{
		products.GET("", middleware.OptionalAuth(cfg), productHandler.GetAllProducts)
		products.GET("/search", middleware.OptionalAuth(cfg), productHandler.SearchProducts)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/:product_id", middleware.OptionalAuth(cfg), productHandler.GetProduct)
		products.GET("/:product_id/likes", middleware.OptionalAuth(cfg), likeHandler.GetProductLikes)

		products.POST("/:product_id/like", middleware.AuthMiddleware(cfg), likeHandler.LikeProduct)
		products.DELETE("/:product_id/like", middleware.AuthMiddleware(cfg), likeHandler.UnlikeProduct)

		products.POST("", middleware.AuthMiddleware(cfg), sellerOrAdmin, productHandler.CreateProduct)
		products.POST("/import", middleware.AuthMiddleware(cfg), sellerOrAdmin, productHandler.ImportProducts)
		products.PUT("/:product_id", middleware.AuthMiddleware(cfg), sellerOrAdmin, productHandler.UpdateProduct)
		products.DELETE("/:product_id", middleware.AuthMiddleware(cfg), sellerOrAdmin, productHandler.DeleteProduct)
		products.POST("/:product_id/images", middleware.AuthMiddleware(cfg), sellerOrAdmin, productHandler.UploadProductImage)
	}

	me := api.Group("/me", middleware.AuthMiddleware(cfg))
	{
		me.GET("/likes", likeHandler.GetMyLikes)
	}

	sellers := api.Group("/sellers", middleware.AuthMiddleware(cfg))
	{
		sellers.POST("", sellerHandler.BecomeSeller)
		sellers.GET("/me", sellerHandler.GetMySeller)
	}

	api.GET("/announcements", announcementHandler.ListActive)

	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	{
		admin.GET("/dashboard", adminHandler.GetDashboard)

		// Seller approval
		admin.GET("/sellers", sellerHandler.ListSellers)
		admin.POST("/sellers/:seller_id/approve", sellerHandler.ApproveSeller)
		admin.POST("/sellers/:seller_id/reject", sellerHandler.RejectSeller)

		admin.POST("/maintenance/reconcile-likes", likeHandler.ReconcileLikes)

		admin.GET("/announcements", announcementHandler.ListAll)
		admin.POST("/announcements", announcementHandler.Create)
		admin.PUT("/announcements/:announcement_id", announcementHandler.Update)
		admin.DELETE("/announcements/:announcement_id", announcementHandler.Delete)
	}

	logger.Info("Routes initialized successfully")
	return nil
}
