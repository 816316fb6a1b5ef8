package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skill-swap/api-go/controllers"
	"github.com/skill-swap/api-go/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)
	swapController := controllers.NewSwapController(db)
	ratingController := controllers.NewRatingController(db)
	messageController := controllers.NewMessageController(db)
	adminController := controllers.NewAdminController(db)
	uploadController := controllers.NewUploadController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC().Format(time.RFC3339)})
		})
		public.POST("/auth/register", authController.Register)
		public.POST("/auth/login", authController.Login)
		public.POST("/auth/google", authController.GoogleLogin)
		public.POST("/auth/refresh-token", authController.RefreshToken)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(db))
	{
		protected.POST("/auth/logout", authController.Logout)
		protected.GET("/auth/me", authController.GetMe)

		SetupUserRoutes(protected, userController)
		SetupSwapRoutes(protected, swapController)
		SetupRatingRoutes(protected, ratingController)
		SetupMessageRoutes(protected, messageController)
		SetupAdminRoutes(protected, adminController)
		SetupUploadRoutes(protected, uploadController)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}
