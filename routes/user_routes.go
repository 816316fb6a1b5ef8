package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/skill-swap/api-go/controllers"
	"github.com/skill-swap/api-go/middleware"
)

func SetupUserRoutes(protected *gin.RouterGroup, userController *controllers.UserController) {
	users := protected.Group("/users")
	{
		// Admin routes registered first so they don't collide with /:id
		users.GET("/admin/all", middleware.RequireAdmin(), userController.AllUsers)
		users.PATCH("/admin/:id/toggle-status", middleware.RequireAdmin(), userController.ToggleStatus)

		users.GET("", userController.ListUsers)
		users.PUT("/profile", userController.UpdateProfile)
		users.GET("/:id", userController.GetUser)
	}
}
