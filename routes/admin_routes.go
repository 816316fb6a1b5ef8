package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/skill-swap/api-go/controllers"
	"github.com/skill-swap/api-go/middleware"
)

func SetupAdminRoutes(protected *gin.RouterGroup, adminController *controllers.AdminController) {
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/stats", adminController.GetStats)
		admin.POST("/moderate/skills/:userId", adminController.ModerateSkills)
		admin.PATCH("/users/:userId/ban", adminController.BanUser)
		admin.GET("/swaps", adminController.GetSwaps)

		admin.POST("/messages", adminController.CreateMessage)
		admin.GET("/messages", adminController.GetMessages)
		admin.PATCH("/messages/:messageId", adminController.UpdateMessage)

		admin.POST("/reports/generate", adminController.GenerateReport)
		admin.GET("/reports/:reportId/download", adminController.DownloadReport)

		admin.GET("/moderation-logs", adminController.GetModerationLogs)
	}
}
