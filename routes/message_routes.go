package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/skill-swap/api-go/controllers"
)

func SetupMessageRoutes(protected *gin.RouterGroup, messageController *controllers.MessageController) {
	messages := protected.Group("/messages")
	{
		messages.GET("", messageController.GetActiveMessages)
		messages.POST("/:messageId/read", messageController.MarkRead)
	}
}
