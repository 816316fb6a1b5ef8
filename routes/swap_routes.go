package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/skill-swap/api-go/controllers"
)

func SetupSwapRoutes(protected *gin.RouterGroup, swapController *controllers.SwapController) {
	swaps := protected.Group("/swaps")
	{
		swaps.POST("", swapController.CreateSwapRequest)
		swaps.GET("/my-requests", swapController.GetMyRequests)
		swaps.GET("/stats", swapController.GetStats)
		swaps.PATCH("/:id/status", swapController.UpdateStatus)
		swaps.DELETE("/:id", swapController.DeleteSwapRequest)
	}
}
