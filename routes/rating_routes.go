package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/skill-swap/api-go/controllers"
)

func SetupRatingRoutes(protected *gin.RouterGroup, ratingController *controllers.RatingController) {
	ratings := protected.Group("/ratings")
	{
		ratings.POST("", ratingController.CreateRating)
		ratings.GET("/user/:userId", ratingController.GetUserRatings)
	}
}
