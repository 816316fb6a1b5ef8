package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/skill-swap/api-go/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	uploads := protected.Group("/uploads")
	{
		uploads.POST("/photo", uploadController.GetPhotoUploadURL)
		uploads.POST("/photo/confirm", uploadController.ConfirmPhotoUpload)
		// Object keys contain slashes, so the param must be a catch-all.
		uploads.DELETE("/photo/*key", uploadController.DeletePhoto)
	}
}
