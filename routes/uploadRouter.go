package routes

import (
	"go-jewelry-order-management/controllers"
	"go-jewelry-order-management/middleware"
	"go-jewelry-order-management/models"

	"github.com/gin-gonic/gin"
)

func UploadRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/uploads", middleware.Authorize(models.RoleAdmin, models.RoleSalesman), controllers.UploadOrderAsset())
}
