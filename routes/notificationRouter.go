package routes

import (
	"go-jewelry-order-management/controllers"
	"go-jewelry-order-management/middleware"
	"go-jewelry-order-management/models"

	"github.com/gin-gonic/gin"
)

func NotificationRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/notifications", middleware.Authorize(models.RoleSalesman), controllers.GetNotifications())
	incomingRoutes.PATCH("/notifications/markread", middleware.Authorize(models.RoleSalesman), controllers.MarkNotificationsRead())
	incomingRoutes.PATCH("/notifications/markallread", middleware.Authorize(models.RoleSalesman), controllers.MarkAllNotificationsRead())
}
