package routes

import (
	"go-jewelry-order-management/controllers"
	"go-jewelry-order-management/middleware"
	"go-jewelry-order-management/models"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/orders", controllers.GetOrders())
	incomingRoutes.GET("/orderswithrelations", middleware.Authorize(models.RoleAdmin, models.RoleShopOwner), controllers.GetOrdersWithRelations())
	incomingRoutes.GET("/orders/:order_code", controllers.GetOrder())
	incomingRoutes.POST("/orders", middleware.Authorize(models.RoleSalesman), controllers.CreateOrder())
	incomingRoutes.PATCH("/orders/:order_code", middleware.Authorize(models.RoleAdmin), controllers.UpdateOrder())
	incomingRoutes.PUT("/orders/:order_code", middleware.Authorize(models.RoleSalesman), controllers.UpdateOrderBySalesman())
	incomingRoutes.POST("/orders/bulkupdate", middleware.Authorize(models.RoleAdmin), controllers.BulkUpdateOrders())
	incomingRoutes.DELETE("/orders/:order_code", middleware.Authorize(models.RoleAdmin), controllers.DeleteOrder())
}
