package routes

import (
	"go-jewelry-order-management/controllers"
	"go-jewelry-order-management/middleware"
	"go-jewelry-order-management/models"

	"github.com/gin-gonic/gin"
)

func CatalogRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/catalog", controllers.GetCatalogItems())
	incomingRoutes.GET("/catalog/:catalog_item_id", controllers.GetCatalogItem())
	incomingRoutes.POST("/catalog", middleware.Authorize(models.RoleAdmin), controllers.CreateCatalogItem())
	incomingRoutes.PATCH("/catalog/:catalog_item_id", middleware.Authorize(models.RoleAdmin), controllers.UpdateCatalogItem())
	incomingRoutes.DELETE("/catalog/:catalog_item_id", middleware.Authorize(models.RoleAdmin), controllers.DeleteCatalogItem())

	incomingRoutes.GET("/categories", controllers.GetCategories())
	incomingRoutes.POST("/categories", middleware.Authorize(models.RoleAdmin), controllers.CreateCategory())
	incomingRoutes.PATCH("/categories/:category_id", middleware.Authorize(models.RoleAdmin), controllers.UpdateCategory())
	incomingRoutes.DELETE("/categories/:category_id", middleware.Authorize(models.RoleAdmin), controllers.DeleteCategory())

	incomingRoutes.GET("/fonts", controllers.GetFonts())
	incomingRoutes.POST("/fonts", middleware.Authorize(models.RoleAdmin), controllers.CreateFont())
	incomingRoutes.PATCH("/fonts/:font_id", middleware.Authorize(models.RoleAdmin), controllers.UpdateFont())
	incomingRoutes.DELETE("/fonts/:font_id", middleware.Authorize(models.RoleAdmin), controllers.DeleteFont())

	incomingRoutes.GET("/specialitems", controllers.GetSpecialItems())
	incomingRoutes.POST("/specialitems", middleware.Authorize(models.RoleAdmin), controllers.CreateSpecialItem())
	incomingRoutes.PATCH("/specialitems/:special_item_id", middleware.Authorize(models.RoleAdmin), controllers.UpdateSpecialItem())
	incomingRoutes.DELETE("/specialitems/:special_item_id", middleware.Authorize(models.RoleAdmin), controllers.DeleteSpecialItem())
}
