package routes

import (
	controller "go-jewelry-order-management/controllers"
	"go-jewelry-order-management/middleware"
	"go-jewelry-order-management/models"

	"github.com/gin-gonic/gin"
)

// AuthRoutes are reachable without a token.
func AuthRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/users/login", controller.Login())
	incomingRoutes.POST("/users/otp/request", controller.RequestOtp())
	incomingRoutes.POST("/users/otp/verify", controller.VerifyOtp())
	incomingRoutes.GET("/ws", controller.HandleWebSocket())
}

func UserRoutes(incomingRoutes *gin.Engine) {
	// Accounts are created by admins only; there is no self-service signup.
	incomingRoutes.POST("/users/signup", middleware.Authorize(models.RoleAdmin), controller.SignUp())
	incomingRoutes.GET("/users", middleware.Authorize(models.RoleAdmin, models.RoleShopOwner), controller.GetUsers())
	incomingRoutes.GET("/users/:user_id", controller.GetUser())
}
