package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"go-jewelry-order-management/database"
	middleware "go-jewelry-order-management/middleware"
	routes "go-jewelry-order-management/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	database.EnsureIndexes(database.Client)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryWithAlert())

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Page not found"})
	})

	routes.AuthRoutes(router)
	router.Use(middleware.Authentication())
	routes.UserRoutes(router)
	routes.OrderRoutes(router)
	routes.NotificationRoutes(router)
	routes.CatalogRoutes(router)
	routes.UploadRoutes(router)

	router.Run(":" + port)
}
