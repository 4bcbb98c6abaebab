package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"go-jewelry-order-management/database"
	"go-jewelry-order-management/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var notificationCollection *mongo.Collection = database.OpenCollection(database.Client, "notification")

type MarkReadRequest struct {
	Ids []string `json:"ids"`
}

// GetNotifications lists the calling salesman's notifications, newest
// first, with optional read-state and type filters.
func GetNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		recordPerPage, err := strconv.Atoi(c.DefaultQuery("recordPerPage", "20"))
		if err != nil || recordPerPage < 1 {
			recordPerPage = 20
		}
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		startIndex := (page - 1) * recordPerPage

		filter := bson.M{"user_id": c.GetString("uid")}
		if isRead := c.Query("is_read"); isRead != "" {
			filter["is_read"] = isRead == "true"
		}
		if notificationType := c.Query("type"); notificationType != "" {
			filter["type"] = notificationType
		}

		totalCount, err := notificationCollection.CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing notifications"})
			return
		}
		unreadCount, err := notificationCollection.CountDocuments(ctx, bson.M{
			"user_id": c.GetString("uid"),
			"is_read": false,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing notifications"})
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64(startIndex)).
			SetLimit(int64(recordPerPage))

		result, err := notificationCollection.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing notifications"})
			return
		}
		var allNotifications []models.Notification
		if err := result.All(ctx, &allNotifications); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing notifications"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"total_count":   totalCount,
			"unread_count":  unreadCount,
			"notifications": allNotifications,
		})
	}
}

func MarkNotificationsRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var req MarkReadRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(req.Ids) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ids must not be empty"})
			return
		}

		result, err := notificationCollection.UpdateMany(
			ctx,
			bson.M{
				"user_id":         c.GetString("uid"),
				"notification_id": bson.M{"$in": req.Ids},
			},
			bson.D{{Key: "$set", Value: bson.D{{Key: "is_read", Value: true}}}},
		)
		if err != nil {
			log.Println("mark read failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not mark notifications as read"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":        "notifications marked as read",
			"modified_count": result.ModifiedCount,
		})
	}
}

func MarkAllNotificationsRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		result, err := notificationCollection.UpdateMany(
			ctx,
			bson.M{"user_id": c.GetString("uid"), "is_read": false},
			bson.D{{Key: "$set", Value: bson.D{{Key: "is_read", Value: true}}}},
		)
		if err != nil {
			log.Println("mark all read failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not mark notifications as read"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":        "all notifications marked as read",
			"modified_count": result.ModifiedCount,
		})
	}
}
