package helpers

import (
	"context"
	"fmt"
	"time"

	"go-jewelry-order-management/database"
	"go-jewelry-order-management/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var notificationCollection *mongo.Collection = database.OpenCollection(database.Client, "notification")

type statusMessage struct {
	Title string
	Body  string
	Type  string
}

// One entry per status that is worth telling the salesman about. Statuses
// without an entry (and same-status updates) produce no notification.
var statusMessages = map[string]statusMessage{
	models.StatusOrderViewAccepted: {
		Title: "Order Accepted",
		Body:  "Order %s for %s has been viewed and accepted by the workshop.",
		Type:  models.NotificationSuccess,
	},
	models.StatusCadCompleted: {
		Title: "CAD Completed",
		Body:  "The CAD design for order %s (%s) is ready for review.",
		Type:  models.NotificationInfo,
	},
	models.StatusProductionFloor: {
		Title: "Production Started",
		Body:  "Order %s for %s has moved to the production floor.",
		Type:  models.NotificationInfo,
	},
	models.StatusFinished: {
		Title: "Order Finished",
		Body:  "Order %s for %s is finished and awaiting dispatch.",
		Type:  models.NotificationSuccess,
	},
	models.StatusDispatched: {
		Title: "Order Dispatched",
		Body:  "Order %s for %s has been dispatched.",
		Type:  models.NotificationSuccess,
	},
	models.StatusCancelled: {
		Title: "Order Cancelled",
		Body:  "Order %s for %s has been cancelled. Reason: %s",
		Type:  models.NotificationError,
	},
}

// BuildStatusNotification synthesizes the notification for a status change.
// Returns nil when nothing should be sent: the status did not change, or the
// new status has no message entry.
func BuildStatusNotification(oldStatus string, newStatus string, orderCode string, customerName string, cancelReason string, salesmanId string) *models.Notification {
	if oldStatus == newStatus {
		return nil
	}
	entry, ok := statusMessages[newStatus]
	if !ok {
		return nil
	}

	var message string
	if newStatus == models.StatusCancelled {
		reason := cancelReason
		if reason == "" {
			reason = "please contact support for details"
		}
		message = fmt.Sprintf(entry.Body, orderCode, customerName, reason)
	} else {
		message = fmt.Sprintf(entry.Body, orderCode, customerName)
	}

	metadata := map[string]string{
		"old_status":    oldStatus,
		"new_status":    newStatus,
		"customer_name": customerName,
	}
	if cancelReason != "" {
		metadata["cancel_reason"] = cancelReason
	}

	code := orderCode
	notification := models.Notification{
		ID:         primitive.NewObjectID(),
		Title:      entry.Title,
		Message:    message,
		Type:       entry.Type,
		User_id:    salesmanId,
		User_type:  models.RoleSalesman,
		Order_code: &code,
		Is_read:    false,
		Metadata:   metadata,
		Created_at: time.Now(),
	}
	notification.Notification_id = notification.ID.Hex()
	return &notification
}

// DispatchStatusNotification persists the notification for a transition and
// pushes it to the owning salesman's open dashboards. Callers treat errors
// as log-only: a failed notification never fails the order update.
func DispatchStatusNotification(ctx context.Context, order models.Order, oldStatus string, newStatus string) error {
	customerName := ""
	if order.Customer_name != nil {
		customerName = *order.Customer_name
	}
	cancelReason := ""
	if order.Cancel_reason != nil {
		cancelReason = *order.Cancel_reason
	}

	notification := BuildStatusNotification(oldStatus, newStatus, order.Order_code, customerName, cancelReason, order.Salesman_id)
	if notification == nil {
		return nil
	}

	if _, err := notificationCollection.InsertOne(ctx, notification); err != nil {
		return err
	}

	PushToUser(order.Salesman_id, WsMessage{Event: "notification", Payload: notification})
	return nil
}
