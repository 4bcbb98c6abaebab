package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

type Notification struct {
	ID              primitive.ObjectID `bson:"_id"`
	Notification_id string             `json:"notification_id"`
	Title           string             `json:"title"`
	Message         string             `json:"message"`
	Type            string             `json:"type"`
	User_id         string             `json:"user_id"`
	User_type       string             `json:"user_type"`
	Order_code      *string            `json:"order_code"`
	Is_read         bool               `json:"is_read"`
	Metadata        map[string]string  `json:"metadata"`
	Created_at      time.Time          `json:"created_at"`
}
