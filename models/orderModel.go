package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusConfirmed         = "confirmed"
	StatusOrderViewAccepted = "order_view_and_accepted"
	StatusCadCompleted      = "cad_completed"
	StatusProductionFloor   = "production_floor"
	StatusFinished          = "finished"
	StatusDispatched        = "dispatched"
	StatusCancelled         = "cancelled"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Salesmen may amend an order for 48 hours after creation, and only while
// it has not progressed past order_view_and_accepted.
const EditWindow = 48 * time.Hour

type OrderSize struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type Order struct {
	ID                     primitive.ObjectID `bson:"_id"`
	Order_code             string             `json:"order_code"`
	Product_name           *string            `json:"product_name" validate:"required,min=2,max=200"`
	Customer_name          *string            `json:"customer_name" validate:"required,min=2,max=100"`
	Details                *string            `json:"details"`
	Voice_note             *string            `json:"voice_note"`
	Images                 []string           `json:"images"`
	Status                 string             `json:"status"`
	Priority               string             `json:"priority"`
	Cancel_reason          *string            `json:"cancel_reason"`
	Expected_delivery_date *time.Time         `json:"expected_delivery_date"`
	Karat                  *string            `json:"karat"`
	Weight                 *float64           `json:"weight"`
	Colour                 *string            `json:"colour"`
	Size                   *OrderSize         `json:"size"`
	With_stones            *bool              `json:"with_stones"`
	With_engraving         *bool              `json:"with_engraving"`
	Catalog_item_id        *string            `json:"catalog_item_id"`
	Salesman_id            string             `json:"salesman_id"`
	Created_at             time.Time          `json:"created_at"`
	Updated_at             time.Time          `json:"updated_at"`
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusConfirmed, StatusOrderViewAccepted, StatusCadCompleted,
		StatusProductionFloor, StatusFinished, StatusDispatched, StatusCancelled:
		return true
	}
	return false
}

func IsValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// IsEditableStatus reports whether an order has not yet progressed past the
// statuses a salesman is still allowed to amend.
func IsEditableStatus(status string) bool {
	return status == StatusConfirmed || status == StatusOrderViewAccepted
}

func WithinEditWindow(createdAt time.Time, now time.Time) bool {
	return now.Sub(createdAt) <= EditWindow
}
