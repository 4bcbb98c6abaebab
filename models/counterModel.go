package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Counter backs the atomically incremented sequences: per-day order codes
// (counter_id "order-YYYYMMDD") and per-hour OTP send limits
// (counter_id "otp-<phone>-YYYYMMDDHH").
type Counter struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Counter_id string             `json:"counter_id"`
	Sequence   int64              `json:"sequence"`
	Updated_at time.Time          `json:"updated_at"`
}
