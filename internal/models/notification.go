package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationKind string

const (
	NotificationInApp NotificationKind = "in_app"
	NotificationEmail NotificationKind = "email"
)

// Notification is a message addressed to a back-office user or a customer.
// Email-kind notifications are additionally handed to the mailer after being
// persisted.
type Notification struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	StoreID   string             `json:"store_id" bson:"store_id"`
	Recipient string             `json:"recipient" bson:"recipient" binding:"required"`
	Kind      NotificationKind   `json:"kind" bson:"kind"`
	Subject   string             `json:"subject" bson:"subject" binding:"required"`
	Body      string             `json:"body" bson:"body"`
	Read      bool               `json:"read" bson:"read"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
