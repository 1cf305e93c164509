package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is one shop in the multi-store setup. Bundles, orders and POS
// sessions carry a StoreID pointing at one of these.
type Store struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" binding:"required"`
	Slug      string             `json:"slug" bson:"slug" binding:"required"`
	Currency  string             `json:"currency" bson:"currency"`
	IsActive  bool               `json:"is_active" bson:"is_active"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
