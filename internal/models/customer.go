package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is an end buyer managed from the back-office.
type Customer struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	StoreID   string             `json:"store_id" bson:"store_id"`
	Name      string             `json:"name" bson:"name" binding:"required"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty" binding:"omitempty,email"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   string             `json:"address,omitempty" bson:"address,omitempty"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
	IsDeleted bool               `json:"-" bson:"is_deleted"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
