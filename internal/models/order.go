package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderFulfilled OrderStatus = "fulfilled"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderItem is a line on an order. UnitPriceCents is a snapshot of the price
// at the time of sale, never re-read from the catalog.
type OrderItem struct {
	ProductID      string `json:"product_id" bson:"product_id"`
	VariationID    string `json:"variation_id,omitempty" bson:"variation_id,omitempty"`
	BundleID       string `json:"bundle_id,omitempty" bson:"bundle_id,omitempty"`
	Name           string `json:"name" bson:"name"`
	Quantity       int64  `json:"quantity" bson:"quantity" binding:"required,min=1"`
	UnitPriceCents int64  `json:"unit_price_cents" bson:"unit_price_cents" binding:"min=0"`
}

// Order is a sale recorded against a store. Totals are always derived from
// the items server-side; client-supplied totals are ignored.
type Order struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	StoreID       string             `json:"store_id" bson:"store_id"`
	CustomerID    string             `json:"customer_id,omitempty" bson:"customer_id,omitempty"`
	Status        OrderStatus        `json:"status" bson:"status"`
	Items         []OrderItem        `json:"items" bson:"items"`
	SubtotalCents int64              `json:"subtotal_cents" bson:"subtotal_cents"`
	DiscountCents int64              `json:"discount_cents" bson:"discount_cents"`
	TotalCents    int64              `json:"total_cents" bson:"total_cents"`
	Currency      string             `json:"currency" bson:"currency"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
	CreatedBy     string             `json:"created_by,omitempty" bson:"created_by,omitempty"`
}

// Subtotal sums the line totals of the order's items.
func (o *Order) Subtotal() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.UnitPriceCents * it.Quantity
	}
	return total
}
