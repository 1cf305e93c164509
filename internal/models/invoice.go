package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InvoiceStatus string

const (
	InvoiceDraft  InvoiceStatus = "draft"
	InvoiceIssued InvoiceStatus = "issued"
	InvoicePaid   InvoiceStatus = "paid"
	InvoiceVoid   InvoiceStatus = "void"
)

type InvoiceLine struct {
	Description    string `json:"description" bson:"description"`
	Quantity       int64  `json:"quantity" bson:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents" bson:"unit_price_cents"`
	TotalCents     int64  `json:"total_cents" bson:"total_cents"`
}

// Invoice is generated from an order; lines and totals are snapshots of the
// order at generation time.
type Invoice struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Number        string             `json:"number" bson:"number"`
	StoreID       string             `json:"store_id" bson:"store_id"`
	OrderID       string             `json:"order_id" bson:"order_id"`
	CustomerID    string             `json:"customer_id,omitempty" bson:"customer_id,omitempty"`
	Status        InvoiceStatus      `json:"status" bson:"status"`
	Lines         []InvoiceLine      `json:"lines" bson:"lines"`
	SubtotalCents int64              `json:"subtotal_cents" bson:"subtotal_cents"`
	TotalCents    int64              `json:"total_cents" bson:"total_cents"`
	Currency      string             `json:"currency" bson:"currency"`
	IssuedAt      time.Time          `json:"issued_at" bson:"issued_at"`
	DueAt         time.Time          `json:"due_at" bson:"due_at"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}
