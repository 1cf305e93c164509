package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. Prices are stored in currency minor units
// (cents) to avoid floating point drift in totals.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	StoreID     string             `json:"store_id" bson:"store_id"`
	SKU         string             `json:"sku" bson:"sku" binding:"required"`
	Name        string             `json:"name" bson:"name" binding:"required"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Category    string             `json:"category" bson:"category"`
	PriceCents  int64              `json:"price_cents" bson:"price_cents"`
	Currency    string             `json:"currency" bson:"currency"`
	Stock       int64              `json:"stock" bson:"stock"`
	Images      []string           `json:"images,omitempty" bson:"images,omitempty"`
	Attributes  map[string]string  `json:"attributes,omitempty" bson:"attributes,omitempty"`
	Variations  []Variation        `json:"variations,omitempty" bson:"variations,omitempty"`
	IsActive    bool               `json:"is_active" bson:"is_active"`
	IsDeleted   bool               `json:"-" bson:"is_deleted"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// Variation is a sellable variant of a product (size, metal, stone, ...).
// A variation without its own price inherits the product base price.
type Variation struct {
	ID         string `json:"id" bson:"id"`
	SKU        string `json:"sku" bson:"sku"`
	Name       string `json:"name" bson:"name"`
	PriceCents int64  `json:"price_cents" bson:"price_cents"`
	Stock      int64  `json:"stock" bson:"stock"`
}

// FirstImage returns the primary image URL, or "" when the product has none.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// FindVariation looks up a variation by id. Returns nil when absent.
func (p *Product) FindVariation(id string) *Variation {
	for i := range p.Variations {
		if p.Variations[i].ID == id {
			return &p.Variations[i]
		}
	}
	return nil
}
