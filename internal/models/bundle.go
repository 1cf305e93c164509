package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BundleStatus is the lifecycle state of a bundle.
type BundleStatus string

const (
	BundleDraft     BundleStatus = "draft"
	BundleActive    BundleStatus = "active"
	BundleScheduled BundleStatus = "scheduled"
	BundleExpired   BundleStatus = "expired"
	BundleArchived  BundleStatus = "archived"
)

// DiscountType discriminates the stored form of a bundle discount.
type DiscountType string

const (
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixed       DiscountType = "fixed"
	DiscountBundlePrice DiscountType = "bundle_price"
)

// Discount is the persisted shape of a discount policy. Percentage values are
// 0-100; fixed and bundle_price values are in cents. The pricing package
// converts this into its closed policy type before any arithmetic happens.
type Discount struct {
	Type  DiscountType `json:"type" bson:"type" binding:"required,discounttype"`
	Value float64      `json:"value" bson:"value"`
}

// BundleItem is one product line embedded in a bundle. Name, image and price
// are denormalized snapshots taken at enrichment time; they go stale by design
// and are refreshed whenever the bundle's items are edited.
type BundleItem struct {
	ProductID          string `json:"product_id" bson:"product_id"`
	VariationID        string `json:"variation_id,omitempty" bson:"variation_id,omitempty"`
	Quantity           int64  `json:"quantity" bson:"quantity"`
	Name               string `json:"name" bson:"name"`
	Image              string `json:"image,omitempty" bson:"image,omitempty"`
	OriginalPriceCents int64  `json:"original_price_cents" bson:"original_price_cents"`
}

// Bundle is a sellable aggregate of two or more product lines offered at a
// combined discounted price. The bundle owns its embedded items outright;
// product references inside them are weak pointers into the catalog.
//
// The four derived price fields are never written by clients. They are
// recomputed from items + discount on every create and on every update that
// touches either.
type Bundle struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	StoreID     string             `json:"store_id" bson:"store_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Status      BundleStatus       `json:"status" bson:"status"`
	Items       []BundleItem       `json:"items" bson:"items"`
	Discount    Discount           `json:"discount" bson:"discount"`

	// Purchase restrictions.
	MinPurchaseQty   int64 `json:"min_purchase_qty,omitempty" bson:"min_purchase_qty,omitempty"`
	MaxPurchaseQty   int64 `json:"max_purchase_qty,omitempty" bson:"max_purchase_qty,omitempty"`
	AllItemsRequired bool  `json:"all_items_required" bson:"all_items_required"`

	// Derived pricing, cents.
	TotalOriginalPriceCents int64   `json:"total_original_price_cents" bson:"total_original_price_cents"`
	BundlePriceCents        int64   `json:"bundle_price_cents" bson:"bundle_price_cents"`
	SavingsCents            int64   `json:"savings_cents" bson:"savings_cents"`
	SavingsPercentage       float64 `json:"savings_percentage" bson:"savings_percentage"`

	InStock  bool `json:"in_stock" bson:"in_stock"`
	Featured bool `json:"featured" bson:"featured"`

	// Analytics counters, zeroed at creation.
	Views        int64 `json:"views" bson:"views"`
	Purchases    int64 `json:"purchases" bson:"purchases"`
	RevenueCents int64 `json:"revenue_cents" bson:"revenue_cents"`

	StartDate *time.Time `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
	CreatedBy string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	UpdatedBy string    `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
}

// EffectiveStatus resolves the time-driven transitions lazily at read time:
// a scheduled bundle whose start date has passed reads as active, and an
// active bundle whose end date has passed reads as expired. The stored status
// is left untouched; no background job rewrites it.
func (b *Bundle) EffectiveStatus(now time.Time) BundleStatus {
	status := b.Status
	if status == BundleScheduled && b.StartDate != nil && !now.Before(*b.StartDate) {
		status = BundleActive
	}
	if status == BundleActive && b.EndDate != nil && now.After(*b.EndDate) {
		status = BundleExpired
	}
	return status
}
