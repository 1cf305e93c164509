package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"backoffice/internal/models"
	"backoffice/internal/pricing"
	"backoffice/internal/repository"
)

// ErrInsufficientValidItems is returned when enrichment drops a bundle below
// the two-item minimum. It is deliberately distinct from the structural
// validation failure for the same rule: validation sees what the client sent,
// this error reflects what actually resolved against the catalog.
var ErrInsufficientValidItems = errors.New("bundle has fewer than 2 valid products after enrichment")

// ValidationError carries the full advisory result when a caller asked the
// service to block on invalid input.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	return "bundle validation failed: " + strings.Join(e.Result.Errors, "; ")
}

// RawBundleItem is an unresolved product reference as submitted by a client.
type RawBundleItem struct {
	ProductID   string `json:"product_id" binding:"required"`
	VariationID string `json:"variation_id,omitempty"`
	Quantity    int64  `json:"quantity" binding:"required,min=1"`
}

// BundleInput is a bundle candidate before enrichment and pricing.
type BundleInput struct {
	StoreID          string              `json:"store_id" binding:"required"`
	Name             string              `json:"name" binding:"required"`
	Description      string              `json:"description,omitempty"`
	Items            []RawBundleItem     `json:"items" binding:"required,dive"`
	Discount         models.Discount     `json:"discount" binding:"required"`
	MinPurchaseQty   int64               `json:"min_purchase_qty,omitempty"`
	MaxPurchaseQty   int64               `json:"max_purchase_qty,omitempty"`
	AllItemsRequired bool                `json:"all_items_required,omitempty"`
	Featured         bool                `json:"featured,omitempty"`
	Status           models.BundleStatus `json:"status,omitempty"`
	StartDate        *time.Time          `json:"start_date,omitempty"`
	EndDate          *time.Time          `json:"end_date,omitempty"`
	CreatedBy        string              `json:"-"`
}

// BundleUpdate is a partial edit. Nil fields are left untouched. Derived
// price fields are not part of this type on purpose: clients cannot set them.
type BundleUpdate struct {
	Name             *string              `json:"name,omitempty"`
	Description      *string              `json:"description,omitempty"`
	Status           *models.BundleStatus `json:"status,omitempty"`
	Items            []RawBundleItem      `json:"items,omitempty"`
	Discount         *models.Discount     `json:"discount,omitempty"`
	MinPurchaseQty   *int64               `json:"min_purchase_qty,omitempty"`
	MaxPurchaseQty   *int64               `json:"max_purchase_qty,omitempty"`
	AllItemsRequired *bool                `json:"all_items_required,omitempty"`
	Featured         *bool                `json:"featured,omitempty"`
	StartDate        *time.Time           `json:"start_date,omitempty"`
	EndDate          *time.Time           `json:"end_date,omitempty"`
	UpdatedBy        string               `json:"-"`
}

// BundleStore is the persistence port the bundle service writes through.
// Implemented by repository.BundleRepository.
type BundleStore interface {
	Create(ctx context.Context, bundle *models.Bundle) error
	FindByID(ctx context.Context, id string) (*models.Bundle, error)
	Update(ctx context.Context, id string, update bson.M) error
}

// BundleService runs the create and update flows: validate, enrich, re-check
// the item minimum, compute pricing, persist.
type BundleService struct {
	bundles  BundleStore
	enricher *Enricher
}

func NewBundleService(bundles BundleStore, enricher *Enricher) *BundleService {
	return &BundleService{bundles: bundles, enricher: enricher}
}

// Create validates, enriches and prices a bundle candidate, then persists it
// with zeroed counters. Returns *ValidationError when structural validation
// fails and ErrInsufficientValidItems when enrichment drops the bundle below
// two items.
func (s *BundleService) Create(ctx context.Context, in BundleInput) (*models.Bundle, error) {
	if result := ValidateBundle(in); !result.IsValid {
		return nil, &ValidationError{Result: result}
	}

	items, inStock := s.enricher.Enrich(ctx, in.Items)
	if len(items) < 2 {
		return nil, ErrInsufficientValidItems
	}

	priced, err := pricing.ComputeFromModel(items, in.Discount)
	if err != nil {
		return nil, fmt.Errorf("compute bundle pricing: %w", err)
	}

	status := in.Status
	if status == "" {
		status = models.BundleDraft
	}

	bundle := &models.Bundle{
		StoreID:          in.StoreID,
		Name:             in.Name,
		Description:      in.Description,
		Status:           status,
		Items:            items,
		Discount:         in.Discount,
		MinPurchaseQty:   in.MinPurchaseQty,
		MaxPurchaseQty:   in.MaxPurchaseQty,
		AllItemsRequired: in.AllItemsRequired,
		Featured:         in.Featured,
		InStock:          inStock,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		CreatedBy:        in.CreatedBy,
		UpdatedBy:        in.CreatedBy,

		TotalOriginalPriceCents: priced.TotalOriginalPriceCents,
		BundlePriceCents:        priced.BundlePriceCents,
		SavingsCents:            priced.SavingsCents,
		SavingsPercentage:       priced.SavingsPercentage,
	}

	if err := s.bundles.Create(ctx, bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

// Update applies a partial edit. When the edit touches items or the discount,
// pricing is recomputed here from the enriched state; any price fields a
// client might have smuggled into the request never reach the document.
//
// Read-modify-write, no optimistic locking: two admins editing the same
// bundle race, last writer wins. Accepted for human-paced edits.
func (s *BundleService) Update(ctx context.Context, id string, in BundleUpdate) (*models.Bundle, error) {
	current, err := s.bundles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := mergeBundleInput(current, in)
	if result := ValidateBundle(merged); !result.IsValid {
		return nil, &ValidationError{Result: result}
	}

	update := bson.M{}
	if in.Name != nil {
		update["name"] = *in.Name
	}
	if in.Description != nil {
		update["description"] = *in.Description
	}
	if in.Status != nil {
		update["status"] = *in.Status
	}
	if in.MinPurchaseQty != nil {
		update["min_purchase_qty"] = *in.MinPurchaseQty
	}
	if in.MaxPurchaseQty != nil {
		update["max_purchase_qty"] = *in.MaxPurchaseQty
	}
	if in.AllItemsRequired != nil {
		update["all_items_required"] = *in.AllItemsRequired
	}
	if in.Featured != nil {
		update["featured"] = *in.Featured
	}
	if in.StartDate != nil {
		update["start_date"] = *in.StartDate
	}
	if in.EndDate != nil {
		update["end_date"] = *in.EndDate
	}
	if in.UpdatedBy != "" {
		update["updated_by"] = in.UpdatedBy
	}

	repriceNeeded := in.Items != nil || in.Discount != nil

	items := current.Items
	if in.Items != nil {
		enriched, inStock := s.enricher.Enrich(ctx, in.Items)
		if len(enriched) < 2 {
			return nil, ErrInsufficientValidItems
		}
		items = enriched
		update["items"] = enriched
		update["in_stock"] = inStock
	}

	discount := current.Discount
	if in.Discount != nil {
		discount = *in.Discount
		update["discount"] = discount
	}

	if repriceNeeded {
		priced, err := pricing.ComputeFromModel(items, discount)
		if err != nil {
			return nil, fmt.Errorf("compute bundle pricing: %w", err)
		}
		update["total_original_price_cents"] = priced.TotalOriginalPriceCents
		update["bundle_price_cents"] = priced.BundlePriceCents
		update["savings_cents"] = priced.SavingsCents
		update["savings_percentage"] = priced.SavingsPercentage
	}

	if err := s.bundles.Update(ctx, id, update); err != nil {
		return nil, err
	}
	return s.bundles.FindByID(ctx, id)
}

// mergeBundleInput projects the stored bundle plus the pending edit into a
// candidate the validator understands.
func mergeBundleInput(current *models.Bundle, in BundleUpdate) BundleInput {
	merged := BundleInput{
		StoreID:     current.StoreID,
		Name:        current.Name,
		Description: current.Description,
		Discount:    current.Discount,
		StartDate:   current.StartDate,
		EndDate:     current.EndDate,
	}
	merged.Items = rawItemsFrom(current.Items)

	if in.Name != nil {
		merged.Name = *in.Name
	}
	if in.Description != nil {
		merged.Description = *in.Description
	}
	if in.Items != nil {
		merged.Items = in.Items
	}
	if in.Discount != nil {
		merged.Discount = *in.Discount
	}
	if in.StartDate != nil {
		merged.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		merged.EndDate = in.EndDate
	}
	return merged
}

func rawItemsFrom(items []models.BundleItem) []RawBundleItem {
	raw := make([]RawBundleItem, 0, len(items))
	for _, it := range items {
		raw = append(raw, RawBundleItem{
			ProductID:   it.ProductID,
			VariationID: it.VariationID,
			Quantity:    it.Quantity,
		})
	}
	return raw
}

// IsNotFound reports whether err is the repository's missing-document error.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
