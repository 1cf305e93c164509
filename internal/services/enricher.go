package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"backoffice/internal/models"
)

// ProductFinder is the catalog read port the enricher resolves references
// through. Implemented by repository.ProductRepository.
type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
}

// Enricher resolves raw product references into bundle items carrying
// denormalized name, image and price snapshots.
type Enricher struct {
	products ProductFinder
}

func NewEnricher(products ProductFinder) *Enricher {
	return &Enricher{products: products}
}

// Enrich looks up each raw item's product and builds the embedded bundle
// item. An item whose product cannot be resolved is logged and dropped; the
// remaining items are returned, so the result can be shorter than the input.
// Callers must re-check the two-item minimum afterwards.
//
// The second return value reports whether every surviving item is purchasable
// at its requested quantity from current stock.
//
// Lookups run one at a time. Items are independent, so this is a latency
// cost, not a correctness constraint.
func (e *Enricher) Enrich(ctx context.Context, raw []RawBundleItem) ([]models.BundleItem, bool) {
	items := make([]models.BundleItem, 0, len(raw))
	inStock := true

	for _, r := range raw {
		product, err := e.products.FindByID(ctx, r.ProductID)
		if err != nil {
			log.Warn().
				Err(err).
				Str("product_id", r.ProductID).
				Msg("dropping bundle item: product lookup failed")
			continue
		}

		item := models.BundleItem{
			ProductID:          r.ProductID,
			Quantity:           r.Quantity,
			Name:               product.Name,
			Image:              product.FirstImage(),
			OriginalPriceCents: product.PriceCents,
		}
		stock := product.Stock

		if r.VariationID != "" {
			if v := product.FindVariation(r.VariationID); v != nil {
				item.VariationID = r.VariationID
				item.OriginalPriceCents = v.PriceCents
				stock = v.Stock
				if v.Name != "" {
					item.Name = product.Name + " - " + v.Name
				}
			} else {
				// Unknown variation: keep the item on the product base price.
				log.Warn().
					Str("product_id", r.ProductID).
					Str("variation_id", r.VariationID).
					Msg("variation not found, falling back to base price")
			}
		}

		if stock < r.Quantity {
			inStock = false
		}
		items = append(items, item)
	}

	return items, inStock
}
