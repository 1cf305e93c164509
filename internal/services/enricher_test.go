package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"backoffice/internal/models"
	"backoffice/internal/repository"
)

// fakeCatalog implements ProductFinder over a map.
type fakeCatalog struct {
	products map[string]*models.Product
}

func (f *fakeCatalog) FindByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func newCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[string]*models.Product{
		"A": {
			Name:       "Gold Ring",
			PriceCents: 10000,
			Stock:      5,
			Images:     []string{"https://img/a.jpg"},
			Variations: []models.Variation{
				{ID: "v1", Name: "Size 7", PriceCents: 12000, Stock: 2},
				{ID: "v2", Name: "Size 8", PriceCents: 0, Stock: 0},
			},
		},
		"B": {Name: "Silver Chain", PriceCents: 5000, Stock: 10},
	}}
}

func TestEnrichResolvesSnapshots(t *testing.T) {
	e := NewEnricher(newCatalog())

	items, inStock := e.Enrich(context.Background(), []RawBundleItem{
		{ProductID: "A", Quantity: 2},
		{ProductID: "B", Quantity: 1},
	})

	assert.Len(t, items, 2)
	assert.True(t, inStock)
	assert.Equal(t, "Gold Ring", items[0].Name)
	assert.Equal(t, "https://img/a.jpg", items[0].Image)
	assert.Equal(t, int64(10000), items[0].OriginalPriceCents)
	assert.Equal(t, int64(5000), items[1].OriginalPriceCents)
}

func TestEnrichDropsMissingProducts(t *testing.T) {
	e := NewEnricher(newCatalog())

	items, _ := e.Enrich(context.Background(), []RawBundleItem{
		{ProductID: "A", Quantity: 2},
		{ProductID: "MISSING", Quantity: 1},
		{ProductID: "B", Quantity: 1},
	})

	// The missing reference is dropped, not fatal.
	assert.Len(t, items, 2)
	assert.Equal(t, "A", items[0].ProductID)
	assert.Equal(t, "B", items[1].ProductID)
}

func TestEnrichUsesVariationPrice(t *testing.T) {
	e := NewEnricher(newCatalog())

	items, _ := e.Enrich(context.Background(), []RawBundleItem{
		{ProductID: "A", VariationID: "v1", Quantity: 1},
		{ProductID: "B", Quantity: 1},
	})

	assert.Equal(t, int64(12000), items[0].OriginalPriceCents)
	assert.Equal(t, "Gold Ring - Size 7", items[0].Name)
	assert.Equal(t, "v1", items[0].VariationID)
}

func TestEnrichFallsBackOnUnknownVariation(t *testing.T) {
	e := NewEnricher(newCatalog())

	items, _ := e.Enrich(context.Background(), []RawBundleItem{
		{ProductID: "A", VariationID: "nope", Quantity: 1},
		{ProductID: "B", Quantity: 1},
	})

	// Item survives on the product base price; the bad variation id is not kept.
	assert.Equal(t, int64(10000), items[0].OriginalPriceCents)
	assert.Empty(t, items[0].VariationID)
}

func TestEnrichReportsOutOfStock(t *testing.T) {
	e := NewEnricher(newCatalog())

	_, inStock := e.Enrich(context.Background(), []RawBundleItem{
		{ProductID: "A", VariationID: "v1", Quantity: 3}, // variation has stock 2
		{ProductID: "B", Quantity: 1},
	})

	assert.False(t, inStock)
}
