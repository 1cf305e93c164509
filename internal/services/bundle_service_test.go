package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backoffice/internal/models"
	"backoffice/internal/repository"
)

// fakeBundleStore keeps bundles in a map and applies $set-style updates to
// the fields the service actually writes.
type fakeBundleStore struct {
	bundles map[string]*models.Bundle
}

func newFakeBundleStore() *fakeBundleStore {
	return &fakeBundleStore{bundles: map[string]*models.Bundle{}}
}

func (f *fakeBundleStore) Create(_ context.Context, b *models.Bundle) error {
	b.ID = primitive.NewObjectID()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	clone := *b
	f.bundles[b.ID.Hex()] = &clone
	return nil
}

func (f *fakeBundleStore) FindByID(_ context.Context, id string) (*models.Bundle, error) {
	b, ok := f.bundles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBundleStore) Update(_ context.Context, id string, update bson.M) error {
	b, ok := f.bundles[id]
	if !ok {
		return repository.ErrNotFound
	}
	for key, value := range update {
		switch key {
		case "name":
			b.Name = value.(string)
		case "status":
			b.Status = value.(models.BundleStatus)
		case "items":
			b.Items = value.([]models.BundleItem)
		case "in_stock":
			b.InStock = value.(bool)
		case "discount":
			b.Discount = value.(models.Discount)
		case "total_original_price_cents":
			b.TotalOriginalPriceCents = value.(int64)
		case "bundle_price_cents":
			b.BundlePriceCents = value.(int64)
		case "savings_cents":
			b.SavingsCents = value.(int64)
		case "savings_percentage":
			b.SavingsPercentage = value.(float64)
		}
	}
	b.UpdatedAt = time.Now()
	return nil
}

func newTestService() (*BundleService, *fakeBundleStore) {
	store := newFakeBundleStore()
	return NewBundleService(store, NewEnricher(newCatalog())), store
}

func TestCreateBundleEndToEnd(t *testing.T) {
	svc, _ := newTestService()

	bundle, err := svc.Create(context.Background(), BundleInput{
		StoreID: "store-1",
		Name:    "Ring and Chain",
		Items: []RawBundleItem{
			{ProductID: "A", Quantity: 2}, // 100.00 each
			{ProductID: "B", Quantity: 1}, // 50.00
		},
		Discount: models.Discount{Type: models.DiscountPercentage, Value: 20},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(25000), bundle.TotalOriginalPriceCents)
	assert.Equal(t, int64(20000), bundle.BundlePriceCents)
	assert.Equal(t, int64(5000), bundle.SavingsCents)
	assert.InDelta(t, 20.0, bundle.SavingsPercentage, 1e-9)
	assert.Equal(t, models.BundleDraft, bundle.Status)
	assert.Zero(t, bundle.Views)
	assert.Zero(t, bundle.Purchases)
	assert.False(t, bundle.ID.IsZero())
}

func TestCreateBundleValidationBlocks(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), BundleInput{
		Name:     "x",
		Items:    []RawBundleItem{{ProductID: "A", Quantity: 1}},
		Discount: models.Discount{Type: models.DiscountPercentage, Value: 10},
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.False(t, validationErr.Result.IsValid)
	assert.NotEmpty(t, validationErr.Result.Errors)
}

func TestCreateBundleInsufficientAfterEnrichment(t *testing.T) {
	svc, _ := newTestService()

	// Structurally valid: two items. But one does not resolve, so the
	// post-enrichment re-check fails with the dedicated error.
	_, err := svc.Create(context.Background(), BundleInput{
		StoreID: "store-1",
		Name:    "Ghost Bundle",
		Items: []RawBundleItem{
			{ProductID: "A", Quantity: 1},
			{ProductID: "MISSING", Quantity: 1},
		},
		Discount: models.Discount{Type: models.DiscountFixed, Value: 500},
	})

	require.ErrorIs(t, err, ErrInsufficientValidItems)
}

func TestCreateBundleBoundaryTwoSurvivors(t *testing.T) {
	svc, _ := newTestService()

	bundle, err := svc.Create(context.Background(), BundleInput{
		StoreID: "store-1",
		Name:    "Survivors",
		Items: []RawBundleItem{
			{ProductID: "A", Quantity: 2},
			{ProductID: "MISSING", Quantity: 1},
			{ProductID: "B", Quantity: 1},
		},
		Discount: models.Discount{Type: models.DiscountPercentage, Value: 10},
	})

	// Exactly two items survive enrichment: boundary pass.
	require.NoError(t, err)
	assert.Len(t, bundle.Items, 2)
}

func TestUpdateRecomputesPricingOnDiscountChange(t *testing.T) {
	svc, store := newTestService()

	bundle, err := svc.Create(context.Background(), BundleInput{
		StoreID:  "store-1",
		Name:     "Reprice Me",
		Items:    []RawBundleItem{{ProductID: "A", Quantity: 1}, {ProductID: "B", Quantity: 1}},
		Discount: models.Discount{Type: models.DiscountPercentage, Value: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(13500), bundle.BundlePriceCents)

	newDiscount := models.Discount{Type: models.DiscountBundlePrice, Value: 9900}
	updated, err := svc.Update(context.Background(), bundle.ID.Hex(), BundleUpdate{Discount: &newDiscount})
	require.NoError(t, err)

	assert.Equal(t, int64(9900), updated.BundlePriceCents)
	assert.Equal(t, int64(15000), updated.TotalOriginalPriceCents)
	assert.Equal(t, int64(5100), updated.SavingsCents)

	stored, err := store.FindByID(context.Background(), bundle.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(9900), stored.BundlePriceCents)
}

func TestUpdateNameOnlyLeavesPricingAlone(t *testing.T) {
	svc, _ := newTestService()

	bundle, err := svc.Create(context.Background(), BundleInput{
		StoreID:  "store-1",
		Name:     "Keep Price",
		Items:    []RawBundleItem{{ProductID: "A", Quantity: 1}, {ProductID: "B", Quantity: 1}},
		Discount: models.Discount{Type: models.DiscountFixed, Value: 1000},
	})
	require.NoError(t, err)

	name := "Renamed"
	updated, err := svc.Update(context.Background(), bundle.ID.Hex(), BundleUpdate{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, bundle.BundlePriceCents, updated.BundlePriceCents)
}

func TestUpdateItemsReEnriches(t *testing.T) {
	svc, _ := newTestService()

	bundle, err := svc.Create(context.Background(), BundleInput{
		StoreID:  "store-1",
		Name:     "Swap Items",
		Items:    []RawBundleItem{{ProductID: "A", Quantity: 1}, {ProductID: "B", Quantity: 1}},
		Discount: models.Discount{Type: models.DiscountPercentage, Value: 0},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), bundle.ID.Hex(), BundleUpdate{
		Items: []RawBundleItem{
			{ProductID: "A", VariationID: "v1", Quantity: 1},
			{ProductID: "B", Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(22000), updated.TotalOriginalPriceCents)
	assert.Len(t, updated.Items, 2)
}

func TestUpdateRejectsNonPositiveQuantity(t *testing.T) {
	svc, store := newTestService()

	bundle, err := svc.Create(context.Background(), BundleInput{
		StoreID:  "store-1",
		Name:     "Guarded",
		Items:    []RawBundleItem{{ProductID: "A", Quantity: 1}, {ProductID: "B", Quantity: 1}},
		Discount: models.Discount{Type: models.DiscountPercentage, Value: 10},
	})
	require.NoError(t, err)

	// A negative quantity must never reach enrichment or pricing; the stored
	// document keeps its non-negative totals.
	_, err = svc.Update(context.Background(), bundle.ID.Hex(), BundleUpdate{
		Items: []RawBundleItem{
			{ProductID: "A", Quantity: -5},
			{ProductID: "B", Quantity: 1},
		},
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Result.Errors, "item 0: quantity must be at least 1")

	stored, err := store.FindByID(context.Background(), bundle.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, bundle.TotalOriginalPriceCents, stored.TotalOriginalPriceCents)
	assert.GreaterOrEqual(t, stored.BundlePriceCents, int64(0))
}

func TestUpdateMissingBundle(t *testing.T) {
	svc, _ := newTestService()

	name := "whatever"
	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), BundleUpdate{Name: &name})
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
