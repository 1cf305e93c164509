package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"backoffice/internal/models"
)

func validInput() BundleInput {
	return BundleInput{
		StoreID: "store-1",
		Name:    "Spring Set",
		Items: []RawBundleItem{
			{ProductID: "a", Quantity: 1},
			{ProductID: "b", Quantity: 1},
			{ProductID: "c", Quantity: 2},
		},
		Discount: models.Discount{Type: models.DiscountPercentage, Value: 50},
	}
}

func TestValidateBundleValid(t *testing.T) {
	result := ValidateBundle(validInput())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateBundleCollectsAllErrors(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(-24 * time.Hour)

	in := BundleInput{
		Name:      "ab",
		Items:     []RawBundleItem{{ProductID: "a", Quantity: 1}},
		Discount:  models.Discount{Type: models.DiscountPercentage, Value: 150},
		StartDate: &start,
		EndDate:   &end,
	}

	result := ValidateBundle(in)

	// No short-circuit: every broken rule shows up at once.
	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 4)
}

func TestValidateBundleNonPositiveQuantity(t *testing.T) {
	in := validInput()
	in.Items[0].Quantity = 0
	in.Items[2].Quantity = -5

	result := ValidateBundle(in)

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "item 0: quantity must be at least 1")
	assert.Contains(t, result.Errors, "item 2: quantity must be at least 1")
}

func TestValidateBundleNameCountsRunes(t *testing.T) {
	in := validInput()
	in.Name = "ñu" // 2 runes, 3 bytes

	result := ValidateBundle(in)
	assert.Contains(t, result.Errors, "name is required and must be at least 3 characters")

	in.Name = "ñúñ"
	assert.True(t, ValidateBundle(in).IsValid)
}

func TestValidateBundleItemCount(t *testing.T) {
	in := validInput()
	in.Items = in.Items[:1]

	result := ValidateBundle(in)

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "a bundle needs at least 2 items")
}

func TestValidateBundlePercentageRange(t *testing.T) {
	in := validInput()
	in.Discount = models.Discount{Type: models.DiscountPercentage, Value: 150}

	result := ValidateBundle(in)
	assert.False(t, result.IsValid)

	in.Discount.Value = 100
	assert.True(t, ValidateBundle(in).IsValid)
}

func TestValidateBundleNegativeFixed(t *testing.T) {
	in := validInput()
	in.Discount = models.Discount{Type: models.DiscountFixed, Value: -5}

	result := ValidateBundle(in)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "fixed discount cannot be negative")
}

func TestValidateBundleUnknownDiscountType(t *testing.T) {
	in := validInput()
	in.Discount = models.Discount{Type: "loyalty", Value: 10}

	result := ValidateBundle(in)
	assert.False(t, result.IsValid)
}

func TestValidateBundleLargeItemCountWarns(t *testing.T) {
	in := validInput()
	in.Items = nil
	for i := 0; i < 11; i++ {
		in.Items = append(in.Items, RawBundleItem{ProductID: "p", Quantity: 1})
	}

	result := ValidateBundle(in)

	// Warning only; the bundle is still valid.
	assert.True(t, result.IsValid)
	assert.Len(t, result.Warnings, 1)
}

func TestValidateBundleDates(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	in := validInput()
	in.StartDate = &start
	in.EndDate = &end
	assert.True(t, ValidateBundle(in).IsValid)

	in.EndDate = &start
	assert.False(t, ValidateBundle(in).IsValid)
}
