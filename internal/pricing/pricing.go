package pricing

import (
	"fmt"
	"math"

	"backoffice/internal/models"
)

// Policy is the discount applied to a bundle's item total. The set of
// implementations is closed: Percentage, Fixed and ExplicitPrice. Handling is
// exhaustive by construction since each variant derives the sale price itself.
type Policy interface {
	// Apply derives the bundle sale price (cents) from the item total (cents).
	Apply(totalCents int64) int64
	isPolicy()
}

// Percentage takes a cut of the item total. Percent is 0-100.
type Percentage struct {
	Percent float64
}

func (p Percentage) Apply(totalCents int64) int64 {
	return int64(math.Round(float64(totalCents) * (1 - p.Percent/100)))
}

func (Percentage) isPolicy() {}

// Fixed subtracts a flat amount from the item total, clamped at zero.
type Fixed struct {
	AmountCents int64
}

func (f Fixed) Apply(totalCents int64) int64 {
	price := totalCents - f.AmountCents
	if price < 0 {
		return 0
	}
	return price
}

func (Fixed) isPolicy() {}

// ExplicitPrice sells the bundle at a stated price regardless of item total.
type ExplicitPrice struct {
	PriceCents int64
}

func (e ExplicitPrice) Apply(totalCents int64) int64 {
	return e.PriceCents
}

func (ExplicitPrice) isPolicy() {}

// FromModel converts the stored discount shape into a Policy. Fixed and
// explicit values are stored in whole cents.
func FromModel(d models.Discount) (Policy, error) {
	switch d.Type {
	case models.DiscountPercentage:
		return Percentage{Percent: d.Value}, nil
	case models.DiscountFixed:
		return Fixed{AmountCents: int64(math.Round(d.Value))}, nil
	case models.DiscountBundlePrice:
		return ExplicitPrice{PriceCents: int64(math.Round(d.Value))}, nil
	default:
		return nil, fmt.Errorf("unknown discount type %q", d.Type)
	}
}

// Result holds the derived price fields of a bundle.
type Result struct {
	TotalOriginalPriceCents int64
	BundlePriceCents        int64
	SavingsCents            int64
	SavingsPercentage       float64
}

// Compute derives a bundle's price fields from its items and discount policy.
// Pure: same inputs, same outputs, no side effects.
//
// SavingsPercentage is 0 when the item total is 0, so an all-free item list
// never produces NaN.
func Compute(items []models.BundleItem, policy Policy) Result {
	var total int64
	for _, it := range items {
		total += it.OriginalPriceCents * it.Quantity
	}

	price := policy.Apply(total)
	savings := total - price

	var pct float64
	if total != 0 {
		pct = float64(savings) / float64(total) * 100
	}

	return Result{
		TotalOriginalPriceCents: total,
		BundlePriceCents:        price,
		SavingsCents:            savings,
		SavingsPercentage:       pct,
	}
}

// ComputeFromModel is Compute with the stored discount shape.
func ComputeFromModel(items []models.BundleItem, d models.Discount) (Result, error) {
	policy, err := FromModel(d)
	if err != nil {
		return Result{}, err
	}
	return Compute(items, policy), nil
}
