package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/models"
)

func items(prices ...int64) []models.BundleItem {
	out := make([]models.BundleItem, 0, len(prices))
	for _, p := range prices {
		out = append(out, models.BundleItem{Quantity: 1, OriginalPriceCents: p})
	}
	return out
}

func TestComputePercentage(t *testing.T) {
	list := []models.BundleItem{
		{Quantity: 2, OriginalPriceCents: 10000},
		{Quantity: 1, OriginalPriceCents: 5000},
	}

	res := Compute(list, Percentage{Percent: 20})

	assert.Equal(t, int64(25000), res.TotalOriginalPriceCents)
	assert.Equal(t, int64(20000), res.BundlePriceCents)
	assert.Equal(t, int64(5000), res.SavingsCents)
	assert.InDelta(t, 20.0, res.SavingsPercentage, 1e-9)
}

func TestComputePercentageBounds(t *testing.T) {
	list := items(1000, 2000)

	res := Compute(list, Percentage{Percent: 0})
	assert.Equal(t, int64(3000), res.BundlePriceCents)
	assert.Equal(t, int64(0), res.SavingsCents)

	res = Compute(list, Percentage{Percent: 100})
	assert.Equal(t, int64(0), res.BundlePriceCents)
	assert.Equal(t, int64(3000), res.SavingsCents)
}

func TestComputeFixed(t *testing.T) {
	tests := []struct {
		name      string
		amount    int64
		wantPrice int64
	}{
		{"partial", 1000, 2000},
		{"exact", 3000, 0},
		{"exceeds total clamps at zero", 9000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Compute(items(1000, 2000), Fixed{AmountCents: tt.amount})
			assert.Equal(t, tt.wantPrice, res.BundlePriceCents)
			assert.GreaterOrEqual(t, res.BundlePriceCents, int64(0))
		})
	}
}

func TestComputeExplicitPrice(t *testing.T) {
	res := Compute(items(1000, 2000), ExplicitPrice{PriceCents: 2500})
	assert.Equal(t, int64(2500), res.BundlePriceCents)
	assert.Equal(t, int64(500), res.SavingsCents)

	// Independent of item total.
	res = Compute(items(100), ExplicitPrice{PriceCents: 2500})
	assert.Equal(t, int64(2500), res.BundlePriceCents)
}

func TestComputeZeroTotalGuardsDivision(t *testing.T) {
	res := Compute(items(0, 0), Percentage{Percent: 50})

	assert.Equal(t, int64(0), res.TotalOriginalPriceCents)
	assert.Equal(t, float64(0), res.SavingsPercentage)
	assert.False(t, res.SavingsPercentage != res.SavingsPercentage, "must not be NaN")
}

func TestComputeIdempotent(t *testing.T) {
	list := items(1999, 2999, 499)
	first := Compute(list, Percentage{Percent: 15})
	second := Compute(list, Percentage{Percent: 15})
	assert.Equal(t, first, second)
}

func TestFromModel(t *testing.T) {
	policy, err := FromModel(models.Discount{Type: models.DiscountPercentage, Value: 25})
	require.NoError(t, err)
	assert.Equal(t, Percentage{Percent: 25}, policy)

	policy, err = FromModel(models.Discount{Type: models.DiscountFixed, Value: 500})
	require.NoError(t, err)
	assert.Equal(t, Fixed{AmountCents: 500}, policy)

	policy, err = FromModel(models.Discount{Type: models.DiscountBundlePrice, Value: 9900})
	require.NoError(t, err)
	assert.Equal(t, ExplicitPrice{PriceCents: 9900}, policy)

	_, err = FromModel(models.Discount{Type: "bogo", Value: 1})
	require.Error(t, err)
}
