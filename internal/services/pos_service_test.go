package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"backoffice/internal/models"
)

func TestExpectedCashEmptyLedger(t *testing.T) {
	assert.Equal(t, int64(5000), ExpectedCash(5000, nil))
}

func TestExpectedCashMixedLedger(t *testing.T) {
	txs := []models.POSTransaction{
		{Kind: models.POSSale, Method: models.PaymentCash, AmountCents: 20000},
		{Kind: models.POSSale, Method: models.PaymentCard, AmountCents: 15000}, // never touches the drawer
		{Kind: models.POSRefund, Method: models.PaymentCash, AmountCents: 3000},
		{Kind: models.POSRefund, Method: models.PaymentCard, AmountCents: 1000}, // nor does this
		{Kind: models.POSPayout, Method: models.PaymentCash, AmountCents: 2500},
	}

	// 5000 + 20000 - 3000 - 2500
	assert.Equal(t, int64(19500), ExpectedCash(5000, txs))
}

func TestExpectedCashCanGoNegative(t *testing.T) {
	txs := []models.POSTransaction{
		{Kind: models.POSPayout, Method: models.PaymentCash, AmountCents: 8000},
	}

	// A payout larger than the drawer is a data-entry problem the close
	// report must surface, not hide.
	assert.Equal(t, int64(-3000), ExpectedCash(5000, txs))
}

func TestDiscrepancySign(t *testing.T) {
	txs := []models.POSTransaction{
		{Kind: models.POSSale, Method: models.PaymentCash, AmountCents: 10000},
	}
	expected := ExpectedCash(2000, txs)
	assert.Equal(t, int64(12000), expected)

	// Counted short by 500: negative discrepancy.
	assert.Equal(t, int64(-500), int64(11500)-expected)
	// Counted over by 300: positive discrepancy.
	assert.Equal(t, int64(300), int64(12300)-expected)
}
