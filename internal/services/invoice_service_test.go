package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewInvoiceNumberFormat(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	number := newInvoiceNumber(now)

	assert.Regexp(t, `^INV-2026-[0-9A-F]{8}$`, number)
	assert.NotEqual(t, number, newInvoiceNumber(now), "fragments must differ")
}
