package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"backoffice/internal/models"
	"backoffice/internal/repository"
)

const invoiceDueDays = 14

// InvoiceService turns orders into invoices.
type InvoiceService struct {
	invoices *repository.InvoiceRepository
	orders   *repository.OrderRepository
}

func NewInvoiceService(invoices *repository.InvoiceRepository, orders *repository.OrderRepository) *InvoiceService {
	return &InvoiceService{invoices: invoices, orders: orders}
}

// GenerateFromOrder snapshots an order into an issued invoice. Lines and
// totals are copied, not referenced; later edits to the order do not touch
// the invoice.
func (s *InvoiceService) GenerateFromOrder(ctx context.Context, orderID string) (*models.Invoice, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines := make([]models.InvoiceLine, 0, len(order.Items))
	for _, it := range order.Items {
		lines = append(lines, models.InvoiceLine{
			Description:    it.Name,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			TotalCents:     it.UnitPriceCents * it.Quantity,
		})
	}

	now := time.Now()
	invoice := &models.Invoice{
		Number:        newInvoiceNumber(now),
		StoreID:       order.StoreID,
		OrderID:       orderID,
		CustomerID:    order.CustomerID,
		Status:        models.InvoiceIssued,
		Lines:         lines,
		SubtotalCents: order.SubtotalCents,
		TotalCents:    order.TotalCents,
		Currency:      order.Currency,
		IssuedAt:      now,
		DueAt:         now.AddDate(0, 0, invoiceDueDays),
	}

	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// newInvoiceNumber builds a human-readable unique number, e.g.
// INV-2026-3F2A81C4. Uniqueness comes from the random fragment, not a
// sequence, so no counter document is needed.
func newInvoiceNumber(now time.Time) string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("INV-%d-%s", now.Year(), fragment)
}
