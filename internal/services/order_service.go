package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"backoffice/internal/models"
	"backoffice/internal/repository"
)

// OrderService records sales. Totals are always derived from the items here;
// whatever totals a client sends are overwritten.
type OrderService struct {
	orders  *repository.OrderRepository
	bundles *repository.BundleRepository
}

func NewOrderService(orders *repository.OrderRepository, bundles *repository.BundleRepository) *OrderService {
	return &OrderService{orders: orders, bundles: bundles}
}

func (s *OrderService) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.Status == "" {
		order.Status = models.OrderPending
	}

	order.SubtotalCents = order.Subtotal()
	if order.DiscountCents < 0 {
		order.DiscountCents = 0
	}
	order.TotalCents = order.SubtotalCents - order.DiscountCents
	if order.TotalCents < 0 {
		order.TotalCents = 0
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	// Bundle analytics counters; best-effort, a failed bump never fails the
	// sale itself.
	for _, it := range order.Items {
		if it.BundleID == "" {
			continue
		}
		revenue := it.UnitPriceCents * it.Quantity
		if err := s.bundles.RecordPurchase(ctx, it.BundleID, it.Quantity, revenue); err != nil {
			log.Warn().Err(err).Str("bundle_id", it.BundleID).Msg("bundle purchase counter update failed")
		}
	}

	return order, nil
}
