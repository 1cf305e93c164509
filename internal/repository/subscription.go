package repository

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"backoffice/internal/models"
)

// BundleSubscription is a live view over a bundle query. Snapshots() yields
// the complete current result set after every underlying change; consumers
// never receive deltas. Cancel detaches the listener and closes the channel;
// it does not abort an in-flight snapshot query.
type BundleSubscription struct {
	ch     chan []models.Bundle
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

func newBundleSubscription(cancel context.CancelFunc) *BundleSubscription {
	return &BundleSubscription{
		ch:     make(chan []models.Bundle, 1),
		cancel: cancel,
	}
}

// Snapshots is the stream of full result sets.
func (s *BundleSubscription) Snapshots() <-chan []models.Bundle {
	return s.ch
}

// Cancel stops the subscription. Safe to call more than once.
func (s *BundleSubscription) Cancel() {
	s.cancel()
}

// emit runs the snapshot query and pushes the result, replacing any snapshot
// the consumer has not picked up yet. A stale unread snapshot is worthless
// since every emission is authoritative.
func (s *BundleSubscription) emit(ctx context.Context, snapshot func(context.Context) ([]models.Bundle, error)) {
	bundles, err := snapshot(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Error().Err(err).Msg("bundle subscription snapshot failed")
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case <-s.ch:
	default:
	}
	s.ch <- bundles
}

func (s *BundleSubscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
