package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/models"
)

func snapshotOf(names ...string) func(context.Context) ([]models.Bundle, error) {
	bundles := make([]models.Bundle, 0, len(names))
	for _, name := range names {
		bundles = append(bundles, models.Bundle{Name: name})
	}
	return func(context.Context) ([]models.Bundle, error) {
		return bundles, nil
	}
}

func TestSubscriptionLatestWins(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := newBundleSubscription(cancel)

	// Two emissions before the consumer reads: the stale one is replaced,
	// never queued behind the fresh one.
	sub.emit(ctx, snapshotOf("first"))
	sub.emit(ctx, snapshotOf("second", "third"))

	snapshot := <-sub.Snapshots()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "second", snapshot[0].Name)

	select {
	case extra, ok := <-sub.Snapshots():
		t.Fatalf("unexpected extra snapshot %v (open=%v)", extra, ok)
	default:
	}
}

func TestSubscriptionEmitAfterClose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sub := newBundleSubscription(cancel)

	sub.close()
	sub.emit(ctx, snapshotOf("late"))

	snapshot, ok := <-sub.Snapshots()
	assert.False(t, ok)
	assert.Nil(t, snapshot)
}

func TestSubscriptionSnapshotErrorEmitsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := newBundleSubscription(cancel)

	sub.emit(ctx, func(context.Context) ([]models.Bundle, error) {
		return nil, errors.New("query failed")
	})

	select {
	case snapshot := <-sub.Snapshots():
		t.Fatalf("unexpected snapshot %v", snapshot)
	default:
	}
}

func TestSubscriptionCancelTwice(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sub := newBundleSubscription(cancel)

	sub.Cancel()
	sub.Cancel()
	assert.Error(t, ctx.Err())

	sub.close()
	_, ok := <-sub.Snapshots()
	assert.False(t, ok)
}
