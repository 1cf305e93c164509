package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backoffice/internal/models"
)

const (
	defaultTimeout = 5 * time.Second
	queryTimeout   = 10 * time.Second
)

// BundleFilter narrows a bundle listing. Status, Featured and InStock are
// pushed into the Mongo query; Search is matched in memory after the fetch.
type BundleFilter struct {
	StoreID  string
	Status   models.BundleStatus
	Featured *bool
	InStock  *bool
	Search   string
}

// BundleRepository persists bundles in the `bundles` collection. Items are
// embedded in the bundle document; there is no separate items collection.
type BundleRepository struct {
	collection *mongo.Collection
}

func NewBundleRepository(db *mongo.Database) *BundleRepository {
	return &BundleRepository{collection: db.Collection("bundles")}
}

// Create inserts a fully prepared bundle. Callers (the bundle service) are
// responsible for validation, enrichment and pricing before this point.
func (r *BundleRepository) Create(ctx context.Context, bundle *models.Bundle) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	bundle.ID = primitive.NewObjectID()
	now := time.Now()
	bundle.CreatedAt = now
	bundle.UpdatedAt = now
	bundle.Views = 0
	bundle.Purchases = 0
	bundle.RevenueCents = 0

	if _, err := r.collection.InsertOne(ctx, bundle); err != nil {
		return fmt.Errorf("insert bundle: %w", err)
	}
	return nil
}

// FindByID fetches one bundle by its hex id.
func (r *BundleRepository) FindByID(ctx context.Context, id string) (*models.Bundle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var bundle models.Bundle
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&bundle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find bundle: %w", err)
	}
	return &bundle, nil
}

// FindAll lists bundles with filters and page/limit pagination. The total is
// counted concurrently with the page fetch, like the product listing.
func (r *BundleRepository) FindAll(ctx context.Context, filter BundleFilter, page, pageSize int) ([]models.Bundle, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := r.buildQuery(filter)

	totalCh := make(chan int64, 1)
	errCh := make(chan error, 1)
	go func() {
		total, err := r.collection.CountDocuments(ctx, query)
		if err != nil {
			errCh <- err
			return
		}
		totalCh <- total
	}()

	opts := options.Find().
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list bundles: %w", err)
	}
	defer cursor.Close(ctx)

	bundles := make([]models.Bundle, 0)
	if err = cursor.All(ctx, &bundles); err != nil {
		return nil, 0, fmt.Errorf("decode bundles: %w", err)
	}

	if filter.Search != "" {
		bundles = filterBundlesBySearch(bundles, filter.Search)
	}

	var total int64
	select {
	case total = <-totalCh:
	case err := <-errCh:
		return bundles, 0, fmt.Errorf("count bundles: %w", err)
	case <-ctx.Done():
		return bundles, 0, ctx.Err()
	}

	return bundles, total, nil
}

// Update applies a partial update. The caller strips client-supplied derived
// price fields and recomputes them before reaching this method.
func (r *BundleRepository) Update(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	update["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("update bundle: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the bundle outright. Bundles have no soft-delete.
func (r *BundleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("delete bundle: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementViews bumps the view counter without touching updated_at.
func (r *BundleRepository) IncrementViews(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

// RecordPurchase bumps the purchase counters after a completed sale.
func (r *BundleRepository) RecordPurchase(ctx context.Context, id string, quantity, revenueCents int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	update := bson.M{"$inc": bson.M{
		"purchases":     quantity,
		"revenue_cents": revenueCents,
	}}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	return err
}

func (r *BundleRepository) buildQuery(filter BundleFilter) bson.M {
	query := bson.M{}
	if filter.StoreID != "" {
		query["store_id"] = filter.StoreID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}
	if filter.InStock != nil {
		query["in_stock"] = *filter.InStock
	}
	return query
}

// filterBundlesBySearch matches name and description case-insensitively.
// In-memory on purpose: acceptable at back-office dataset sizes.
func filterBundlesBySearch(bundles []models.Bundle, search string) []models.Bundle {
	needle := strings.ToLower(search)
	out := make([]models.Bundle, 0, len(bundles))
	for _, b := range bundles {
		if strings.Contains(strings.ToLower(b.Name), needle) ||
			strings.Contains(strings.ToLower(b.Description), needle) {
			out = append(out, b)
		}
	}
	return out
}

// SubscribeOne watches a single bundle. Every emission is the full current
// document; nil is emitted when the bundle is deleted. Cancel the returned
// subscription to detach the listener.
func (r *BundleRepository) SubscribeOne(ctx context.Context, id string) (*BundleSubscription, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"documentKey._id": objID}}},
	}
	return r.subscribe(ctx, pipeline, func(ctx context.Context) ([]models.Bundle, error) {
		bundle, err := r.FindByID(ctx, id)
		if err != nil {
			if err == ErrNotFound {
				return nil, nil
			}
			return nil, err
		}
		return []models.Bundle{*bundle}, nil
	})
}

// SubscribeMany watches the collection and re-runs the filtered listing after
// every change. Consumers treat each emission as a complete snapshot, never a
// delta.
func (r *BundleRepository) SubscribeMany(ctx context.Context, filter BundleFilter) (*BundleSubscription, error) {
	return r.subscribe(ctx, mongo.Pipeline{}, func(ctx context.Context) ([]models.Bundle, error) {
		bundles, _, err := r.FindAll(ctx, filter, 1, 100)
		return bundles, err
	})
}

func (r *BundleRepository) subscribe(ctx context.Context, pipeline mongo.Pipeline, snapshot func(context.Context) ([]models.Bundle, error)) (*BundleSubscription, error) {
	ctx, cancel := context.WithCancel(ctx)

	stream, err := r.collection.Watch(ctx, pipeline)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("watch bundles: %w", err)
	}

	sub := newBundleSubscription(cancel)

	go func() {
		defer stream.Close(context.Background())
		defer sub.close()

		// Initial snapshot so subscribers do not wait for the first change.
		sub.emit(ctx, snapshot)

		for stream.Next(ctx) {
			sub.emit(ctx, snapshot)
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("bundle change stream closed")
		}
	}()

	return sub, nil
}
