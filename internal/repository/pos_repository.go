package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backoffice/internal/models"
)

type POSRepository struct {
	collection *mongo.Collection
}

func NewPOSRepository(db *mongo.Database) *POSRepository {
	return &POSRepository{collection: db.Collection("pos_sessions")}
}

func (r *POSRepository) Create(ctx context.Context, session *models.POSSession) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session.ID = primitive.NewObjectID()
	session.OpenedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("insert pos session: %w", err)
	}
	return nil
}

func (r *POSRepository) FindByID(ctx context.Context, id string) (*models.POSSession, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var session models.POSSession
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find pos session: %w", err)
	}
	return &session, nil
}

// FindOpenByStore returns the currently open session for a store, if any.
func (r *POSRepository) FindOpenByStore(ctx context.Context, storeID string) (*models.POSSession, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var session models.POSSession
	filter := bson.M{"store_id": storeID, "status": models.POSSessionOpen}
	err := r.collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find open pos session: %w", err)
	}
	return &session, nil
}

func (r *POSRepository) FindAll(ctx context.Context, storeID string, page, pageSize int) ([]models.POSSession, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := bson.M{}
	if storeID != "" {
		query["store_id"] = storeID
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count pos sessions: %w", err)
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize)).
		SetSort(bson.D{{Key: "opened_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list pos sessions: %w", err)
	}
	defer cursor.Close(ctx)

	sessions := make([]models.POSSession, 0)
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, 0, fmt.Errorf("decode pos sessions: %w", err)
	}
	return sessions, total, nil
}

// AppendTransaction pushes one ledger entry onto an open session.
func (r *POSRepository) AppendTransaction(ctx context.Context, id string, tx models.POSTransaction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	filter := bson.M{"_id": objID, "status": models.POSSessionOpen}
	update := bson.M{"$push": bson.M{"transactions": tx}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("append pos transaction: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close writes the reconciliation result and marks the session closed.
func (r *POSRepository) Close(ctx context.Context, id string, countedCents, expectedCents, discrepancyCents int64, closedBy string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	now := time.Now()
	filter := bson.M{"_id": objID, "status": models.POSSessionOpen}
	update := bson.M{"$set": bson.M{
		"status":              models.POSSessionClosed,
		"counted_cash_cents":  countedCents,
		"expected_cash_cents": expectedCents,
		"discrepancy_cents":   discrepancyCents,
		"closed_by":           closedBy,
		"closed_at":           now,
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("close pos session: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
