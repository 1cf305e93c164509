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

type StoreRepository struct {
	collection *mongo.Collection
}

func NewStoreRepository(db *mongo.Database) *StoreRepository {
	return &StoreRepository{collection: db.Collection("stores")}
}

func (r *StoreRepository) Create(ctx context.Context, store *models.Store) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	store.ID = primitive.NewObjectID()
	now := time.Now()
	store.CreatedAt = now
	store.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, store); err != nil {
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*models.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var store models.Store
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&store)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find store: %w", err)
	}
	return &store, nil
}

func (r *StoreRepository) FindAll(ctx context.Context) ([]models.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer cursor.Close(ctx)

	stores := make([]models.Store, 0)
	if err = cursor.All(ctx, &stores); err != nil {
		return nil, fmt.Errorf("decode stores: %w", err)
	}
	return stores, nil
}

func (r *StoreRepository) Update(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	update["updated_at"] = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
