package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/realty/internal/config"
	"github.com/mamadbah2/realty/internal/domain/models"
)

// Repository reads listings from a MongoDB collection.
type Repository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewRepository connects to MongoDB and verifies the connection.
func NewRepository(ctx context.Context, cfg config.MongoDBConfig) (*Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{
		client:   client,
		dbName:   cfg.DBName,
		collName: cfg.Collection,
	}, nil
}

func (r *Repository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// ListProperties returns every listing in the collection ordered by id.
func (r *Repository) ListProperties(ctx context.Context) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := r.collection().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}
	defer cursor.Close(ctx)

	properties := make([]models.Property, 0)
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return properties, nil
}

// UpsertProperties writes listings keyed by id. It is used to seed a collection.
func (r *Repository) UpsertProperties(ctx context.Context, properties []models.Property) (int64, error) {
	if len(properties) == 0 {
		return 0, nil
	}

	writes := make([]mongo.WriteModel, 0, len(properties))
	for _, p := range properties {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "id", Value: p.ID}}).
			SetReplacement(p).
			SetUpsert(true))
	}

	res, err := r.collection().BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("upsert properties: %w", err)
	}
	return res.UpsertedCount + res.ModifiedCount, nil
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
