package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/satriahrh/speechsuite/domain/entities"
	"github.com/satriahrh/speechsuite/domain/repositories"
)

const historyCollection = "synthesis_history"

// HistoryRepository stores synthesis history in MongoDB
type HistoryRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// Ensure HistoryRepository implements the HistoryRepository interface
var _ repositories.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a new MongoDB history repository
func NewHistoryRepository(db *mongo.Database, logger *zap.Logger) *HistoryRepository {
	collection := db.Collection(historyCollection)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// Index on created_at for the recent listing
		_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		})
		if err != nil {
			logger.Error("Failed to create history indexes", zap.Error(err))
		} else {
			logger.Info("History indexes created successfully")
		}
	}()

	return &HistoryRepository{
		collection: collection,
		logger:     logger,
	}
}

// Record implements repositories.HistoryRepository
func (r *HistoryRepository) Record(ctx context.Context, entry entities.HistoryEntry) error {
	if entry.ID == "" {
		return errors.New("history entry ID cannot be empty")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to record history entry: %w", err)
	}

	return nil
}

// Recent implements repositories.HistoryRepository, newest first
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]entities.HistoryEntry, error) {
	if limit <= 0 {
		return []entities.HistoryEntry{}, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []entities.HistoryEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}

	return entries, nil
}
