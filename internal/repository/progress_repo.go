package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"venturescope/internal/model"
)

// ProgressRepo handles MongoDB operations for completed-stage sets.
// The set only grows: completions are recorded with $addToSet and nothing
// ever removes an entry.
type ProgressRepo interface {
	GetCompletedStages(ctx context.Context, ideaID string) ([]int, error)
	AddCompletedStage(ctx context.Context, ideaID string, stageID int) error
}

type progressRepo struct {
	collection *mongo.Collection
}

// NewProgressRepo creates a new progress repository
func NewProgressRepo(db *mongo.Database) ProgressRepo {
	return &progressRepo{
		collection: db.Collection("stage_progress"),
	}
}

func (r *progressRepo) GetCompletedStages(ctx context.Context, ideaID string) ([]int, error) {
	var record model.StageProgressRecord
	err := r.collection.FindOne(ctx, bson.M{"ideaId": ideaID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return []int{}, nil
	}
	if err != nil {
		return nil, err
	}
	return record.CompletedStages, nil
}

func (r *progressRepo) AddCompletedStage(ctx context.Context, ideaID string, stageID int) error {
	update := bson.M{
		"$addToSet": bson.M{"completedStages": stageID},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"ideaId": ideaID}, update, opts)
	return err
}
