package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"venturescope/internal/model"
)

// IdeaRepo handles MongoDB operations for ideas
type IdeaRepo interface {
	Create(ctx context.Context, idea *model.Idea) error
	GetByID(ctx context.Context, id string) (*model.Idea, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Idea, error)
	Update(ctx context.Context, idea *model.Idea) error
}

type ideaRepo struct {
	collection *mongo.Collection
}

// NewIdeaRepo creates a new idea repository
func NewIdeaRepo(db *mongo.Database) IdeaRepo {
	return &ideaRepo{
		collection: db.Collection("ideas"),
	}
}

func (r *ideaRepo) Create(ctx context.Context, idea *model.Idea) error {
	if idea.CreatedAt.IsZero() {
		idea.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, idea)
	return err
}

func (r *ideaRepo) GetByID(ctx context.Context, id string) (*model.Idea, error) {
	var idea model.Idea
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&idea)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &idea, nil
}

func (r *ideaRepo) ListByUser(ctx context.Context, userID string) ([]*model.Idea, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ideas []*model.Idea
	if err = cursor.All(ctx, &ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}

func (r *ideaRepo) Update(ctx context.Context, idea *model.Idea) error {
	idea.UpdatedAt = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": idea.ID}, bson.M{"$set": idea})
	return err
}
