package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"venturescope/internal/model"
)

// AnswerRepo handles MongoDB operations for stage form answers
type AnswerRepo interface {
	Upsert(ctx context.Context, answer *model.StageAnswer) error
	GetByIdeaStage(ctx context.Context, ideaID string, stageID int) ([]*model.StageAnswer, error)
}

type answerRepo struct {
	collection *mongo.Collection
}

// NewAnswerRepo creates a new answer repository
func NewAnswerRepo(db *mongo.Database) AnswerRepo {
	return &answerRepo{
		collection: db.Collection("stage_answers"),
	}
}

// Upsert keeps the latest accepted value per (idea, stage, question)
func (r *answerRepo) Upsert(ctx context.Context, answer *model.StageAnswer) error {
	if answer.ID == "" {
		answer.ID = primitive.NewObjectID().Hex()
	}
	filter := bson.M{
		"ideaId":     answer.IdeaID,
		"stageId":    answer.StageID,
		"questionId": answer.QuestionID,
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, filter, answer, opts)
	return err
}

func (r *answerRepo) GetByIdeaStage(ctx context.Context, ideaID string, stageID int) ([]*model.StageAnswer, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"ideaId": ideaID, "stageId": stageID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var answers []*model.StageAnswer
	if err = cursor.All(ctx, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}
