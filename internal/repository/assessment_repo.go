package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"venturescope/internal/model"
)

// AssessmentRepo handles MongoDB operations for risk assessments
type AssessmentRepo interface {
	Save(ctx context.Context, assessment *model.RiskAssessment) error
	GetByIdeaID(ctx context.Context, ideaID string) (*model.RiskAssessment, error)
}

type assessmentRepo struct {
	collection *mongo.Collection
}

// NewAssessmentRepo creates a new assessment repository
func NewAssessmentRepo(db *mongo.Database) AssessmentRepo {
	return &assessmentRepo{
		collection: db.Collection("assessments"),
	}
}

// Save upserts by idea id: regenerating an assessment replaces the old one
func (r *assessmentRepo) Save(ctx context.Context, assessment *model.RiskAssessment) error {
	if assessment.ID == "" {
		assessment.ID = primitive.NewObjectID().Hex()
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"ideaId": assessment.IdeaID}, assessment, opts)
	return err
}

func (r *assessmentRepo) GetByIdeaID(ctx context.Context, ideaID string) (*model.RiskAssessment, error) {
	var assessment model.RiskAssessment
	err := r.collection.FindOne(ctx, bson.M{"ideaId": ideaID}).Decode(&assessment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}
