package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"venturescope/internal/model"
)

type fakeAnswerRepo struct {
	stored map[string]*model.StageAnswer // ideaId/stageId/questionId
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{stored: make(map[string]*model.StageAnswer)}
}

func (r *fakeAnswerRepo) Upsert(ctx context.Context, a *model.StageAnswer) error {
	r.stored[fmt.Sprintf("%s/%d/%s", a.IdeaID, a.StageID, a.QuestionID)] = a
	return nil
}

func (r *fakeAnswerRepo) GetByIdeaStage(ctx context.Context, ideaID string, stageID int) ([]*model.StageAnswer, error) {
	var out []*model.StageAnswer
	for _, a := range r.stored {
		if a.IdeaID == ideaID && a.StageID == stageID {
			out = append(out, a)
		}
	}
	return out, nil
}

func TestSubmitRejectsInvalidFieldsAndStoresNothing(t *testing.T) {
	repo := newFakeAnswerRepo()
	svc := NewAnswerService(repo)

	// Stage 2's form requires target_market (min 20 chars) and market_region.
	outcome, err := svc.Submit(context.Background(), "idea-1", 2, map[string]model.AnswerValue{
		"target_market": {Text: "too short"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Accepted {
		t.Fatal("invalid submission must not be accepted")
	}
	if outcome.FieldErrors["target_market"] == "" {
		t.Fatal("expected a message for target_market")
	}
	if outcome.FieldErrors["market_region"] == "" {
		t.Fatal("expected a required-field message for market_region")
	}
	if len(repo.stored) != 0 {
		t.Fatalf("partial submissions must not be stored, got %d", len(repo.stored))
	}
}

func TestSubmitAcceptsAndStoresValidForm(t *testing.T) {
	repo := newFakeAnswerRepo()
	svc := NewAnswerService(repo)

	price := 29.0
	outcome, err := svc.Submit(context.Background(), "idea-1", 2, map[string]model.AnswerValue{
		"target_market":  {Text: "urban renters with balconies and no gardening experience"},
		"market_region":  {Text: "Europe"},
		"expected_price": {Number: &price},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !outcome.Accepted || len(outcome.FieldErrors) != 0 {
		t.Fatalf("expected acceptance, got %+v", outcome)
	}

	answers, _ := svc.GetByStage(context.Background(), "idea-1", 2)
	if len(answers) != 3 {
		t.Fatalf("expected 3 stored answers, got %d", len(answers))
	}
}

func TestSubmitOptionalFieldsMayBeOmitted(t *testing.T) {
	repo := newFakeAnswerRepo()
	svc := NewAnswerService(repo)

	outcome, err := svc.Submit(context.Background(), "idea-1", 2, map[string]model.AnswerValue{
		"target_market": {Text: "urban renters with balconies and no gardening experience"},
		"market_region": {Text: "Europe"},
		// expected_price omitted, it is optional
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !outcome.Accepted {
		t.Fatalf("optional field omission should pass, got %+v", outcome.FieldErrors)
	}
	if len(repo.stored) != 2 {
		t.Fatalf("only provided values should be stored, got %d", len(repo.stored))
	}
}

func TestSubmitFlagsUnknownFields(t *testing.T) {
	svc := NewAnswerService(newFakeAnswerRepo())

	outcome, err := svc.Submit(context.Background(), "idea-1", 2, map[string]model.AnswerValue{
		"target_market": {Text: "urban renters with balconies and no gardening experience"},
		"market_region": {Text: "Europe"},
		"bogus":         {Text: "x"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Accepted || outcome.FieldErrors["bogus"] == "" {
		t.Fatalf("unknown field must be flagged, got %+v", outcome)
	}
}

func TestSubmitToStageWithoutForm(t *testing.T) {
	svc := NewAnswerService(newFakeAnswerRepo())

	_, err := svc.Submit(context.Background(), "idea-1", 1, nil)
	if !errors.Is(err, ErrStageNotFound) {
		t.Fatalf("stage 1 has no form, want ErrStageNotFound, got %v", err)
	}
}
