package service

import (
	"context"
	"fmt"
	"time"

	"venturescope/internal/model"
	"venturescope/internal/repository"
	"venturescope/internal/stage"
	"venturescope/internal/validation"
)

// AnswerService validates and stores stage follow-up form submissions
type AnswerService struct {
	answerRepo repository.AnswerRepo
}

// NewAnswerService creates a new answer service
func NewAnswerService(answerRepo repository.AnswerRepo) *AnswerService {
	return &AnswerService{answerRepo: answerRepo}
}

// SubmitOutcome reports a submission's per-field validation results.
// Accepted is false iff FieldErrors is non-empty; the errors map question
// ids to user-facing messages.
type SubmitOutcome struct {
	Accepted    bool              `json:"accepted"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

// Submit validates every field of a stage's follow-up form and stores the
// values only when the whole submission passes. Validation failures are
// values, not errors.
func (s *AnswerService) Submit(ctx context.Context, ideaID string, stageID int, values map[string]model.AnswerValue) (*SubmitOutcome, error) {
	form := stage.Form(stageID)
	if len(form) == 0 {
		return nil, ErrStageNotFound
	}

	fieldErrors := make(map[string]string)
	for _, q := range form {
		out := validation.Validate(q, values[q.ID])
		if !out.Valid {
			fieldErrors[q.ID] = out.Reason
		}
	}
	for id := range values {
		if !formHas(form, id) {
			fieldErrors[id] = "Unknown field"
		}
	}
	if len(fieldErrors) > 0 {
		return &SubmitOutcome{Accepted: false, FieldErrors: fieldErrors}, nil
	}

	now := time.Now()
	for _, q := range form {
		v, present := values[q.ID]
		if !present || v.IsEmpty() {
			continue
		}
		answer := &model.StageAnswer{
			IdeaID:      ideaID,
			StageID:     stageID,
			QuestionID:  q.ID,
			Value:       v,
			SubmittedAt: now,
		}
		if err := s.answerRepo.Upsert(ctx, answer); err != nil {
			return nil, fmt.Errorf("store answer %s/%d/%s: %w", ideaID, stageID, q.ID, err)
		}
	}
	return &SubmitOutcome{Accepted: true}, nil
}

// GetByStage returns the stored answers for one stage of an idea
func (s *AnswerService) GetByStage(ctx context.Context, ideaID string, stageID int) ([]*model.StageAnswer, error) {
	return s.answerRepo.GetByIdeaStage(ctx, ideaID, stageID)
}

func formHas(form []model.Question, id string) bool {
	for _, q := range form {
		if q.ID == id {
			return true
		}
	}
	return false
}
