package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"venturescope/internal/model"
	"venturescope/internal/repository"
)

var (
	ErrIdeaNotFound = errors.New("idea not found")
	ErrForbidden    = errors.New("idea belongs to another user")
)

// IdeaService orchestrates admission, idea creation and assessment
// generation
type IdeaService struct {
	ideaRepo      repository.IdeaRepo
	admission     *AdmissionService
	assessmentSvc *AssessmentService
}

// NewIdeaService creates a new idea service
func NewIdeaService(
	ideaRepo repository.IdeaRepo,
	admission *AdmissionService,
	assessmentSvc *AssessmentService,
) *IdeaService {
	return &IdeaService{
		ideaRepo:      ideaRepo,
		admission:     admission,
		assessmentSvc: assessmentSvc,
	}
}

// SubmitResult is the outcome of one idea submission
type SubmitResult struct {
	Admission  *model.AdmissionResult `json:"admission"`
	Idea       *model.Idea            `json:"idea,omitempty"`
	Assessment *model.RiskAssessment  `json:"assessment,omitempty"`
}

// Submit gates raw idea text and, when admitted, creates the idea record
// and generates its stage-1 assessment. A rejected submission is not an
// error; the rejection reason rides in the result.
func (s *IdeaService) Submit(ctx context.Context, userID, text string) (*SubmitResult, error) {
	admission := s.admission.Admit(ctx, text)
	if !admission.Admitted {
		return &SubmitResult{Admission: admission}, nil
	}

	now := time.Now()
	idea := &model.Idea{
		ID:        uuid.New().String(),
		UserID:    userID,
		Text:      text,
		Status:    model.IdeaStatusAssessing,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.ideaRepo.Create(ctx, idea); err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}

	assessment, err := s.assessmentSvc.Generate(ctx, idea)
	if err != nil {
		return nil, err
	}

	idea.Status = model.IdeaStatusReady
	idea.UpdatedAt = time.Now()
	if err := s.ideaRepo.Update(ctx, idea); err != nil {
		return nil, fmt.Errorf("update idea: %w", err)
	}

	return &SubmitResult{
		Admission:  admission,
		Idea:       idea,
		Assessment: assessment,
	}, nil
}

// Get returns an idea owned by the given user
func (s *IdeaService) Get(ctx context.Context, userID, ideaID string) (*model.Idea, error) {
	idea, err := s.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if idea == nil {
		return nil, ErrIdeaNotFound
	}
	if idea.UserID != userID {
		return nil, ErrForbidden
	}
	return idea, nil
}

// ListByUser returns all of a user's ideas, newest first
func (s *IdeaService) ListByUser(ctx context.Context, userID string) ([]*model.Idea, error) {
	return s.ideaRepo.ListByUser(ctx, userID)
}
