package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"venturescope/internal/cache"
	"venturescope/internal/model"
	"venturescope/internal/repository"
	"venturescope/internal/stage"
)

var ErrStageNotFound = errors.New("stage not found")

// StageService is the read/write surface around the pure progression logic:
// it loads the completed-stage set (cache first, mongo fallback), projects
// stage views, and records completions on behalf of the surrounding
// application. Completion is the only write and it is monotonic.
type StageService struct {
	progressRepo  repository.ProgressRepo
	progressCache cache.ProgressCache
	assessmentSvc *AssessmentService
	broadcaster   Broadcaster
}

// NewStageService creates a new stage service
func NewStageService(
	progressRepo repository.ProgressRepo,
	progressCache cache.ProgressCache,
	assessmentSvc *AssessmentService,
) *StageService {
	return &StageService{
		progressRepo:  progressRepo,
		progressCache: progressCache,
		assessmentSvc: assessmentSvc,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *StageService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// StageDetail is one stage view plus the extras an unlocked stage carries
type StageDetail struct {
	model.StageView
	Assessment *model.RiskAssessment `json:"assessment,omitempty"` // stage 1, unlocked only
	Form       []model.Question      `json:"form,omitempty"`       // unlocked stages only
}

// Overview is the full staged-disclosure state for one idea
type Overview struct {
	Stages   []model.StageView   `json:"stages"`
	Progress model.StageProgress `json:"progress"`
}

// ViewAll projects every stage plus the progress summary
func (s *StageService) ViewAll(ctx context.Context, ideaID string) (*Overview, error) {
	completed, err := s.loadCompleted(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	return &Overview{
		Stages:   stage.Views(stage.NewCompletedSet(completed)),
		Progress: stage.Progress(completed),
	}, nil
}

// ViewStage projects a single stage. Unlocked views carry the follow-up
// form, and stage 1 additionally carries the stored risk assessment.
func (s *StageService) ViewStage(ctx context.Context, ideaID string, stageID int) (*StageDetail, error) {
	completed, err := s.loadCompleted(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	view, ok := stage.View(stageID, stage.NewCompletedSet(completed))
	if !ok {
		return nil, ErrStageNotFound
	}

	detail := &StageDetail{StageView: view}
	if !view.Locked {
		detail.Form = stage.Form(stageID)
		if stageID == 1 {
			assessment, err := s.assessmentSvc.Get(ctx, ideaID)
			if err != nil {
				return nil, err
			}
			detail.Assessment = assessment
		}
	}
	return detail, nil
}

// CompleteStage records a stage completion for an idea. The set only ever
// grows; recording the same stage twice is a no-op.
func (s *StageService) CompleteStage(ctx context.Context, ideaID string, stageID int) (*model.StageProgress, error) {
	if _, ok := stage.Lookup(stageID); !ok {
		return nil, ErrStageNotFound
	}

	if err := s.progressRepo.AddCompletedStage(ctx, ideaID, stageID); err != nil {
		return nil, fmt.Errorf("record completion: %w", err)
	}

	completed, err := s.progressRepo.GetCompletedStages(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if err := s.progressCache.SetCompleted(ctx, ideaID, completed); err != nil {
		// Drop the entry rather than serve a pre-completion set.
		log.Printf("stage: progress cache refresh failed for idea %s: %v", ideaID, err)
		if err := s.progressCache.Invalidate(ctx, ideaID); err != nil {
			log.Printf("stage: progress cache invalidate failed for idea %s: %v", ideaID, err)
		}
	}

	progress := stage.Progress(completed)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToIdea(ideaID, "progress_update", progress)
		if next := stageID + 1; stage.Unlocked(next, stage.NewCompletedSet(completed)) {
			if _, ok := stage.Lookup(next); ok {
				s.broadcaster.BroadcastToIdea(ideaID, "stage_unlocked", map[string]int{"stageId": next})
			}
		}
	}
	return &progress, nil
}

func (s *StageService) loadCompleted(ctx context.Context, ideaID string) ([]int, error) {
	if cached, hit, err := s.progressCache.GetCompleted(ctx, ideaID); err == nil && hit {
		return cached, nil
	}
	completed, err := s.progressRepo.GetCompletedStages(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("load completed stages: %w", err)
	}
	if err := s.progressCache.SetCompleted(ctx, ideaID, completed); err != nil {
		log.Printf("stage: progress cache backfill failed for idea %s: %v", ideaID, err)
	}
	return completed, nil
}
