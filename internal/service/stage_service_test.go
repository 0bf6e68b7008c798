package service

import (
	"context"
	"errors"
	"testing"

	"venturescope/internal/model"
)

type fakeProgressRepo struct {
	completed map[string][]int
	reads     int
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{completed: make(map[string][]int)}
}

func (r *fakeProgressRepo) GetCompletedStages(ctx context.Context, ideaID string) ([]int, error) {
	r.reads++
	return r.completed[ideaID], nil
}

func (r *fakeProgressRepo) AddCompletedStage(ctx context.Context, ideaID string, stageID int) error {
	for _, id := range r.completed[ideaID] {
		if id == stageID {
			return nil
		}
	}
	r.completed[ideaID] = append(r.completed[ideaID], stageID)
	return nil
}

type fakeProgressCache struct {
	data          map[string][]int
	invalidations int
	failSet       bool
}

func newFakeProgressCache() *fakeProgressCache {
	return &fakeProgressCache{data: make(map[string][]int)}
}

func (c *fakeProgressCache) GetCompleted(ctx context.Context, ideaID string) ([]int, bool, error) {
	v, ok := c.data[ideaID]
	return v, ok, nil
}

func (c *fakeProgressCache) SetCompleted(ctx context.Context, ideaID string, completed []int) error {
	if c.failSet {
		return errors.New("cache unavailable")
	}
	c.data[ideaID] = completed
	return nil
}

func (c *fakeProgressCache) Invalidate(ctx context.Context, ideaID string) error {
	c.invalidations++
	delete(c.data, ideaID)
	return nil
}

type recordedEvent struct {
	IdeaID  string
	MsgType string
	Payload interface{}
}

type fakeBroadcaster struct {
	events []recordedEvent
}

func (b *fakeBroadcaster) BroadcastToIdea(ideaID string, msgType string, payload interface{}) {
	b.events = append(b.events, recordedEvent{ideaID, msgType, payload})
}

func newStageEnv() (*StageService, *fakeProgressRepo, *fakeProgressCache, *fakeAssessmentRepo, *fakeBroadcaster) {
	progressRepo := newFakeProgressRepo()
	progressCache := newFakeProgressCache()
	assessmentSvc, assessmentRepo, _ := newAssessmentSvc("http://127.0.0.1:0", "")
	svc := NewStageService(progressRepo, progressCache, assessmentSvc)
	b := &fakeBroadcaster{}
	svc.SetBroadcaster(b)
	return svc, progressRepo, progressCache, assessmentRepo, b
}

func TestViewAllFreshIdea(t *testing.T) {
	svc, _, _, _, _ := newStageEnv()

	overview, err := svc.ViewAll(context.Background(), "idea-1")
	if err != nil {
		t.Fatalf("view all: %v", err)
	}
	if len(overview.Stages) != 7 {
		t.Fatalf("expected 7 stages, got %d", len(overview.Stages))
	}
	if overview.Stages[0].Locked {
		t.Fatal("stage 1 must always be unlocked")
	}
	for _, v := range overview.Stages[1:] {
		if !v.Locked {
			t.Fatalf("stage %d should be locked for a fresh idea", v.ID)
		}
		if v.LockedContent != "" {
			t.Fatalf("stage %d leaks locked content", v.ID)
		}
	}
	if overview.Progress.ProgressPercent != 0 {
		t.Fatalf("fresh idea progress should be 0, got %d", overview.Progress.ProgressPercent)
	}
}

func TestViewStageOneCarriesAssessment(t *testing.T) {
	svc, _, _, assessmentRepo, _ := newStageEnv()
	assessmentRepo.byIdea["idea-1"] = &model.RiskAssessment{IdeaID: "idea-1", OverallScore: 61}

	detail, err := svc.ViewStage(context.Background(), "idea-1", 1)
	if err != nil {
		t.Fatalf("view stage: %v", err)
	}
	if detail.Assessment == nil || detail.Assessment.OverallScore != 61 {
		t.Fatalf("stage 1 full view must carry the assessment, got %+v", detail.Assessment)
	}

	// Locked stages carry neither assessment nor form.
	locked, err := svc.ViewStage(context.Background(), "idea-1", 2)
	if err != nil {
		t.Fatalf("view stage 2: %v", err)
	}
	if !locked.Locked || locked.Assessment != nil || len(locked.Form) != 0 {
		t.Fatalf("locked stage leaks extras: %+v", locked)
	}
}

func TestViewUnlockedStageCarriesForm(t *testing.T) {
	svc, repo, _, _, _ := newStageEnv()
	repo.completed["idea-1"] = []int{1}

	detail, err := svc.ViewStage(context.Background(), "idea-1", 2)
	if err != nil {
		t.Fatalf("view stage: %v", err)
	}
	if detail.Locked {
		t.Fatal("stage 2 should unlock once stage 1 completes")
	}
	if len(detail.Form) == 0 {
		t.Fatal("unlocked stage 2 should expose its follow-up form")
	}
	if detail.LockedContent == "" {
		t.Fatal("unlocked view should include the full content")
	}
}

func TestCompleteStageBroadcastsAndRefreshesCache(t *testing.T) {
	svc, _, cache, _, b := newStageEnv()

	progress, err := svc.CompleteStage(context.Background(), "idea-1", 1)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if progress.ProgressPercent != 14 { // round(100/7)
		t.Fatalf("progress %d, want 14", progress.ProgressPercent)
	}
	if got := cache.data["idea-1"]; len(got) != 1 || got[0] != 1 {
		t.Fatalf("cache not refreshed, got %v", got)
	}

	var sawProgress, sawUnlock bool
	for _, ev := range b.events {
		switch ev.MsgType {
		case "progress_update":
			sawProgress = true
		case "stage_unlocked":
			sawUnlock = true
			if payload, ok := ev.Payload.(map[string]int); !ok || payload["stageId"] != 2 {
				t.Fatalf("unlock event should name stage 2, got %v", ev.Payload)
			}
		}
	}
	if !sawProgress || !sawUnlock {
		t.Fatalf("expected progress_update and stage_unlocked events, got %+v", b.events)
	}
}

func TestCompleteStageInvalidatesCacheWhenRefreshFails(t *testing.T) {
	svc, repo, cache, _, _ := newStageEnv()
	cache.data["idea-1"] = []int{}
	cache.failSet = true

	progress, err := svc.CompleteStage(context.Background(), "idea-1", 1)
	if err != nil {
		t.Fatalf("completion must tolerate a cache outage: %v", err)
	}
	if progress.ProgressPercent != 14 {
		t.Fatalf("progress %d, want 14", progress.ProgressPercent)
	}
	if got := repo.completed["idea-1"]; len(got) != 1 || got[0] != 1 {
		t.Fatalf("completion must still be recorded, got %v", got)
	}
	if cache.invalidations != 1 {
		t.Fatalf("expected the stale entry to be invalidated, invalidations=%d", cache.invalidations)
	}
	if _, hit, _ := cache.GetCompleted(context.Background(), "idea-1"); hit {
		t.Fatal("stale completed set must not survive a failed refresh")
	}
}

func TestCompleteLastStageEmitsNoUnlock(t *testing.T) {
	svc, repo, _, _, b := newStageEnv()
	repo.completed["idea-1"] = []int{1, 2, 3, 4, 5, 6}

	if _, err := svc.CompleteStage(context.Background(), "idea-1", 7); err != nil {
		t.Fatalf("complete: %v", err)
	}
	for _, ev := range b.events {
		if ev.MsgType == "stage_unlocked" {
			t.Fatalf("no stage follows 7, got unlock event %v", ev.Payload)
		}
	}
}

func TestCompleteUnknownStage(t *testing.T) {
	svc, _, _, _, _ := newStageEnv()
	if _, err := svc.CompleteStage(context.Background(), "idea-1", 99); !errors.Is(err, ErrStageNotFound) {
		t.Fatalf("want ErrStageNotFound, got %v", err)
	}
}

func TestLoadCompletedPrefersCache(t *testing.T) {
	svc, repo, cache, _, _ := newStageEnv()
	cache.data["idea-1"] = []int{1, 2}

	overview, err := svc.ViewAll(context.Background(), "idea-1")
	if err != nil {
		t.Fatalf("view all: %v", err)
	}
	if repo.reads != 0 {
		t.Fatalf("cache hit should not touch the repo, reads=%d", repo.reads)
	}
	if overview.Progress.ProgressPercent != 29 { // round(200/7)
		t.Fatalf("progress %d, want 29", overview.Progress.ProgressPercent)
	}
}
