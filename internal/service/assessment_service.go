package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"venturescope/internal/cache"
	"venturescope/internal/model"
	"venturescope/internal/repository"
)

// AssessmentService produces and serves the stage-1 risk assessment
type AssessmentService struct {
	gemini          *GeminiClient
	model           string
	assessmentRepo  repository.AssessmentRepo
	assessmentCache cache.AssessmentCache
	broadcaster     Broadcaster
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	gemini *GeminiClient,
	assessmentModel string,
	assessmentRepo repository.AssessmentRepo,
	assessmentCache cache.AssessmentCache,
) *AssessmentService {
	return &AssessmentService{
		gemini:          gemini,
		model:           assessmentModel,
		assessmentRepo:  assessmentRepo,
		assessmentCache: assessmentCache,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *AssessmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Generate produces the risk assessment for an admitted idea and persists
// it. Generation never fails: on any call or parse error the deterministic
// mock assessment is stored instead, flagged via Generated=false.
func (s *AssessmentService) Generate(ctx context.Context, idea *model.Idea) (*model.RiskAssessment, error) {
	assessment := s.generate(ctx, idea)

	if err := s.assessmentRepo.Save(ctx, assessment); err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}
	if err := s.assessmentCache.Set(ctx, assessment); err != nil {
		// A stale cached copy must not outlive the regeneration.
		log.Printf("assessment: cache set failed for idea %s: %v", idea.ID, err)
		if err := s.assessmentCache.Delete(ctx, idea.ID); err != nil {
			log.Printf("assessment: cache delete failed for idea %s: %v", idea.ID, err)
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToIdea(idea.ID, "assessment_ready", map[string]string{"ideaId": idea.ID})
	}
	return assessment, nil
}

func (s *AssessmentService) generate(ctx context.Context, idea *model.Idea) *model.RiskAssessment {
	if !s.gemini.Enabled() {
		return s.mockAssessment(idea)
	}

	prompt := s.buildAssessmentPrompt(idea.Text)
	response, err := s.gemini.Generate(ctx, s.model, prompt, genOptions{JSONResponse: true})
	if err != nil {
		log.Printf("assessment: generation failed for idea %s, using fallback: %v", idea.ID, err)
		return s.mockAssessment(idea)
	}

	var assessment model.RiskAssessment
	if err := json.Unmarshal([]byte(response), &assessment); err != nil {
		log.Printf("assessment: unparseable generator output for idea %s, using fallback: %v", idea.ID, err)
		return s.mockAssessment(idea)
	}
	if len(assessment.Categories) == 0 {
		return s.mockAssessment(idea)
	}

	assessment.IdeaID = idea.ID
	assessment.Generated = true
	assessment.CreatedAt = time.Now()
	return &assessment
}

// Get returns the stored assessment, cache first
func (s *AssessmentService) Get(ctx context.Context, ideaID string) (*model.RiskAssessment, error) {
	if cached, err := s.assessmentCache.Get(ctx, ideaID); err == nil && cached != nil {
		return cached, nil
	}
	assessment, err := s.assessmentRepo.GetByIdeaID(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if assessment != nil {
		if err := s.assessmentCache.Set(ctx, assessment); err != nil {
			log.Printf("assessment: cache backfill failed for idea %s: %v", ideaID, err)
		}
	}
	return assessment, nil
}

func (s *AssessmentService) buildAssessmentPrompt(ideaText string) string {
	return fmt.Sprintf(`You are a startup analyst producing a risk assessment. Return ONLY valid JSON matching this schema:
{
  "categories": {
    "market_timing":        {"score": 0-100, "change": 0},
    "competition_level":    {"score": 0-100, "change": 0},
    "business_viability":   {"score": 0-100, "change": 0},
    "execution_difficulty": {"score": 0-100, "change": 0}
  },
  "overallScore": 0-100,
  "verdict": "proceed" or "pivot" or "needs_work",
  "confidence": 0.0-1.0,
  "topRisks": [{
    "title": "...",
    "severity": "low"|"medium"|"high"|"critical",
    "category": "one of the four category keys",
    "rationale": "...",
    "mitigations": ["step 1", "step 2"],
    "timeline": "e.g. first 30 days"
  }],
  "recommendation": {
    "verdict": "proceed"|"pivot"|"needs_work",
    "confidence": 0.0-1.0,
    "summary": "...",
    "conditions": ["..."],
    "nextSteps": ["..."]
  }
}

Score all four categories, list the top 3 risks ordered by severity, and close with a recommendation.

Business idea: %s`, ideaText)
}

// mockAssessment builds a deterministic middle-of-the-road assessment so the
// product keeps working without the generator. Scores are derived from the
// idea text so repeated calls agree.
func (s *AssessmentService) mockAssessment(idea *model.Idea) *model.RiskAssessment {
	base := 50.0 + float64(len(idea.Text)%20)
	return &model.RiskAssessment{
		IdeaID: idea.ID,
		Categories: map[string]model.CategoryScore{
			model.CategoryMarketTiming:        {Score: base},
			model.CategoryCompetitionLevel:    {Score: base - 5},
			model.CategoryBusinessViability:   {Score: base + 5},
			model.CategoryExecutionDifficulty: {Score: base},
		},
		OverallScore: base,
		Verdict:      model.VerdictNeedsWork,
		Confidence:   0.3,
		TopRisks: []model.TopRisk{
			{
				Title:       "Unvalidated demand",
				Severity:    model.SeverityHigh,
				Category:    model.CategoryBusinessViability,
				Rationale:   "No evidence yet that customers will pay for " + firstWords(idea.Text, 8) + ".",
				Mitigations: []string{"Talk to 10 potential customers", "Run a landing-page test"},
				Timeline:    "first 30 days",
			},
		},
		Recommendation: model.Recommendation{
			Verdict:    model.VerdictNeedsWork,
			Confidence: 0.3,
			Summary:    "Automated analysis was unavailable; this is a provisional baseline read.",
			Conditions: []string{"Re-run the assessment once analysis is available"},
			NextSteps:  []string{"Complete the market deep-dive stage", "Gather demand evidence"},
		},
		Generated: false,
		CreatedAt: time.Now(),
	}
}

func firstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}
