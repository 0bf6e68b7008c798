package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"venturescope/internal/model"
)

// User-facing rejection messages
const (
	reasonTooShort    = "Please describe your idea in a bit more detail."
	reasonVague       = "That's a start, but it's too vague to assess. Add what you'd build, for whom, and how it would make money."
	reasonNonBusiness = "That doesn't look like a business idea. Describe a product or service you'd offer."
)

// AdmissionService is the two-phase gate deciding whether raw idea text may
// enter assessment. Phase 1 is local and free; phase 2 makes exactly one
// classifier call. Classifier failures admit the idea: downstream analysis
// will read the text again anyway, so blocking a user on an infrastructure
// error is the worse trade.
type AdmissionService struct {
	gemini *GeminiClient
	model  string
}

// NewAdmissionService creates a new admission service
func NewAdmissionService(gemini *GeminiClient, classifierModel string) *AdmissionService {
	return &AdmissionService{
		gemini: gemini,
		model:  classifierModel,
	}
}

// Admit runs the two-phase admission pipeline. The result is always a
// value; rejection is not an error.
func (s *AdmissionService) Admit(ctx context.Context, ideaText string) *model.AdmissionResult {
	// Phase 1: local word count, no network cost for the common
	// empty/one-word case.
	if countTokens(ideaText) < 2 {
		return &model.AdmissionResult{
			Admitted: false,
			Reason:   reasonTooShort,
		}
	}

	// Without a configured classifier the gate cannot reject; same
	// availability trade as a failing call.
	if !s.gemini.Enabled() {
		return &model.AdmissionResult{Admitted: true, Classification: model.ClassValidIdea}
	}

	// Phase 2: single classifier call, no retries.
	label, err := s.classify(ctx, strings.TrimSpace(ideaText))
	if err != nil {
		// Fail open: admission errors are a UX problem, not a
		// correctness problem.
		log.Printf("admission: classifier unavailable, admitting: %v", err)
		return &model.AdmissionResult{Admitted: true, Classification: model.ClassValidIdea}
	}

	switch label {
	case model.ClassVague:
		return &model.AdmissionResult{
			Admitted:       false,
			Classification: model.ClassVague,
			Reason:         reasonVague,
		}
	case model.ClassNonBusiness:
		return &model.AdmissionResult{
			Admitted:       false,
			Classification: model.ClassNonBusiness,
			Reason:         reasonNonBusiness,
		}
	case model.ClassValidIdea:
		return &model.AdmissionResult{Admitted: true, Classification: model.ClassValidIdea}
	default:
		// Unrecognized label: fail open, a malformed classifier response
		// must never block a legitimate user.
		log.Printf("admission: unrecognized classifier label %q, admitting", label)
		return &model.AdmissionResult{Admitted: true, Classification: model.ClassValidIdea}
	}
}

// classify asks for exactly one of the three verdict labels. Deterministic
// sampling and a tight token ceiling, since only a single label comes back.
func (s *AdmissionService) classify(ctx context.Context, ideaText string) (model.IdeaClassification, error) {
	prompt := fmt.Sprintf(`You are gating submissions to a business idea analyzer.
Classify the following text. Respond with EXACTLY ONE of these labels and nothing else:
valid_idea - a concrete product or service idea, even a rough one
vague - could be a business idea but lacks any concrete substance
non_business - not a business idea at all (a question, greeting, story, etc.)

Text: %q`, ideaText)

	out, err := s.gemini.Generate(ctx, s.model, prompt, genOptions{
		Temperature:     floatPtr(0),
		MaxOutputTokens: 8,
	})
	if err != nil {
		return "", err
	}
	return model.IdeaClassification(strings.ToLower(strings.TrimSpace(out))), nil
}

// countTokens counts whitespace-separated tokens, dropping empties
func countTokens(s string) int {
	return len(strings.Fields(s))
}
