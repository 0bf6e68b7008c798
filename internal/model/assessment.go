package model

import "time"

// Verdict is the overall recommendation for an assessed idea
type Verdict string

const (
	VerdictProceed   Verdict = "proceed"
	VerdictPivot     Verdict = "pivot"
	VerdictNeedsWork Verdict = "needs_work"
)

// Risk severity levels as emitted by the generator
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Assessment category keys. The generator is instructed to score exactly
// these four.
const (
	CategoryMarketTiming        = "market_timing"
	CategoryCompetitionLevel    = "competition_level"
	CategoryBusinessViability   = "business_viability"
	CategoryExecutionDifficulty = "execution_difficulty"
)

// CategoryScore is one risk category's numeric score with an optional
// prior/demo comparison and the delta against it
type CategoryScore struct {
	Score  float64  `json:"score" bson:"score"`
	Prior  *float64 `json:"prior,omitempty" bson:"prior,omitempty"`
	Change float64  `json:"change" bson:"change"`
}

// TopRisk is one entry of the ordered top-risks list
type TopRisk struct {
	Title       string   `json:"title" bson:"title"`
	Severity    string   `json:"severity" bson:"severity"`
	Category    string   `json:"category" bson:"category"`
	Rationale   string   `json:"rationale" bson:"rationale"`
	Mitigations []string `json:"mitigations" bson:"mitigations"` // ordered steps
	Timeline    string   `json:"timeline" bson:"timeline"`
}

// Recommendation is the generator's closing recommendation block
type Recommendation struct {
	Verdict    Verdict  `json:"verdict" bson:"verdict"`
	Confidence float64  `json:"confidence" bson:"confidence"`
	Summary    string   `json:"summary" bson:"summary"`
	Conditions []string `json:"conditions" bson:"conditions"`
	NextSteps  []string `json:"nextSteps" bson:"nextSteps"`
}

// RiskAssessment is the structured payload produced by the assessment
// generator for stage 1. The progression engine consumes it read-only.
type RiskAssessment struct {
	ID             string                   `json:"id" bson:"_id,omitempty"`
	IdeaID         string                   `json:"ideaId" bson:"ideaId"`
	Categories     map[string]CategoryScore `json:"categories" bson:"categories"`
	OverallScore   float64                  `json:"overallScore" bson:"overallScore"`
	Verdict        Verdict                  `json:"verdict" bson:"verdict"`
	Confidence     float64                  `json:"confidence" bson:"confidence"`
	TopRisks       []TopRisk                `json:"topRisks" bson:"topRisks"`
	Recommendation Recommendation           `json:"recommendation" bson:"recommendation"`
	Generated      bool                     `json:"generated" bson:"generated"` // false when the mock fallback produced it
	CreatedAt      time.Time                `json:"createdAt" bson:"createdAt"`
}
