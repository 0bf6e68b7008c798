package stage

import (
	"venturescope/internal/model"
	"venturescope/internal/validation"
)

// forms are the per-stage follow-up question forms. Definitions are static
// and immutable; CheckForms guards the kind/rules pairing at startup.
var forms = map[int][]model.Question{
	2: {
		{
			ID: "target_market", Kind: model.KindTextarea, Label: "Who exactly is your target customer?",
			Required: true, Rules: &model.Rules{MinLength: intp(20), MaxLength: intp(1000)},
		},
		{
			ID: "market_region", Kind: model.KindSelect, Label: "Primary launch region",
			Required: true, Options: []string{"North America", "Europe", "Asia-Pacific", "Latin America", "Middle East & Africa", "Global"},
		},
		{
			ID: "expected_price", Kind: model.KindNumber, Label: "Expected monthly price per customer (USD)",
			Rules: &model.Rules{Min: floatp(0), Max: floatp(100000)},
		},
	},
	3: {
		{
			ID: "known_competitors", Kind: model.KindTextarea, Label: "Which competitors are you aware of?",
			Required: true, Rules: &model.Rules{MinLength: intp(10), MaxLength: intp(2000)},
		},
		{
			ID: "differentiators", Kind: model.KindMultiChoice, Label: "Where do you expect to differentiate?",
			Required: true, Options: []string{"price", "quality", "speed", "distribution", "brand", "technology"},
		},
	},
	4: {
		{
			ID: "evidence", Kind: model.KindTextarea, Label: "What demand evidence do you already have?",
			Rules: &model.Rules{MaxLength: intp(2000)},
		},
		{
			ID: "interviews_done", Kind: model.KindNumber, Label: "Customer conversations held so far",
			Required: true, Rules: &model.Rules{Min: floatp(0), Max: floatp(10000)},
		},
		{
			ID: "landing_page", Kind: model.KindText, Label: "Landing page URL, if any",
			Rules: &model.Rules{Pattern: `^https?://\S+$`, MaxLength: intp(300)},
		},
	},
	5: {
		{
			ID: "revenue_model", Kind: model.KindSingleChoice, Label: "Primary revenue model",
			Required: true, Options: []string{"subscription", "transaction fee", "one-time purchase", "advertising", "licensing", "other"},
		},
		{
			ID: "monthly_budget", Kind: model.KindNumber, Label: "Monthly budget available (USD)",
			Required: true, Rules: &model.Rules{Min: floatp(0)},
		},
	},
	6: {
		{
			ID: "channels", Kind: model.KindMultiChoice, Label: "Channels you plan to try first",
			Required: true, Options: []string{"content/SEO", "paid ads", "outbound sales", "partnerships", "communities", "app stores"},
		},
		{
			ID: "launch_note", Kind: model.KindTextarea, Label: "Anything unusual about your launch plan?",
			Rules: &model.Rules{MaxLength: intp(1000)},
		},
	},
	7: {
		{
			ID: "time_per_week", Kind: model.KindNumber, Label: "Hours per week you can commit",
			Required: true, Rules: &model.Rules{Min: floatp(1), Max: floatp(100)},
		},
		{
			ID: "team_size", Kind: model.KindNumber, Label: "People on the founding team",
			Required: true, Rules: &model.Rules{Min: floatp(1), Max: floatp(50)},
		},
	},
}

// Form returns the follow-up form for a stage. Stages without follow-up
// questions (stage 1) return an empty form.
func Form(stageID int) []model.Question {
	return forms[stageID]
}

// CheckForms validates every static form definition. Called once from main;
// a failure here is a programmer error and aborts startup.
func CheckForms() error {
	for _, qs := range forms {
		if err := validation.CheckForm(qs); err != nil {
			return err
		}
	}
	return nil
}

func intp(i int) *int { return &i }

func floatp(f float64) *float64 { return &f }
