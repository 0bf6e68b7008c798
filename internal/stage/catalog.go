// Package stage holds the static analysis-stage catalog and the pure
// progression logic deciding what each user sees.
package stage

import "venturescope/internal/model"

// catalog is the fixed ordered list of analysis stages. IDs are contiguous
// starting at 1 and ordering is significant; stage 1 is always unlocked.
var catalog = []model.Stage{
	{
		ID:          1,
		Title:       "Risk Assessment",
		Icon:        "shield",
		Description: "A structured read on your idea across market timing, competition, viability and execution difficulty.",
	},
	{
		ID:            2,
		Title:         "Market Deep-Dive",
		Icon:          "trending-up",
		Description:   "Market size, growth trajectory and timing windows for your idea.",
		Teaser:        "How big is this market really, and is now the right moment?",
		LockedContent: "TAM/SAM/SOM sizing, growth curve analysis, market-entry timing windows and the three signals that matter most for your category.",
		EstimatedTime: "15 min",
		Value:         "$49 value",
	},
	{
		ID:            3,
		Title:         "Competitive Landscape",
		Icon:          "swords",
		Description:   "Who you are really up against and where the gaps are.",
		Teaser:        "Your three most dangerous competitors are probably not who you think.",
		LockedContent: "Direct and indirect competitor map, positioning gaps, defensibility analysis and a differentiation angle ranked by effort.",
		EstimatedTime: "20 min",
		Value:         "$49 value",
	},
	{
		ID:            4,
		Title:         "Customer & Demand Validation",
		Icon:          "users",
		Description:   "Evidence that someone will actually pay for this.",
		Teaser:        "A concrete plan to get real demand signals before you build.",
		LockedContent: "Target-segment profiles, interview scripts, landing-page test design and the demand thresholds that justify building.",
		EstimatedTime: "25 min",
		Value:         "$79 value",
	},
	{
		ID:            5,
		Title:         "Business Model & Unit Economics",
		Icon:          "calculator",
		Description:   "Whether the numbers can ever work.",
		Teaser:        "The one unit-economics mistake that kills ideas like yours.",
		LockedContent: "Pricing-model options, CAC/LTV scenarios, break-even modelling and margin benchmarks for your category.",
		EstimatedTime: "25 min",
		Value:         "$79 value",
	},
	{
		ID:            6,
		Title:         "Go-to-Market Strategy",
		Icon:          "rocket",
		Description:   "How the first hundred customers actually arrive.",
		Teaser:        "The channels that work for ideas at your stage, ranked.",
		LockedContent: "Channel ranking for your segment, first-100-customers playbook, launch sequencing and early messaging tests.",
		EstimatedTime: "20 min",
		Value:         "$59 value",
	},
	{
		ID:            7,
		Title:         "Execution Roadmap",
		Icon:          "map",
		Description:   "A 90-day plan from here to a validated v1.",
		Teaser:        "Everything above, folded into a week-by-week plan.",
		LockedContent: "90-day milestone plan, build-vs-buy calls, hiring triggers and the kill criteria that tell you when to stop.",
		EstimatedTime: "30 min",
		Value:         "$99 value",
	},
}

// Catalog returns the stages in order. Callers must not mutate the result.
func Catalog() []model.Stage {
	return catalog
}

// Total returns the number of stages in the catalog.
func Total() int {
	return len(catalog)
}

// Lookup returns the stage with the given id, if it exists.
func Lookup(id int) (model.Stage, bool) {
	if id < 1 || id > len(catalog) {
		return model.Stage{}, false
	}
	return catalog[id-1], true
}
