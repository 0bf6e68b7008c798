package model

// Stage is an immutable catalog entry for one of the ordered analysis
// stages. IDs are contiguous starting at 1; stage 1 is never locked.
type Stage struct {
	ID            int    `json:"id" bson:"id"`
	Title         string `json:"title" bson:"title"`
	Icon          string `json:"icon" bson:"icon"`
	Description   string `json:"description" bson:"description"`
	Teaser        string `json:"teaser,omitempty" bson:"teaser,omitempty"`
	LockedContent string `json:"lockedContent,omitempty" bson:"lockedContent,omitempty"`
	EstimatedTime string `json:"estimatedTime,omitempty" bson:"estimatedTime,omitempty"`
	Value         string `json:"value,omitempty" bson:"value,omitempty"` // priced-value label, informational
}

// StageView is the projection of a stage for a given completion state.
// When Locked is true, LockedContent is withheld and only the teaser
// fields are populated.
type StageView struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Icon          string `json:"icon"`
	Description   string `json:"description"`
	Teaser        string `json:"teaser,omitempty"`
	EstimatedTime string `json:"estimatedTime,omitempty"`
	Value         string `json:"value,omitempty"`
	Locked        bool   `json:"locked"`
	Completed     bool   `json:"completed"`
	LockedContent string `json:"lockedContent,omitempty"` // unlocked views only
}

// StageProgress summarizes completion across the whole catalog
type StageProgress struct {
	CompletedStages []int `json:"completedStages"`
	LockedStages    []int `json:"lockedStages"` // not yet completed, distinct from the unlock predicate
	ProgressPercent int   `json:"progressPercent"`
	TotalStages     int   `json:"totalStages"`
}
