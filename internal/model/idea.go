package model

import "time"

// IdeaClassification is the admission gate's terminal verdict for raw idea
// text. It is computed fresh per attempt and never persisted.
type IdeaClassification string

const (
	ClassValidIdea   IdeaClassification = "valid_idea"
	ClassVague       IdeaClassification = "vague"
	ClassNonBusiness IdeaClassification = "non_business"
)

// AdmissionResult is the outcome of one admission attempt. Rejections are
// values, not errors; Reason is safe to show to the user.
type AdmissionResult struct {
	Admitted       bool               `json:"admitted"`
	Classification IdeaClassification `json:"classification,omitempty"`
	Reason         string             `json:"reason,omitempty"`
}

type IdeaStatus string

const (
	IdeaStatusAssessing IdeaStatus = "assessing"
	IdeaStatusReady     IdeaStatus = "ready"
)

// Idea is a persistent record of an admitted business idea
type Idea struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	UserID    string     `json:"userId" bson:"userId"`
	Text      string     `json:"text" bson:"text"`
	Status    IdeaStatus `json:"status" bson:"status"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// StageAnswer is one accepted follow-up form submission value
type StageAnswer struct {
	ID          string      `json:"id" bson:"_id,omitempty"`
	IdeaID      string      `json:"ideaId" bson:"ideaId"`
	StageID     int         `json:"stageId" bson:"stageId"`
	QuestionID  string      `json:"questionId" bson:"questionId"`
	Value       AnswerValue `json:"value" bson:"value"`
	SubmittedAt time.Time   `json:"submittedAt" bson:"submittedAt"`
}

// StageProgressRecord is the persisted completed-stage set for one idea.
// CompletedStages only ever grows; entries are never removed.
type StageProgressRecord struct {
	IdeaID          string    `json:"ideaId" bson:"ideaId"`
	CompletedStages []int     `json:"completedStages" bson:"completedStages"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}
