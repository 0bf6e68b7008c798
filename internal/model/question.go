package model

// QuestionKind defines the input type of a follow-up question
type QuestionKind string

const (
	KindText         QuestionKind = "text"
	KindTextarea     QuestionKind = "textarea"
	KindNumber       QuestionKind = "number"
	KindSingleChoice QuestionKind = "single-choice"
	KindMultiChoice  QuestionKind = "multi-choice"
	KindSelect       QuestionKind = "select"
)

// IsTextLike reports whether string-length/pattern rules apply to this kind
func (k QuestionKind) IsTextLike() bool {
	return k == KindText || k == KindTextarea
}

// Rules is the optional constraint set attached to a question.
// MinLength/MaxLength/Pattern are only meaningful on text-like kinds,
// Min/Max only on number; the pairing is enforced at configuration time.
type Rules struct {
	MinLength *int     `json:"minLength,omitempty" bson:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" bson:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty" bson:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" bson:"max,omitempty"`
	Pattern   string   `json:"pattern,omitempty" bson:"pattern,omitempty"`
}

// Question declares one structured input field of a stage follow-up form
type Question struct {
	ID       string       `json:"id" bson:"id"` // unique within a form
	Kind     QuestionKind `json:"kind" bson:"kind"`
	Label    string       `json:"label" bson:"label"`
	Required bool         `json:"required" bson:"required"`
	Options  []string     `json:"options,omitempty" bson:"options,omitempty"` // choice kinds only
	Rules    *Rules       `json:"rules,omitempty" bson:"rules,omitempty"`
}

// AnswerValue carries a submitted value for one field. Exactly one of the
// members is expected to be set; a fully zero value means "absent".
type AnswerValue struct {
	Text     string   `json:"text,omitempty" bson:"text,omitempty"`
	Number   *float64 `json:"number,omitempty" bson:"number,omitempty"`
	Selected []string `json:"selected,omitempty" bson:"selected,omitempty"` // multi-choice
}

// IsEmpty reports whether no value was provided at all
func (v AnswerValue) IsEmpty() bool {
	return v.Text == "" && v.Number == nil && len(v.Selected) == 0
}
