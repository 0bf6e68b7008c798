// Package validation implements the per-field answer validation used by the
// stage follow-up forms. Validate is a pure function; form definitions are
// checked once at startup by CheckForm.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"venturescope/internal/model"
)

// Outcome is the result of validating one field. Invalid outcomes carry a
// user-facing reason; validation never returns an error or panics.
type Outcome struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func valid() Outcome {
	return Outcome{Valid: true}
}

func invalid(reason string) Outcome {
	return Outcome{Valid: false, Reason: reason}
}

// Validate checks a single answer value against its question's rules and
// returns the first violation in rule order. Rule order is a contract: a
// string that is both too short and pattern-breaking reports the length
// message.
func Validate(q model.Question, v model.AnswerValue) Outcome {
	if empty := isEmptyFor(q.Kind, v); empty {
		if q.Required {
			return invalid("This field is required")
		}
		return valid()
	}

	switch {
	case q.Kind.IsTextLike():
		return validateText(q, coerceString(v))
	case q.Kind == model.KindNumber:
		return validateNumber(q, v)
	}

	// Choice kinds carry no rules beyond required.
	return valid()
}

func isEmptyFor(kind model.QuestionKind, v model.AnswerValue) bool {
	if kind == model.KindMultiChoice {
		return len(v.Selected) == 0
	}
	if kind == model.KindNumber && v.Number != nil {
		return false
	}
	if kind == model.KindSingleChoice || kind == model.KindSelect {
		return v.Text == "" && len(v.Selected) == 0
	}
	return strings.TrimSpace(v.Text) == "" && v.Number == nil && len(v.Selected) == 0
}

func coerceString(v model.AnswerValue) string {
	if v.Text != "" {
		return v.Text
	}
	if v.Number != nil {
		return strconv.FormatFloat(*v.Number, 'f', -1, 64)
	}
	return strings.Join(v.Selected, ", ")
}

func validateText(q model.Question, s string) Outcome {
	r := q.Rules
	if r == nil {
		return valid()
	}
	length := len([]rune(s))
	if r.MinLength != nil && length < *r.MinLength {
		missing := *r.MinLength - length
		return invalid(fmt.Sprintf("Please add at least %d more characters", missing))
	}
	if r.MaxLength != nil && length > *r.MaxLength {
		return invalid(fmt.Sprintf("Must be %d characters or fewer", *r.MaxLength))
	}
	if r.Pattern != "" {
		re, err := regexp.Compile(r.Pattern)
		// An uncompilable pattern is a configuration error caught by
		// CheckForm; at request time we skip it rather than fail the user.
		if err == nil && !re.MatchString(s) {
			return invalid("Invalid format")
		}
	}
	return valid()
}

func validateNumber(q model.Question, v model.AnswerValue) Outcome {
	var n float64
	if v.Number != nil {
		n = *v.Number
	} else {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			return invalid("Please enter a valid number")
		}
		n = parsed
	}
	r := q.Rules
	if r == nil {
		return valid()
	}
	if r.Min != nil && n < *r.Min {
		return invalid(fmt.Sprintf("Must be at least %s", formatBound(*r.Min)))
	}
	if r.Max != nil && n > *r.Max {
		return invalid(fmt.Sprintf("Must be at most %s", formatBound(*r.Max)))
	}
	return valid()
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
