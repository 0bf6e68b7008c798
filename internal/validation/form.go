package validation

import (
	"fmt"
	"regexp"

	"venturescope/internal/model"
)

// CheckForm validates a form definition. A kind/rules mismatch is a
// programmer error and must be caught at startup, never reported to users
// at request time.
func CheckForm(questions []model.Question) error {
	seen := make(map[string]bool, len(questions))
	for _, q := range questions {
		if q.ID == "" {
			return fmt.Errorf("question with empty id")
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true

		if err := checkRules(q); err != nil {
			return fmt.Errorf("question %q: %w", q.ID, err)
		}
	}
	return nil
}

func checkRules(q model.Question) error {
	r := q.Rules
	if r == nil {
		return nil
	}
	if (r.Min != nil || r.Max != nil) && q.Kind != model.KindNumber {
		return fmt.Errorf("min/max rules require kind %q, got %q", model.KindNumber, q.Kind)
	}
	if (r.MinLength != nil || r.MaxLength != nil || r.Pattern != "") && !q.Kind.IsTextLike() {
		return fmt.Errorf("length/pattern rules require a text kind, got %q", q.Kind)
	}
	if r.Pattern != "" {
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
	}
	return nil
}
