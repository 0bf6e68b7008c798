package validation

import (
	"strings"
	"testing"

	"venturescope/internal/model"
)

func intPtr(i int) *int { return &i }

func numPtr(f float64) *float64 { return &f }

func text(s string) model.AnswerValue {
	return model.AnswerValue{Text: s}
}

func TestRequiredFields(t *testing.T) {
	cases := []struct {
		name  string
		q     model.Question
		value model.AnswerValue
		valid bool
	}{
		{"required text absent", model.Question{ID: "a", Kind: model.KindText, Required: true}, model.AnswerValue{}, false},
		{"required text empty string", model.Question{ID: "a", Kind: model.KindText, Required: true}, text(""), false},
		{"required text whitespace only", model.Question{ID: "a", Kind: model.KindText, Required: true}, text("   "), false},
		{"required multi-choice empty list", model.Question{ID: "m", Kind: model.KindMultiChoice, Required: true}, model.AnswerValue{Selected: []string{}}, false},
		{"required multi-choice one selection", model.Question{ID: "m", Kind: model.KindMultiChoice, Required: true}, model.AnswerValue{Selected: []string{"x"}}, true},
		{"required multi-choice many selections", model.Question{ID: "m", Kind: model.KindMultiChoice, Required: true}, model.AnswerValue{Selected: []string{"x", "y", "z"}}, true},
		{"required number zero is present", model.Question{ID: "n", Kind: model.KindNumber, Required: true}, model.AnswerValue{Number: numPtr(0)}, true},
		{"required select absent", model.Question{ID: "s", Kind: model.KindSelect, Required: true}, model.AnswerValue{}, false},
		{"required select chosen", model.Question{ID: "s", Kind: model.KindSelect, Required: true}, text("opt-1"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Validate(tc.q, tc.value)
			if out.Valid != tc.valid {
				t.Fatalf("got valid=%v reason=%q, want valid=%v", out.Valid, out.Reason, tc.valid)
			}
			if !out.Valid && out.Reason == "" {
				t.Fatalf("invalid outcome must carry a reason")
			}
		})
	}
}

func TestOptionalEmptySkipsRules(t *testing.T) {
	// Empty + not required is valid even with rules that would otherwise fail.
	q := model.Question{
		ID:    "opt",
		Kind:  model.KindText,
		Rules: &model.Rules{MinLength: intPtr(50), Pattern: `^\d+$`},
	}
	if out := Validate(q, model.AnswerValue{}); !out.Valid {
		t.Fatalf("optional empty field should be valid, got %q", out.Reason)
	}
	if out := Validate(q, text("")); !out.Valid {
		t.Fatalf("optional empty string should be valid, got %q", out.Reason)
	}
}

func TestTextLengthRules(t *testing.T) {
	q := model.Question{
		ID:       "desc",
		Kind:     model.KindTextarea,
		Required: true,
		Rules:    &model.Rules{MinLength: intPtr(10), MaxLength: intPtr(20)},
	}

	out := Validate(q, text("seven.."))
	if out.Valid {
		t.Fatal("7 chars under minLength 10 should be invalid")
	}
	// The message states exactly how many more characters are needed.
	if !strings.Contains(out.Reason, "3 more") {
		t.Fatalf("want shortfall of 3 in message, got %q", out.Reason)
	}

	if out := Validate(q, text("exactly10!")); !out.Valid {
		t.Fatalf("10 chars at minLength should be valid, got %q", out.Reason)
	}

	if out := Validate(q, text(strings.Repeat("x", 21))); out.Valid {
		t.Fatal("21 chars over maxLength 20 should be invalid")
	}
}

func TestTextPatternRule(t *testing.T) {
	q := model.Question{
		ID:    "url",
		Kind:  model.KindText,
		Rules: &model.Rules{Pattern: `^https?://`},
	}
	out := Validate(q, text("not a url"))
	if out.Valid {
		t.Fatal("pattern mismatch should be invalid")
	}
	// Never echo the raw pattern back to the user.
	if strings.Contains(out.Reason, "https?") {
		t.Fatalf("reason leaks the pattern: %q", out.Reason)
	}
	if out := Validate(q, text("https://example.com")); !out.Valid {
		t.Fatalf("matching input should be valid, got %q", out.Reason)
	}
}

func TestFirstViolationWins(t *testing.T) {
	// Too short AND pattern-breaking: the length message is reported.
	q := model.Question{
		ID:    "code",
		Kind:  model.KindText,
		Rules: &model.Rules{MinLength: intPtr(10), Pattern: `^\d+$`},
	}
	out := Validate(q, text("abc"))
	if out.Valid {
		t.Fatal("expected invalid")
	}
	if out.Reason != "Please add at least 7 more characters" {
		t.Fatalf("want the minLength message first, got %q", out.Reason)
	}
}

func TestNumberRules(t *testing.T) {
	q := model.Question{
		ID:       "budget",
		Kind:     model.KindNumber,
		Required: true,
		Rules:    &model.Rules{Min: numPtr(5), Max: numPtr(10)},
	}

	cases := []struct {
		name   string
		value  model.AnswerValue
		valid  bool
		reason string
	}{
		{"below min", model.AnswerValue{Number: numPtr(4)}, false, "Must be at least 5"},
		{"above max", model.AnswerValue{Number: numPtr(11)}, false, "Must be at most 10"},
		{"min inclusive", model.AnswerValue{Number: numPtr(5)}, true, ""},
		{"max inclusive", model.AnswerValue{Number: numPtr(10)}, true, ""},
		{"string coercion", text("7"), true, ""},
		{"string below min", text("4.5"), false, "Must be at least 5"},
		{"not a number", text("lots"), false, "Please enter a valid number"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Validate(q, tc.value)
			if out.Valid != tc.valid {
				t.Fatalf("got valid=%v reason=%q, want valid=%v", out.Valid, out.Reason, tc.valid)
			}
			if tc.reason != "" && out.Reason != tc.reason {
				t.Fatalf("got reason %q, want %q", out.Reason, tc.reason)
			}
		})
	}
}

func TestCheckForm(t *testing.T) {
	cases := []struct {
		name      string
		questions []model.Question
		wantErr   bool
	}{
		{
			"valid mixed form",
			[]model.Question{
				{ID: "a", Kind: model.KindText, Rules: &model.Rules{MinLength: intPtr(3), Pattern: `^\w+$`}},
				{ID: "b", Kind: model.KindNumber, Rules: &model.Rules{Min: numPtr(0)}},
				{ID: "c", Kind: model.KindMultiChoice, Options: []string{"x", "y"}},
			},
			false,
		},
		{
			"min on text kind",
			[]model.Question{{ID: "a", Kind: model.KindText, Rules: &model.Rules{Min: numPtr(1)}}},
			true,
		},
		{
			"minLength on number kind",
			[]model.Question{{ID: "a", Kind: model.KindNumber, Rules: &model.Rules{MinLength: intPtr(1)}}},
			true,
		},
		{
			"pattern on select kind",
			[]model.Question{{ID: "a", Kind: model.KindSelect, Rules: &model.Rules{Pattern: `x`}}},
			true,
		},
		{
			"uncompilable pattern",
			[]model.Question{{ID: "a", Kind: model.KindText, Rules: &model.Rules{Pattern: `([`}}},
			true,
		},
		{
			"duplicate ids",
			[]model.Question{{ID: "a", Kind: model.KindText}, {ID: "a", Kind: model.KindText}},
			true,
		},
		{
			"empty id",
			[]model.Question{{Kind: model.KindText}},
			true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckForm(tc.questions)
			if (err != nil) != tc.wantErr {
				t.Fatalf("got err=%v, wantErr=%v", err, tc.wantErr)
			}
		})
	}
}
