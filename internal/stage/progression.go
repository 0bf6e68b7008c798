package stage

import (
	"math"

	"venturescope/internal/model"
)

// CompletedSet is the set of stage ids a user has finished for one idea.
// It is supplied by the persistence layer; this package only reads it.
type CompletedSet map[int]bool

// NewCompletedSet builds a set from the persisted id list.
func NewCompletedSet(ids []int) CompletedSet {
	s := make(CompletedSet, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// Unlocked reports whether a stage's full content may be shown. Stage 1 is
// always unlocked; every other stage unlocks once its immediate predecessor
// is completed. The predicate is deliberately local: it looks only at the
// direct predecessor, not the full prefix.
func Unlocked(id int, completed CompletedSet) bool {
	if id == 1 {
		return true
	}
	return completed[id-1]
}

// View projects one stage for the given completion state. Locked stages get
// the teaser fields only; LockedContent is withheld.
func View(id int, completed CompletedSet) (model.StageView, bool) {
	s, ok := Lookup(id)
	if !ok {
		return model.StageView{}, false
	}
	v := model.StageView{
		ID:            s.ID,
		Title:         s.Title,
		Icon:          s.Icon,
		Description:   s.Description,
		Teaser:        s.Teaser,
		EstimatedTime: s.EstimatedTime,
		Value:         s.Value,
		Completed:     completed[s.ID],
	}
	if Unlocked(s.ID, completed) {
		v.LockedContent = s.LockedContent
	} else {
		v.Locked = true
	}
	return v, true
}

// Views projects the whole catalog in order.
func Views(completed CompletedSet) []model.StageView {
	out := make([]model.StageView, 0, len(catalog))
	for _, s := range catalog {
		v, _ := View(s.ID, completed)
		out = append(out, v)
	}
	return out
}

// ProgressPercent is the rounded share of completed stages, clamped to
// [0, 100]. Ids outside the catalog are ignored.
func ProgressPercent(completed CompletedSet) int {
	total := len(catalog)
	if total == 0 {
		return 0
	}
	done := 0
	for id := range completed {
		if id >= 1 && id <= total {
			done++
		}
	}
	pct := int(math.Round(100 * float64(done) / float64(total)))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// LockedStages lists stage ids not yet completed, in catalog order. This is
// a plain set difference for "what's left" display; a stage can appear here
// and still be unlocked for viewing.
func LockedStages(completed CompletedSet) []int {
	out := make([]int, 0, len(catalog))
	for _, s := range catalog {
		if !completed[s.ID] {
			out = append(out, s.ID)
		}
	}
	return out
}

// Progress summarizes completion across the catalog.
func Progress(completedIDs []int) model.StageProgress {
	set := NewCompletedSet(completedIDs)
	done := make([]int, 0, len(catalog))
	for _, s := range catalog {
		if set[s.ID] {
			done = append(done, s.ID)
		}
	}
	return model.StageProgress{
		CompletedStages: done,
		LockedStages:    LockedStages(set),
		ProgressPercent: ProgressPercent(set),
		TotalStages:     len(catalog),
	}
}
