package chrono

import (
	"fmt"
	"slices"
	"strings"
)

var optionKeys = [...]string{"A", "B", "C"}

// Option is one displayed answer choice.
type Option struct {
	Key   string `json:"key"`
	Event Event  `json:"event"`
}

// Question is a single quiz item.
//
// PairKey is set for BeforeAfter questions and TripletKey for the triplet
// archetypes; both identify the comparison independently of display order.
type Question struct {
	Type               Archetype `json:"type"`
	Options            []Option  `json:"options"`
	CorrectOptionIndex int       `json:"correct_option_index"`
	PairKey            string    `json:"pair_key,omitempty"`
	TripletKey         string    `json:"triplet_key,omitempty"`
	IsReview           bool      `json:"is_review"`
}

// Key returns the pair or triplet key of the question.
func (q Question) Key() string {
	if q.PairKey != "" {
		return q.PairKey
	}
	return q.TripletKey
}

// Correct returns the event behind the correct option.
func (q Question) Correct() Event {
	return q.Options[q.CorrectOptionIndex].Event
}

func newOptions(events []Event) []Option {
	opts := make([]Option, len(events))
	for i, e := range events {
		opts[i] = Option{Key: optionKeys[i], Event: e}
	}
	return opts
}

// Explain returns a one-sentence explanation of the correct answer.
func Explain(q Question) string {
	if len(q.Options) == 0 || q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
		return ""
	}
	if q.Type == BeforeAfter && len(q.Options) == 2 {
		earlier := q.Options[q.CorrectOptionIndex].Event
		later := q.Options[1-q.CorrectOptionIndex].Event
		return fmt.Sprintf("%s (%s) happened before %s (%s).",
			earlier.Label, yearText(earlier), later.Label, yearText(later))
	}

	ordered := make([]Event, len(q.Options))
	for i, o := range q.Options {
		ordered[i] = o.Event
	}
	slices.SortStableFunc(ordered, func(a, b Event) int {
		ya, _ := a.Year()
		yb, _ := b.Year()
		return ya - yb
	})
	parts := make([]string, len(ordered))
	for i, e := range ordered {
		parts[i] = fmt.Sprintf("%s (%s)", e.Label, yearText(e))
	}
	target := q.Correct()
	verb := "first"
	if q.Type == LatestOfThree {
		verb = "last"
	}
	return fmt.Sprintf("%s happened %s. Order: %s.", target.Label, verb, strings.Join(parts, ", "))
}

func yearText(e Event) string {
	if y, ok := e.Year(); ok {
		return fmt.Sprint(y)
	}
	return "?"
}
