package derive

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sky-flux/chrono"
)

// DefaultCalendar is recorded for events that do not name a calendar.
const DefaultCalendar = "gregorian"

// NormalizedTime is the canonical authored form of an event's time.
type NormalizedTime struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Calendar string `json:"calendar"`
}

// Derived holds the sortable fields of a normalized event.
type Derived struct {
	SortStart int       `json:"sort_start"`
	SortEnd   int       `json:"sort_end"`
	Precision Precision `json:"derived_precision"`
	Certainty Certainty `json:"derived_certainty"`
	YearStart int       `json:"year_start"`
}

// NormalizedEvent is a raw event with its derived time. It is created once
// per normalization pass and never mutated afterwards.
type NormalizedEvent struct {
	ID            string         `json:"id"`
	Label         string         `json:"label"`
	Time          NormalizedTime `json:"time"`
	Derived       Derived        `json:"derived"`
	QuestionTypes []string       `json:"question_types,omitempty"`
}

// Event converts the normalized event back into a chrono.Event whose
// year_start is the derived year, ready to feed a session.
func (n NormalizedEvent) Event() chrono.Event {
	return chrono.Event{
		ID:    n.ID,
		Label: n.Label,
		Time: chrono.RawTime{
			YearStart: chrono.Year(n.Derived.YearStart),
			Start:     n.Time.Start,
			End:       n.Time.End,
			Precision: n.Derived.Precision.String(),
			Certainty: n.Derived.Certainty.String(),
			Calendar:  n.Time.Calendar,
		},
		QuestionTypes: slices.Clone(n.QuestionTypes),
	}
}

// Events converts normalized events into chrono.Events.
func Events(normalized []NormalizedEvent) []chrono.Event {
	out := make([]chrono.Event, len(normalized))
	for i, n := range normalized {
		out[i] = n.Event()
	}
	return out
}

// WarningKind classifies a recoverable normalization problem.
type WarningKind int

const (
	// WarnDerivationFallback: the notation was unusable, year_start was used instead.
	WarnDerivationFallback WarningKind = iota + 1
	// WarnExcluded: the notation was unusable and there was no fallback.
	WarnExcluded
	// WarnMissingReference: a unit references an event id absent from the corpus.
	WarnMissingReference
)

func (k WarningKind) String() string {
	switch k {
	case WarnDerivationFallback:
		return "derivation_fallback"
	case WarnExcluded:
		return "excluded"
	case WarnMissingReference:
		return "missing_reference"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning reports a recoverable problem. UnitID is set for missing references.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	EventID string      `json:"event_id"`
	UnitID  string      `json:"unit_id,omitempty"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// Normalized is the output of Normalize.
type Normalized struct {
	Events   []NormalizedEvent
	Warnings []Warning
}

// ValidateEvent checks the fields every raw event must carry.
func ValidateEvent(e chrono.Event) error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEvent)
	}
	if strings.TrimSpace(e.Label) == "" {
		return fmt.Errorf("%w: event %s: label is required", ErrInvalidEvent, e.ID)
	}
	if e.Time.YearStart == nil && e.Time.Start == "" {
		return fmt.Errorf("%w: event %s: requires time.year_start or time.start", ErrInvalidEvent, e.ID)
	}
	return nil
}

// Normalize validates every event, then derives each event's time.
//
// Any invalid or duplicate event fails the whole batch with ErrInvalidEvent.
// Unparseable times fall back to year_start with a WarnDerivationFallback
// warning, or are excluded with a WarnExcluded warning. Output is sorted by id.
func Normalize(events []chrono.Event) (Normalized, error) {
	seen := make(map[string]struct{}, len(events))
	for _, e := range events {
		if err := ValidateEvent(e); err != nil {
			return Normalized{}, err
		}
		if _, dup := seen[e.ID]; dup {
			return Normalized{}, fmt.Errorf("%w: duplicate id %s", ErrInvalidEvent, e.ID)
		}
		seen[e.ID] = struct{}{}
	}

	var out Normalized
	out.Events = make([]NormalizedEvent, 0, len(events))
	for _, e := range events {
		n, warning, ok := normalizeEvent(e)
		if warning != nil {
			out.Warnings = append(out.Warnings, *warning)
		}
		if ok {
			out.Events = append(out.Events, n)
		}
	}

	slices.SortFunc(out.Events, func(a, b NormalizedEvent) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func normalizeEvent(e chrono.Event) (NormalizedEvent, *Warning, bool) {
	calendar := e.Time.Calendar
	if calendar == "" {
		calendar = DefaultCalendar
	}

	d, ok := ParseTime(e.Time)
	var warning *Warning
	if !ok {
		if e.Time.YearStart == nil {
			return NormalizedEvent{}, &Warning{
				Kind:    WarnExcluded,
				EventID: e.ID,
				Message: fmt.Sprintf("excluding event %s: unsupported time format and no fallback year_start", e.ID),
			}, false
		}
		d = YearDerivation(*e.Time.YearStart)
		warning = &Warning{
			Kind:    WarnDerivationFallback,
			EventID: e.ID,
			Message: fmt.Sprintf("unsupported time string for event %s; falling back to year_start=%d", e.ID, *e.Time.YearStart),
		}
	}

	year := d.YearStart
	if e.Time.YearStart != nil {
		year = *e.Time.YearStart
	}

	return NormalizedEvent{
		ID:    e.ID,
		Label: e.Label,
		Time: NormalizedTime{
			Start:    d.CanonicalStart,
			End:      d.CanonicalEnd,
			Calendar: calendar,
		},
		Derived: Derived{
			SortStart: d.SortStart,
			SortEnd:   d.SortEnd,
			Precision: d.Precision,
			Certainty: d.Certainty,
			YearStart: year,
		},
		QuestionTypes: slices.Clone(e.QuestionTypes),
	}, warning, true
}
