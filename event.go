package chrono

// RawTime is the authored time of an event: a numeric year, a date notation,
// or both. Notations are normalized by the derive subpackage.
type RawTime struct {
	YearStart *int   `json:"year_start,omitempty"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	Precision string `json:"precision,omitempty"` // explicit override, optional.
	Certainty string `json:"certainty,omitempty"` // explicit override, optional.
	Calendar  string `json:"calendar,omitempty"`
}

// Event is a dated historical event as authored in the corpus.
// ID is unique across the corpus and immutable once loaded.
type Event struct {
	ID            string   `json:"id"`
	Label         string   `json:"label"`
	Time          RawTime  `json:"time"`
	QuestionTypes []string `json:"question_types,omitempty"`
}

// Year returns the numeric year_start of the event, if any.
func (e Event) Year() (int, bool) {
	if e.Time.YearStart == nil {
		return 0, false
	}
	return *e.Time.YearStart, true
}

// Declares reports whether the event opts into the given question-type tag.
func (e Event) Declares(tag string) bool {
	for _, t := range e.QuestionTypes {
		if t == tag {
			return true
		}
	}
	return false
}

// Unit is a named, ordered selection of events to study together.
type Unit struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	EventIDs []string `json:"event_ids"`
}

// ResolveUnitEvents looks up the unit's event ids in events, preserving the
// unit's order. Ids absent from events are returned in missing.
func ResolveUnitEvents(events []Event, unit Unit) (resolved []Event, missing []string) {
	byID := make(map[string]Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}
	resolved = make([]Event, 0, len(unit.EventIDs))
	for _, id := range unit.EventIDs {
		e, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		resolved = append(resolved, e)
	}
	return resolved, missing
}

// Year is a convenience for building a RawTime.YearStart pointer.
func Year(y int) *int {
	return &y
}
