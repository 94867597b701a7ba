package chrono

import "slices"

// FilterCandidates returns the events that declare the archetype's tag and
// carry a numeric year_start. Input order is preserved.
func FilterCandidates(events []Event, a Archetype) []Event {
	tag := a.Tag()
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if _, ok := e.Year(); !ok {
			continue
		}
		if e.Declares(tag) {
			out = append(out, e)
		}
	}
	return out
}

// HasTripletCapacity reports whether any triplet of distinct years spanning at
// least minYearSpan can be drawn from events. It checks the pool structure
// only and is independent of any sampling attempt.
func HasTripletCapacity(events []Event, minYearSpan int) bool {
	if len(events) < 3 {
		return false
	}

	seen := make(map[int]struct{}, len(events))
	years := make([]int, 0, len(events))
	for _, e := range events {
		y, ok := e.Year()
		if !ok {
			continue
		}
		if _, dup := seen[y]; dup {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	slices.Sort(years)

	// A pair i < j with at least one year strictly between them.
	for i := 0; i < len(years)-2; i++ {
		for j := i + 2; j < len(years); j++ {
			if years[j]-years[i] >= minYearSpan {
				return true
			}
		}
	}
	return false
}
