package chrono

import (
	"fmt"
	"slices"
)

const (
	// DefaultTripletAttempts is the attempt budget of the triplet sampler.
	DefaultTripletAttempts = 160
	// DefaultMinYearSpan is the minimum distance between the earliest and
	// latest year of a triplet.
	DefaultMinYearSpan = 10
)

// TripletOptions configures SampleTriplet. Zero values produce defaults.
type TripletOptions struct {
	MinYearSpan int // zero → DefaultMinYearSpan
	MaxAttempts int // zero → DefaultTripletAttempts
}

// SampleTriplet draws an Earliest-of-3 or Latest-of-3 question from pool by
// bounded rejection sampling. A draw is rejected when two events share a
// year, when the years span less than MinYearSpan, or when its triplet key
// is in recent.
//
// It returns ErrInsufficientEvents for pools smaller than three, and a
// *SamplingError once the attempt budget is spent.
func SampleTriplet(pool []Event, recent KeySet, a Archetype, opts TripletOptions, r Rand) (Question, error) {
	if a != EarliestOfThree && a != LatestOfThree {
		return Question{}, fmt.Errorf("%w: %s is not a triplet archetype", ErrInvalidArchetype, a)
	}
	n := len(pool)
	if n < 3 {
		return Question{}, ErrInsufficientEvents
	}
	minSpan := opts.MinYearSpan
	if minSpan <= 0 {
		minSpan = DefaultMinYearSpan
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultTripletAttempts
	}
	if recent == nil {
		recent = Keys(nil)
	}

	for i := 0; i < attempts; i++ {
		drawn := pickDistinctTriplet(pool, r)
		years, ok := distinctYears(drawn)
		if !ok {
			continue
		}
		if slices.Max(years)-slices.Min(years) < minSpan {
			continue
		}
		key := TripletKey(drawn[0].ID, drawn[1].ID, drawn[2].ID)
		if recent.Contains(key) {
			continue
		}
		return buildTripletQuestion(drawn, a, key, r), nil
	}

	return Question{}, &SamplingError{
		Archetype:     a,
		PoolSize:      n,
		ExclusionSize: recent.Len(),
		Attempts:      attempts,
		Constraint:    fmt.Sprintf("distinct years spanning >= %d, not recently asked", minSpan),
	}
}

// pickDistinctTriplet draws three different slots with exactly three draws.
// Each draw is uniform over the slots not yet taken, remapped past the
// taken indices in ascending order.
func pickDistinctTriplet(pool []Event, r Rand) []Event {
	taken := make([]int, 0, 3)
	out := make([]Event, 0, 3)
	for len(out) < 3 {
		i := randomIndex(r, len(pool)-len(taken))
		for _, t := range taken {
			if i >= t {
				i++
			}
		}
		taken = append(taken, i)
		slices.Sort(taken)
		out = append(out, pool[i])
	}
	return out
}

// distinctYears returns the years of events, failing on a missing or repeated year.
func distinctYears(events []Event) ([]int, bool) {
	years := make([]int, 0, len(events))
	for _, e := range events {
		y, ok := e.Year()
		if !ok || slices.Contains(years, y) {
			return nil, false
		}
		years = append(years, y)
	}
	return years, true
}

func buildTripletQuestion(drawn []Event, a Archetype, key string, r Rand) Question {
	byYear := slices.Clone(drawn)
	slices.SortFunc(byYear, func(x, y Event) int {
		yx, _ := x.Year()
		yy, _ := y.Year()
		return yx - yy
	})
	target := byYear[0]
	if a == LatestOfThree {
		target = byYear[len(byYear)-1]
	}

	shown := slices.Clone(drawn)
	shuffle(r, shown)
	correct := slices.IndexFunc(shown, func(e Event) bool { return e.ID == target.ID })

	return Question{
		Type:               a,
		Options:            newOptions(shown),
		CorrectOptionIndex: correct,
		TripletKey:         key,
	}
}
