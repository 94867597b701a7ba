package chrono

import (
	"errors"
	"slices"
	"testing"
)

func TestSampleTripletScripted(t *testing.T) {
	pool := eventsByYears(1800, 1805, 1815)
	// Draws indices 0, 1, 2; the shuffle keeps display order.
	rolls := []float64{0, 0.4, 0.9, 0.9, 0.9}

	q, err := SampleTriplet(pool, nil, EarliestOfThree, TripletOptions{}, script(rolls...))
	if err != nil {
		t.Fatalf("SampleTriplet: %v", err)
	}
	if q.Type != EarliestOfThree || q.CorrectOptionIndex != 0 || q.Correct().ID != "a" {
		t.Errorf("earliest = %+v", q)
	}
	if q.TripletKey != "a|b|c" || q.PairKey != "" {
		t.Errorf("keys = %q, %q", q.TripletKey, q.PairKey)
	}

	q, err = SampleTriplet(pool, nil, LatestOfThree, TripletOptions{}, script(rolls...))
	if err != nil {
		t.Fatalf("SampleTriplet: %v", err)
	}
	if q.CorrectOptionIndex != 2 || q.Correct().ID != "c" {
		t.Errorf("latest correct = %d (%s), want 2 (c)", q.CorrectOptionIndex, q.Correct().ID)
	}
	keys := []string{q.Options[0].Key, q.Options[1].Key, q.Options[2].Key}
	if !slices.Equal(keys, []string{"A", "B", "C"}) {
		t.Errorf("option keys = %v", keys)
	}
}

func TestSampleTripletProperties(t *testing.T) {
	pool := eventsByYears(1789, 1789, 1792, 1799, 1804, 1805, 1812, 1815, 1830)
	r := seeded(7)
	for _, a := range []Archetype{EarliestOfThree, LatestOfThree} {
		positions := make([]int, 3)
		for i := 0; i < 1500; i++ {
			q, err := SampleTriplet(pool, nil, a, TripletOptions{MinYearSpan: 10}, r)
			if err != nil {
				t.Fatalf("SampleTriplet: %v", err)
			}
			if len(q.Options) != 3 {
				t.Fatalf("len(Options) = %d, want 3", len(q.Options))
			}
			years := make([]int, 3)
			ids := make([]string, 3)
			for j, o := range q.Options {
				years[j], _ = o.Event.Year()
				ids[j] = o.Event.ID
			}
			sorted := slices.Clone(years)
			slices.Sort(sorted)
			if len(slices.Compact(sorted)) != 3 {
				t.Fatalf("years %v are not distinct", years)
			}
			if slices.Max(years)-slices.Min(years) < 10 {
				t.Fatalf("years %v span less than 10", years)
			}
			want := slices.Min(years)
			if a == LatestOfThree {
				want = slices.Max(years)
			}
			if got, _ := q.Correct().Year(); got != want {
				t.Fatalf("%v: correct year %d, want %d (years %v)", a, got, want, years)
			}
			if q.TripletKey != TripletKey(ids[0], ids[1], ids[2]) {
				t.Fatalf("TripletKey = %q", q.TripletKey)
			}
			positions[q.CorrectOptionIndex]++
		}
		for p, c := range positions {
			if c < 400 || c > 600 {
				t.Errorf("%v: correct answer at position %d %d/1500 times, want about a third", a, p, c)
			}
		}
	}
}

func TestSampleTripletRespectsRecent(t *testing.T) {
	pool := eventsByYears(1700, 1750, 1800, 1850)
	recent := NewKeys(TripletKey("a", "b", "c"), TripletKey("a", "b", "d"), TripletKey("a", "c", "d"))
	r := seeded(13)
	for i := 0; i < 100; i++ {
		q, err := SampleTriplet(pool, recent, LatestOfThree, TripletOptions{}, r)
		if err != nil {
			t.Fatalf("SampleTriplet: %v", err)
		}
		if q.TripletKey != "b|c|d" {
			t.Fatalf("TripletKey = %q, want b|c|d", q.TripletKey)
		}
	}
}

func TestSampleTripletInvalidArchetype(t *testing.T) {
	_, err := SampleTriplet(eventsByYears(1, 20, 40), nil, BeforeAfter, TripletOptions{}, seeded(1))
	if !errors.Is(err, ErrInvalidArchetype) {
		t.Errorf("SampleTriplet(before_after) = %v, want ErrInvalidArchetype", err)
	}
}

func TestSampleTripletInsufficient(t *testing.T) {
	_, err := SampleTriplet(eventsByYears(1800, 1900), nil, EarliestOfThree, TripletOptions{}, seeded(1))
	if !errors.Is(err, ErrInsufficientEvents) {
		t.Errorf("SampleTriplet(2 events) = %v, want ErrInsufficientEvents", err)
	}
}

func TestSampleTripletNarrowSpanExhausts(t *testing.T) {
	pool := eventsByYears(1800, 1805, 1808)
	_, err := SampleTriplet(pool, nil, EarliestOfThree, TripletOptions{}, seeded(1))
	var se *SamplingError
	if !errors.As(err, &se) {
		t.Fatalf("SampleTriplet = %v, want *SamplingError", err)
	}
	if se.Archetype != EarliestOfThree || se.PoolSize != 3 || se.Attempts != DefaultTripletAttempts {
		t.Errorf("SamplingError = %+v", se)
	}
}

func TestSampleTripletCustomSpan(t *testing.T) {
	pool := eventsByYears(1800, 1805, 1808)
	if _, err := SampleTriplet(pool, nil, EarliestOfThree, TripletOptions{MinYearSpan: 8}, seeded(1)); err != nil {
		t.Errorf("SampleTriplet(span 8) = %v, want success", err)
	}
}

func TestPickDistinctTripletStuckSource(t *testing.T) {
	pool := eventsByYears(1, 2, 3, 4, 5)
	for _, v := range []float64{0, 0.5, 0.99} {
		r := script(v)
		drawn := pickDistinctTriplet(pool, r)
		ids := []string{drawn[0].ID, drawn[1].ID, drawn[2].ID}
		slices.Sort(ids)
		if len(slices.Compact(ids)) != 3 {
			t.Errorf("roll %v: drew %v, want three different events", v, ids)
		}
		if r.n != 3 {
			t.Errorf("roll %v: consumed %d values, want 3", v, r.n)
		}
	}
}

func TestPickDistinctTripletUniform(t *testing.T) {
	pool := eventsByYears(1, 2, 3, 4)
	r := seeded(17)
	counts := map[string]int{}
	const trials = 4000
	for i := 0; i < trials; i++ {
		d := pickDistinctTriplet(pool, r)
		counts[TripletKey(d[0].ID, d[1].ID, d[2].ID)]++
	}
	if len(counts) != 4 {
		t.Fatalf("saw %d triplets, want 4: %v", len(counts), counts)
	}
	for key, c := range counts {
		if c < 850 || c > 1150 {
			t.Errorf("%s drawn %d/%d times, want about a quarter", key, c, trials)
		}
	}
}

func TestSampleTripletStuckSourceTerminates(t *testing.T) {
	pool := eventsByYears(1800, 1805, 1808)
	_, err := SampleTriplet(pool, nil, LatestOfThree, TripletOptions{MaxAttempts: 20}, script(0.5))
	var se *SamplingError
	if !errors.As(err, &se) || se.Attempts != 20 {
		t.Errorf("SampleTriplet = %v, want *SamplingError after 20 attempts", err)
	}
}
