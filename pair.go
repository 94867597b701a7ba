package chrono

// DefaultPairAttempts is the attempt budget of the pair sampler.
const DefaultPairAttempts = 120

// PairOptions configures SamplePair. Zero values produce defaults.
type PairOptions struct {
	MaxAttempts int // zero → DefaultPairAttempts
}

// SamplePair draws a Before/After question from pool by bounded rejection
// sampling. A draw is rejected when its pair key is in recent or when both
// events share a year. The correct option is the earlier event.
//
// It returns ErrInsufficientEvents for pools smaller than two and a
// *SamplingError once the attempt budget is spent.
func SamplePair(pool []Event, recent KeySet, opts PairOptions, r Rand) (Question, error) {
	n := len(pool)
	if n < 2 {
		return Question{}, ErrInsufficientEvents
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultPairAttempts
	}
	if recent == nil {
		recent = Keys(nil)
	}

	for i := 0; i < attempts; i++ {
		a, b := pickDistinctPair(pool, r)
		key := PairKey(a.ID, b.ID)
		if recent.Contains(key) {
			continue
		}
		q, ok := buildPairQuestion(a, b, r)
		if !ok {
			continue
		}
		return q, nil
	}

	return Question{}, &SamplingError{
		Archetype:     BeforeAfter,
		PoolSize:      n,
		ExclusionSize: recent.Len(),
		Attempts:      attempts,
		Constraint:    "distinct years, not recently asked",
	}
}

// pickDistinctPair draws two different slots. The second draw is uniform
// over the n-1 remaining slots, remapped past the first index.
func pickDistinctPair(pool []Event, r Rand) (Event, Event) {
	n := len(pool)
	first := randomIndex(r, n)
	second := randomIndex(r, n-1)
	if second >= first {
		second++
	}
	return pool[first], pool[second]
}

// buildPairQuestion orders a and b by year and shuffles the display order.
// It fails when either year is missing or both years are equal.
func buildPairQuestion(a, b Event, r Rand) (Question, bool) {
	ya, okA := a.Year()
	yb, okB := b.Year()
	if !okA || !okB || ya == yb {
		return Question{}, false
	}

	earlier, later := a, b
	if yb < ya {
		earlier, later = b, a
	}

	shown := []Event{later, earlier}
	correct := 1
	if coinFlip(r) {
		shown = []Event{earlier, later}
		correct = 0
	}

	return Question{
		Type:               BeforeAfter,
		Options:            newOptions(shown),
		CorrectOptionIndex: correct,
		PairKey:            PairKey(a.ID, b.ID),
	}, true
}
