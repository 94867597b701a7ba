package chrono

// archetypeWeights are the mixed-mode priorities. Before/After is asked
// about as often as both triplet archetypes together.
var archetypeWeights = map[Archetype]float64{
	BeforeAfter:     50,
	EarliestOfThree: 25,
	LatestOfThree:   25,
}

// EnabledArchetypes intersects the mode's archetypes with the available set,
// in canonical order.
func EnabledArchetypes(mode Mode, available map[Archetype]bool) []Archetype {
	if a, ok := mode.Archetype(); ok {
		if available[a] {
			return []Archetype{a}
		}
		return nil
	}
	out := make([]Archetype, 0, len(Archetypes))
	for _, a := range Archetypes {
		if available[a] {
			out = append(out, a)
		}
	}
	return out
}

// OrderArchetypes returns the order in which archetypes should be attempted.
// Fixed modes keep enabled as is; ModeMixed orders it by weighted sampling
// without replacement.
func OrderArchetypes(mode Mode, enabled []Archetype, r Rand) []Archetype {
	if mode != ModeMixed {
		return append([]Archetype(nil), enabled...)
	}
	return weightedOrder(enabled, r)
}

// weightedOrder repeatedly draws one remaining archetype with probability
// proportional to its weight and removes it from the pool.
func weightedOrder(types []Archetype, r Rand) []Archetype {
	remaining := append([]Archetype(nil), types...)
	out := make([]Archetype, 0, len(remaining))

	for len(remaining) > 0 {
		total := 0.0
		for _, a := range remaining {
			total += archetypeWeights[a]
		}

		roll := r.Float64() * total
		picked := 0
		cumulative := 0.0
		for i, a := range remaining {
			cumulative += archetypeWeights[a]
			if cumulative >= roll {
				picked = i
				break
			}
		}

		out = append(out, remaining[picked])
		remaining = append(remaining[:picked], remaining[picked+1:]...)
	}
	return out
}
