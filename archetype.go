package chrono

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Archetype is one of the three question shapes.
type Archetype int

const (
	BeforeAfter     Archetype = iota + 1 // Which of two events happened earlier.
	EarliestOfThree                      // Which of three events happened first.
	LatestOfThree                        // Which of three events happened last.
)

// Archetypes lists every archetype in canonical order.
var Archetypes = []Archetype{BeforeAfter, EarliestOfThree, LatestOfThree}

var (
	archetypeNames = [...]string{
		BeforeAfter:     "before_after",
		EarliestOfThree: "earliest_of_3",
		LatestOfThree:   "latest_of_3",
	}
	archetypeByName = map[string]Archetype{
		"before_after":  BeforeAfter,
		"earliest_of_3": EarliestOfThree,
		"latest_of_3":   LatestOfThree,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Archetype(0)
	_ json.Marshaler           = Archetype(0)
	_ json.Unmarshaler         = (*Archetype)(nil)
	_ encoding.TextMarshaler   = Archetype(0)
	_ encoding.TextUnmarshaler = (*Archetype)(nil)
)

// IsValid reports whether a is one of the defined archetypes.
func (a Archetype) IsValid() bool {
	return a >= BeforeAfter && a <= LatestOfThree
}

// String returns the archetype name ("before_after", "earliest_of_3", "latest_of_3").
// For invalid values it returns "Archetype(n)".
func (a Archetype) String() string {
	if a.IsValid() {
		return archetypeNames[a]
	}
	return fmt.Sprintf("Archetype(%d)", int(a))
}

// Tag returns the question-type tag events declare to opt into this archetype,
// e.g. "timeline_before_after". Invalid archetypes return "".
func (a Archetype) Tag() string {
	if !a.IsValid() {
		return ""
	}
	return "timeline_" + archetypeNames[a]
}

// Label returns a short human-readable name.
func (a Archetype) Label() string {
	switch a {
	case EarliestOfThree:
		return "Earliest of 3"
	case LatestOfThree:
		return "Latest of 3"
	default:
		return "Before / After"
	}
}

// Prompt returns the question title shown to the learner.
func (a Archetype) Prompt() string {
	switch a {
	case EarliestOfThree:
		return "Which happened earliest?"
	case LatestOfThree:
		return "Which happened latest?"
	default:
		return "Which happened earlier?"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Archetype) MarshalText() ([]byte, error) {
	if !a.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidArchetype, int(a))
	}
	return []byte(archetypeNames[a]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Archetype) UnmarshalText(text []byte) error {
	v, ok := archetypeByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidArchetype, text)
	}
	*a = v
	return nil
}

// MarshalJSON implements json.Marshaler. Archetype serializes as a JSON string.
func (a Archetype) MarshalJSON() ([]byte, error) {
	text, err := a.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (a *Archetype) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidArchetype, data)
	}
	return a.UnmarshalText([]byte(s))
}
