package chrono

import (
	"encoding"
	"fmt"
)

// Mode selects which archetypes a session asks.
type Mode int

const (
	ModeMixed           Mode = iota // All available archetypes, weighted random order.
	ModeBeforeAfter                 // Before/After only.
	ModeEarliestOfThree             // Earliest-of-3 only.
	ModeLatestOfThree               // Latest-of-3 only.
)

var (
	modeNames = [...]string{
		ModeMixed:           "mixed",
		ModeBeforeAfter:     "before_after",
		ModeEarliestOfThree: "earliest_of_3",
		ModeLatestOfThree:   "latest_of_3",
	}
	modeByName = map[string]Mode{
		"mixed":         ModeMixed,
		"before_after":  ModeBeforeAfter,
		"earliest_of_3": ModeEarliestOfThree,
		"latest_of_3":   ModeLatestOfThree,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Mode(0)
	_ encoding.TextMarshaler   = Mode(0)
	_ encoding.TextUnmarshaler = (*Mode)(nil)
)

// IsValid reports whether m is one of the defined modes.
func (m Mode) IsValid() bool {
	return m >= ModeMixed && m <= ModeLatestOfThree
}

// String returns the mode name ("mixed", "before_after", ...).
// For invalid values it returns "Mode(n)".
func (m Mode) String() string {
	if m.IsValid() {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Archetype returns the single archetype of a fixed mode.
// It returns false for ModeMixed and invalid modes.
func (m Mode) Archetype() (Archetype, bool) {
	switch m {
	case ModeBeforeAfter:
		return BeforeAfter, true
	case ModeEarliestOfThree:
		return EarliestOfThree, true
	case ModeLatestOfThree:
		return LatestOfThree, true
	default:
		return 0, false
	}
}

// ParseMode parses a mode name. The empty string parses as ModeMixed.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeMixed, nil
	}
	m, ok := modeByName[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return m, nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
