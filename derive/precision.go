package derive

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Precision is the granularity of a derived time.
type Precision int

const (
	PrecisionYear  Precision = iota + 1 // Whole year.
	PrecisionMonth                      // Single month.
	PrecisionDay                        // Single day.
	PrecisionRange                      // Span between two points.
)

// Certainty qualifies how sure the authored date is.
type Certainty int

const (
	CertaintyExact     Certainty = iota + 1 // As authored.
	CertaintyApprox                         // Marked with "~".
	CertaintyUncertain                      // Marked with "?".
)

var (
	precisionNames = [...]string{PrecisionYear: "year", PrecisionMonth: "month", PrecisionDay: "day", PrecisionRange: "range"}
	precisionByName = map[string]Precision{
		"year":  PrecisionYear,
		"month": PrecisionMonth,
		"day":   PrecisionDay,
		"range": PrecisionRange,
	}

	certaintyNames = [...]string{CertaintyExact: "exact", CertaintyApprox: "approx", CertaintyUncertain: "uncertain"}
	certaintyByName = map[string]Certainty{
		"exact":     CertaintyExact,
		"approx":    CertaintyApprox,
		"uncertain": CertaintyUncertain,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Precision(0)
	_ json.Marshaler           = Precision(0)
	_ json.Unmarshaler         = (*Precision)(nil)
	_ encoding.TextMarshaler   = Precision(0)
	_ encoding.TextUnmarshaler = (*Precision)(nil)

	_ fmt.Stringer             = Certainty(0)
	_ json.Marshaler           = Certainty(0)
	_ json.Unmarshaler         = (*Certainty)(nil)
	_ encoding.TextMarshaler   = Certainty(0)
	_ encoding.TextUnmarshaler = (*Certainty)(nil)
)

// IsValid reports whether p is a defined precision.
func (p Precision) IsValid() bool {
	return p >= PrecisionYear && p <= PrecisionRange
}

// String returns the precision name. For invalid values it returns "Precision(n)".
func (p Precision) String() string {
	if p.IsValid() {
		return precisionNames[p]
	}
	return fmt.Sprintf("Precision(%d)", int(p))
}

// ParsePrecision parses a precision name.
func ParsePrecision(s string) (Precision, error) {
	p, ok := precisionByName[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrecision, s)
	}
	return p, nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Precision) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPrecision, int(p))
	}
	return []byte(precisionNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Precision) UnmarshalText(text []byte) error {
	v, err := ParsePrecision(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MarshalJSON implements json.Marshaler. Precision serializes as a JSON string.
func (p Precision) MarshalJSON() ([]byte, error) {
	text, err := p.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (p *Precision) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPrecision, data)
	}
	return p.UnmarshalText([]byte(s))
}

// IsValid reports whether c is a defined certainty.
func (c Certainty) IsValid() bool {
	return c >= CertaintyExact && c <= CertaintyUncertain
}

// String returns the certainty name. For invalid values it returns "Certainty(n)".
func (c Certainty) String() string {
	if c.IsValid() {
		return certaintyNames[c]
	}
	return fmt.Sprintf("Certainty(%d)", int(c))
}

// ParseCertainty parses a certainty name.
func ParseCertainty(s string) (Certainty, error) {
	c, ok := certaintyByName[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCertainty, s)
	}
	return c, nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Certainty) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCertainty, int(c))
	}
	return []byte(certaintyNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Certainty) UnmarshalText(text []byte) error {
	v, err := ParseCertainty(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MarshalJSON implements json.Marshaler. Certainty serializes as a JSON string.
func (c Certainty) MarshalJSON() ([]byte, error) {
	text, err := c.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (c *Certainty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCertainty, data)
	}
	return c.UnmarshalText([]byte(s))
}
