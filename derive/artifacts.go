package derive

import (
	"bytes"
	"encoding/json"

	"github.com/sky-flux/chrono"
)

// Artifact file names.
const (
	FileEventsNormalized = "events.normalized.json"
	FileEventsByYear     = "index.events_by_year.json"
	FileEventsSorted     = "index.events_sorted.json"
	FileUnits            = "index.units.json"
	FileUnitEventPool    = "index.unit_event_pool.json"
)

// Artifacts is everything derived from one corpus.
type Artifacts struct {
	Events        []NormalizedEvent
	EventsByYear  YearIndex
	EventsSorted  []string
	Units         []chrono.Unit
	UnitEventPool map[string]UnitPool

	// Warnings collects derivation fallbacks, exclusions and missing references.
	Warnings []Warning
}

// File is one artifact ready to encode.
type File struct {
	Name  string
	Value any
}

// Files returns the artifacts in a stable order, keyed by file name.
func (a Artifacts) Files() []File {
	events := a.Events
	if events == nil {
		events = []NormalizedEvent{}
	}
	sorted := a.EventsSorted
	if sorted == nil {
		sorted = []string{}
	}
	units := a.Units
	if units == nil {
		units = []chrono.Unit{}
	}
	pool := a.UnitEventPool
	if pool == nil {
		pool = map[string]UnitPool{}
	}
	return []File{
		{Name: FileEventsNormalized, Value: events},
		{Name: FileEventsByYear, Value: a.EventsByYear},
		{Name: FileEventsSorted, Value: sorted},
		{Name: FileUnits, Value: units},
		{Name: FileUnitEventPool, Value: pool},
	}
}

// Build normalizes events and derives every index. Units are validated
// first; an invalid event or unit fails the build.
func Build(events []chrono.Event, units []chrono.Unit) (Artifacts, error) {
	for _, u := range units {
		if err := ValidateUnit(u); err != nil {
			return Artifacts{}, err
		}
	}
	n, err := Normalize(events)
	if err != nil {
		return Artifacts{}, err
	}

	warnings := append(n.Warnings, MissingReferences(units, events)...)
	return Artifacts{
		Events:        n.Events,
		EventsByYear:  EventsByYear(n.Events),
		EventsSorted:  EventsSorted(n.Events),
		Units:         UnitsIndex(units),
		UnitEventPool: UnitEventPool(units, events, n.Events),
		Warnings:      warnings,
	}, nil
}

// EncodeJSON renders v as two-space indented JSON with a trailing newline.
// HTML characters are not escaped so labels stay readable.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
