package derive

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/sky-flux/chrono"
)

// YearBucket holds the ids of the events starting in Year, sorted.
type YearBucket struct {
	Year int
	IDs  []string
}

// YearIndex maps years to event ids, ordered by ascending year.
// It encodes as a JSON object whose keys keep numeric order.
type YearIndex []YearBucket

// IDs returns the ids recorded for year.
func (x YearIndex) IDs(year int) []string {
	i, ok := slices.BinarySearchFunc(x, year, func(b YearBucket, y int) int {
		return cmp.Compare(b.Year, y)
	})
	if !ok {
		return nil
	}
	return x[i].IDs
}

// MarshalJSON implements json.Marshaler.
func (x YearIndex) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range x {
		if i > 0 {
			buf.WriteByte(',')
		}
		ids := b.IDs
		if ids == nil {
			ids = []string{}
		}
		data, err := json.Marshal(ids)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "%q:", strconv.Itoa(b.Year))
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (x *YearIndex) UnmarshalJSON(data []byte) error {
	var m map[string][]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	out := make(YearIndex, 0, len(m))
	for k, ids := range m {
		y, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("derive: year index key %q: %w", k, err)
		}
		out = append(out, YearBucket{Year: y, IDs: ids})
	}
	slices.SortFunc(out, func(a, b YearBucket) int { return cmp.Compare(a.Year, b.Year) })
	*x = out
	return nil
}

// EventsByYear groups normalized event ids by derived year.
func EventsByYear(events []NormalizedEvent) YearIndex {
	byYear := make(map[int][]string)
	for _, e := range events {
		byYear[e.Derived.YearStart] = append(byYear[e.Derived.YearStart], e.ID)
	}
	out := make(YearIndex, 0, len(byYear))
	for y, ids := range byYear {
		slices.Sort(ids)
		out = append(out, YearBucket{Year: y, IDs: ids})
	}
	slices.SortFunc(out, func(a, b YearBucket) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// EventsSorted returns all event ids in chronological order. Events with
// equal sort_start are ordered by id.
func EventsSorted(events []NormalizedEvent) []string {
	sorted := slices.Clone(events)
	slices.SortFunc(sorted, func(a, b NormalizedEvent) int {
		return cmp.Or(
			cmp.Compare(a.Derived.SortStart, b.Derived.SortStart),
			strings.Compare(a.ID, b.ID),
		)
	})
	ids := make([]string, len(sorted))
	for i, e := range sorted {
		ids[i] = e.ID
	}
	return ids
}

// UnitPool lists, per question-type tag, the unit's events eligible for it.
type UnitPool struct {
	EligibleIDs map[string][]string `json:"eligible_ids"`
}

// Tags returns the pool's question-type tags, sorted.
func (p UnitPool) Tags() []string {
	tags := make([]string, 0, len(p.EligibleIDs))
	for t := range p.EligibleIDs {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	return tags
}

// UnitEventPool builds the eligible-id pool of every unit. An event is
// eligible when it exists in raw and survived normalization; it is listed
// under each tag its raw record declares. Ids are deduplicated and sorted.
func UnitEventPool(units []chrono.Unit, raw []chrono.Event, normalized []NormalizedEvent) map[string]UnitPool {
	rawByID := make(map[string]chrono.Event, len(raw))
	for _, e := range raw {
		rawByID[e.ID] = e
	}
	normalizedIDs := make(map[string]struct{}, len(normalized))
	for _, n := range normalized {
		normalizedIDs[n.ID] = struct{}{}
	}

	pools := make(map[string]UnitPool, len(units))
	for _, u := range units {
		eligible := make(map[string][]string)
		for _, id := range u.EventIDs {
			e, ok := rawByID[id]
			if !ok {
				continue
			}
			if _, ok := normalizedIDs[id]; !ok {
				continue
			}
			for _, tag := range e.QuestionTypes {
				eligible[tag] = append(eligible[tag], id)
			}
		}
		for tag, ids := range eligible {
			slices.Sort(ids)
			eligible[tag] = slices.Compact(ids)
		}
		pools[u.ID] = UnitPool{EligibleIDs: eligible}
	}
	return pools
}

// UnitsIndex returns copies of units sorted by id.
func UnitsIndex(units []chrono.Unit) []chrono.Unit {
	out := make([]chrono.Unit, len(units))
	for i, u := range units {
		ids := slices.Clone(u.EventIDs)
		if ids == nil {
			ids = []string{}
		}
		out[i] = chrono.Unit{ID: u.ID, Title: u.Title, EventIDs: ids}
	}
	slices.SortFunc(out, func(a, b chrono.Unit) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// ValidateUnit checks the fields every unit must carry.
func ValidateUnit(u chrono.Unit) error {
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidUnit)
	}
	if strings.TrimSpace(u.Title) == "" {
		return fmt.Errorf("%w: unit %s: title is required", ErrInvalidUnit, u.ID)
	}
	return nil
}

// MissingReferences returns one warning per unit event id absent from raw,
// in unit order.
func MissingReferences(units []chrono.Unit, raw []chrono.Event) []Warning {
	known := make(map[string]struct{}, len(raw))
	for _, e := range raw {
		known[e.ID] = struct{}{}
	}
	var warnings []Warning
	for _, u := range units {
		for _, id := range u.EventIDs {
			if _, ok := known[id]; ok {
				continue
			}
			warnings = append(warnings, Warning{
				Kind:    WarnMissingReference,
				EventID: id,
				UnitID:  u.ID,
				Message: fmt.Sprintf("unit %s references missing event id: %s", u.ID, id),
			})
		}
	}
	return warnings
}
