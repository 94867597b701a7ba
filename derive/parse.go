package derive

import (
	"regexp"
	"strconv"
	"time"

	"github.com/sky-flux/chrono"
)

// DerivedTime is the canonical, sortable form of an authored time.
// SortStart <= SortEnd always holds.
type DerivedTime struct {
	SortStart      int       `json:"sort_start"`
	SortEnd        int       `json:"sort_end"`
	Precision      Precision `json:"precision"`
	Certainty      Certainty `json:"certainty"`
	CanonicalStart string    `json:"canonical_start"`
	CanonicalEnd   string    `json:"canonical_end"`
	YearStart      int       `json:"year_start"`
}

var (
	yearRangeRe = regexp.MustCompile(`^(\d{4})/(\d{4})$`)
	dateRe      = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	yearMonthRe = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	approxRe    = regexp.MustCompile(`^(\d{4})~$`)
	uncertainRe = regexp.MustCompile(`^(\d{4})\?$`)
	yearRe      = regexp.MustCompile(`^(\d{4})$`)
)

// SortKey encodes a calendar day as year*10000 + month*100 + day, so keys of
// different precisions stay totally ordered.
func SortKey(year, month, day int) int {
	return year*10000 + month*100 + day
}

func lastDayOfMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// YearDerivation returns the exact whole-year derivation of year.
func YearDerivation(year int) DerivedTime {
	s := strconv.Itoa(year)
	return DerivedTime{
		SortStart:      SortKey(year, 1, 1),
		SortEnd:        SortKey(year, 12, 31),
		Precision:      PrecisionYear,
		Certainty:      CertaintyExact,
		CanonicalStart: s,
		CanonicalEnd:   s,
		YearStart:      year,
	}
}

// ParseNotation parses a single date notation. Forms are tried in order:
// year range, full date, year-month, approximate year, uncertain year,
// bare year. It reports false for malformed notations.
func ParseNotation(s string) (DerivedTime, bool) {
	for _, parse := range []func(string) (DerivedTime, bool){
		parseYearRange,
		parseDate,
		parseYearMonth,
		parseApproxYear,
		parseUncertainYear,
		parseYear,
	} {
		if d, ok := parse(s); ok {
			return d, true
		}
	}
	return DerivedTime{}, false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s) // callers pass regexp-matched digits.
	return n
}

func parseYear(s string) (DerivedTime, bool) {
	m := yearRe.FindStringSubmatch(s)
	if m == nil {
		return DerivedTime{}, false
	}
	return YearDerivation(atoi(m[1])), true
}

func parseYearMonth(s string) (DerivedTime, bool) {
	m := yearMonthRe.FindStringSubmatch(s)
	if m == nil {
		return DerivedTime{}, false
	}
	year, month := atoi(m[1]), atoi(m[2])
	if month < 1 || month > 12 {
		return DerivedTime{}, false
	}
	return DerivedTime{
		SortStart:      SortKey(year, month, 1),
		SortEnd:        SortKey(year, month, lastDayOfMonth(year, month)),
		Precision:      PrecisionMonth,
		Certainty:      CertaintyExact,
		CanonicalStart: s,
		CanonicalEnd:   s,
		YearStart:      year,
	}, true
}

func parseDate(s string) (DerivedTime, bool) {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return DerivedTime{}, false
	}
	year, month, day := atoi(m[1]), atoi(m[2]), atoi(m[3])
	if month < 1 || month > 12 {
		return DerivedTime{}, false
	}
	if day < 1 || day > lastDayOfMonth(year, month) {
		return DerivedTime{}, false
	}
	key := SortKey(year, month, day)
	return DerivedTime{
		SortStart:      key,
		SortEnd:        key,
		Precision:      PrecisionDay,
		Certainty:      CertaintyExact,
		CanonicalStart: s,
		CanonicalEnd:   s,
		YearStart:      year,
	}, true
}

func parseYearRange(s string) (DerivedTime, bool) {
	m := yearRangeRe.FindStringSubmatch(s)
	if m == nil {
		return DerivedTime{}, false
	}
	start, end := atoi(m[1]), atoi(m[2])
	if end < start {
		return DerivedTime{}, false
	}
	return DerivedTime{
		SortStart:      SortKey(start, 1, 1),
		SortEnd:        SortKey(end, 12, 31),
		Precision:      PrecisionRange,
		Certainty:      CertaintyExact,
		CanonicalStart: m[1],
		CanonicalEnd:   m[2],
		YearStart:      start,
	}, true
}

func parseApproxYear(s string) (DerivedTime, bool) {
	return parseMarkedYear(approxRe, s, CertaintyApprox)
}

func parseUncertainYear(s string) (DerivedTime, bool) {
	return parseMarkedYear(uncertainRe, s, CertaintyUncertain)
}

func parseMarkedYear(re *regexp.Regexp, s string, c Certainty) (DerivedTime, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return DerivedTime{}, false
	}
	d := YearDerivation(atoi(m[1]))
	d.Certainty = c
	d.CanonicalStart = s
	d.CanonicalEnd = s
	return d, true
}

// ParseTime derives an event's time from its start/end notations, or from
// the numeric year_start when no notation is present.
//
// With both start and end, each side is parsed on its own: the sort range
// runs from start's SortStart to end's SortEnd, precision is the explicit
// override, else start's precision when start == end, else range; certainty
// is the explicit override, else exact when both sides are exact, else
// start's certainty. Unknown overrides and inverted ranges report false.
//
// A start without an end is treated as start == end, so overrides still
// apply. The exception is a YYYY/YYYY start, which is a range on its own.
func ParseTime(t chrono.RawTime) (DerivedTime, bool) {
	if t.Start == "" && t.End == "" {
		if t.YearStart != nil {
			return YearDerivation(*t.YearStart), true
		}
		return DerivedTime{}, false
	}
	if t.Start == "" {
		return DerivedTime{}, false
	}
	if t.End == "" {
		if yearRangeRe.MatchString(t.Start) {
			return ParseNotation(t.Start)
		}
		t.End = t.Start
	}

	start, ok := ParseNotation(t.Start)
	if !ok {
		return DerivedTime{}, false
	}
	end, ok := ParseNotation(t.End)
	if !ok {
		return DerivedTime{}, false
	}

	precision := PrecisionRange
	if t.Start == t.End {
		precision = start.Precision
	}
	if t.Precision != "" {
		p, err := ParsePrecision(t.Precision)
		if err != nil {
			return DerivedTime{}, false
		}
		precision = p
	}

	certainty := start.Certainty
	if start.Certainty == CertaintyExact && end.Certainty == CertaintyExact {
		certainty = CertaintyExact
	}
	if t.Certainty != "" {
		c, err := ParseCertainty(t.Certainty)
		if err != nil {
			return DerivedTime{}, false
		}
		certainty = c
	}

	d := DerivedTime{
		SortStart:      start.SortStart,
		SortEnd:        end.SortEnd,
		Precision:      precision,
		Certainty:      certainty,
		CanonicalStart: t.Start,
		CanonicalEnd:   t.End,
		YearStart:      start.YearStart,
	}
	if d.SortStart > d.SortEnd {
		return DerivedTime{}, false
	}
	return d, true
}
