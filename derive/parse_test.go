package derive

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/sky-flux/chrono"
)

// --- SortKey ---

func TestSortKey(t *testing.T) {
	if got := SortKey(1789, 7, 14); got != 17890714 {
		t.Errorf("SortKey(1789, 7, 14) = %d, want 17890714", got)
	}
	if got := SortKey(2000, 1, 1); got != 20000101 {
		t.Errorf("SortKey(2000, 1, 1) = %d, want 20000101", got)
	}
}

func TestLastDayOfMonth(t *testing.T) {
	tests := []struct {
		year, month, want int
	}{
		{1900, 2, 28},
		{2000, 2, 29},
		{1804, 2, 29},
		{1805, 4, 30},
		{1805, 12, 31},
	}
	for _, tt := range tests {
		if got := lastDayOfMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("lastDayOfMonth(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

// --- ParseNotation ---

func TestParseNotationForms(t *testing.T) {
	tests := []struct {
		in        string
		start     int
		end       int
		precision Precision
		certainty Certainty
		year      int
	}{
		{"1789", 17890101, 17891231, PrecisionYear, CertaintyExact, 1789},
		{"1804-12", 18041201, 18041231, PrecisionMonth, CertaintyExact, 1804},
		{"1900-02", 19000201, 19000228, PrecisionMonth, CertaintyExact, 1900},
		{"2000-02", 20000201, 20000229, PrecisionMonth, CertaintyExact, 2000},
		{"1789-07-14", 17890714, 17890714, PrecisionDay, CertaintyExact, 1789},
		{"1799/1815", 17990101, 18151231, PrecisionRange, CertaintyExact, 1799},
		{"1450~", 14500101, 14501231, PrecisionYear, CertaintyApprox, 1450},
		{"1450?", 14500101, 14501231, PrecisionYear, CertaintyUncertain, 1450},
	}
	for _, tt := range tests {
		d, ok := ParseNotation(tt.in)
		if !ok {
			t.Errorf("ParseNotation(%q) failed", tt.in)
			continue
		}
		if d.SortStart != tt.start || d.SortEnd != tt.end {
			t.Errorf("ParseNotation(%q) sort = [%d, %d], want [%d, %d]", tt.in, d.SortStart, d.SortEnd, tt.start, tt.end)
		}
		if d.Precision != tt.precision {
			t.Errorf("ParseNotation(%q).Precision = %v, want %v", tt.in, d.Precision, tt.precision)
		}
		if d.Certainty != tt.certainty {
			t.Errorf("ParseNotation(%q).Certainty = %v, want %v", tt.in, d.Certainty, tt.certainty)
		}
		if d.YearStart != tt.year {
			t.Errorf("ParseNotation(%q).YearStart = %d, want %d", tt.in, d.YearStart, tt.year)
		}
	}
}

func TestParseNotationCanonical(t *testing.T) {
	d, _ := ParseNotation("1799/1815")
	if d.CanonicalStart != "1799" || d.CanonicalEnd != "1815" {
		t.Errorf("range canonical = %q/%q, want 1799/1815", d.CanonicalStart, d.CanonicalEnd)
	}
	d, _ = ParseNotation("1450~")
	if d.CanonicalStart != "1450~" || d.CanonicalEnd != "1450~" {
		t.Errorf("approx canonical = %q/%q, want 1450~/1450~", d.CanonicalStart, d.CanonicalEnd)
	}
}

func TestParseNotationRejects(t *testing.T) {
	bad := []string{
		"",
		"178",
		"17890",
		"1789-13",
		"1789-00",
		"1789-02-30",
		"1900-02-29",
		"1789-07-00",
		"1815/1799",
		"c. 1789",
		"1789 ",
		"1789~?",
		"1789-7-14",
		"-500",
	}
	for _, s := range bad {
		if d, ok := ParseNotation(s); ok {
			t.Errorf("ParseNotation(%q) = %+v, want failure", s, d)
		}
	}
}

func TestParseNotationLeapDay(t *testing.T) {
	if _, ok := ParseNotation("2000-02-29"); !ok {
		t.Error("ParseNotation(2000-02-29) failed, want leap day accepted")
	}
}

func TestParseNotationProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		y := 1000 + rng.Intn(9000)
		m := 1 + rng.Intn(12)
		day := 1 + rng.Intn(lastDayOfMonth(y, m))
		for _, s := range []string{
			fmt.Sprintf("%04d", y),
			fmt.Sprintf("%04d-%02d", y, m),
			fmt.Sprintf("%04d-%02d-%02d", y, m, day),
			fmt.Sprintf("%04d~", y),
			fmt.Sprintf("%04d?", y),
		} {
			d, ok := ParseNotation(s)
			if !ok {
				t.Fatalf("ParseNotation(%q) failed", s)
			}
			if d.SortStart > d.SortEnd {
				t.Fatalf("ParseNotation(%q): sort_start %d > sort_end %d", s, d.SortStart, d.SortEnd)
			}
			if d.YearStart != y {
				t.Fatalf("ParseNotation(%q).YearStart = %d, want %d", s, d.YearStart, y)
			}
		}
	}
}

func TestSortKeyOrderAcrossPrecisions(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	mustParse := func(s string) DerivedTime {
		d, ok := ParseNotation(s)
		if !ok {
			t.Fatalf("ParseNotation(%q) failed", s)
		}
		return d
	}
	randomDay := func() time.Time {
		y := 1000 + rng.Intn(1000)
		m := 1 + rng.Intn(12)
		return time.Date(y, time.Month(m), 1+rng.Intn(lastDayOfMonth(y, m)), 0, 0, 0, 0, time.UTC)
	}
	notations := func(d time.Time) []string {
		return []string{d.Format("2006"), d.Format("2006-01"), d.Format("2006-01-02")}
	}

	for i := 0; i < 2000; i++ {
		a, b := randomDay(), randomDay()

		// Coarser notations contain finer ones.
		var prev DerivedTime
		for j, s := range notations(a) {
			d := mustParse(s)
			if j > 0 && (d.SortStart < prev.SortStart || d.SortEnd > prev.SortEnd) {
				t.Fatalf("%s [%d, %d] is not inside the coarser [%d, %d]", s, d.SortStart, d.SortEnd, prev.SortStart, prev.SortEnd)
			}
			prev = d
		}

		// Sort keys follow the calendar at every pair of precisions.
		for _, sa := range notations(a) {
			for _, sb := range notations(b) {
				da, db := mustParse(sa), mustParse(sb)
				if !a.Before(b) {
					continue
				}
				if db.SortEnd < da.SortStart {
					t.Fatalf("%s ends (%d) before %s starts (%d) but %s is later", sb, db.SortEnd, sa, da.SortStart, b.Format("2006-01-02"))
				}
				if a.Year() < b.Year() && da.SortEnd >= db.SortStart {
					t.Fatalf("%s [%d, %d] overlaps later-year %s [%d, %d]", sa, da.SortStart, da.SortEnd, sb, db.SortStart, db.SortEnd)
				}
			}
		}
		if a.Before(b) && mustParse(a.Format("2006-01-02")).SortStart >= mustParse(b.Format("2006-01-02")).SortStart {
			t.Fatalf("day keys out of order for %v < %v", a, b)
		}
	}
}

func FuzzParseNotation(f *testing.F) {
	for _, s := range []string{"1789", "1804-12", "1789-07-14", "1799/1815", "1450~", "1450?", "x"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		d, ok := ParseNotation(s)
		if !ok {
			return
		}
		if d.SortStart > d.SortEnd {
			t.Errorf("ParseNotation(%q): sort_start %d > sort_end %d", s, d.SortStart, d.SortEnd)
		}
		if !d.Precision.IsValid() || !d.Certainty.IsValid() {
			t.Errorf("ParseNotation(%q) = %+v, want valid precision and certainty", s, d)
		}
	})
}

// --- ParseTime ---

func TestParseTimeYearStartOnly(t *testing.T) {
	d, ok := ParseTime(chrono.RawTime{YearStart: chrono.Year(1815)})
	if !ok {
		t.Fatal("ParseTime(year_start) failed")
	}
	if d != YearDerivation(1815) {
		t.Errorf("ParseTime(year_start) = %+v, want %+v", d, YearDerivation(1815))
	}
}

func TestParseTimeEmpty(t *testing.T) {
	if _, ok := ParseTime(chrono.RawTime{}); ok {
		t.Error("ParseTime(empty) succeeded, want failure")
	}
}

func TestParseTimeStartOnly(t *testing.T) {
	d, ok := ParseTime(chrono.RawTime{Start: "1789-07-14"})
	if !ok {
		t.Fatal("ParseTime(start) failed")
	}
	if d.Precision != PrecisionDay || d.SortStart != 17890714 {
		t.Errorf("ParseTime(start) = %+v", d)
	}
}

func TestParseTimeEndWithoutStart(t *testing.T) {
	if _, ok := ParseTime(chrono.RawTime{End: "1815", YearStart: chrono.Year(1815)}); ok {
		t.Error("ParseTime(end only) succeeded, want failure")
	}
}

func TestParseTimeStartEnd(t *testing.T) {
	tests := []struct {
		name      string
		raw       chrono.RawTime
		start     int
		end       int
		precision Precision
		certainty Certainty
	}{
		{
			name:      "range",
			raw:       chrono.RawTime{Start: "1789-05-05", End: "1799-11-09"},
			start:     17890505,
			end:       17991109,
			precision: PrecisionRange,
			certainty: CertaintyExact,
		},
		{
			name:      "same notation keeps precision",
			raw:       chrono.RawTime{Start: "1804-12", End: "1804-12"},
			start:     18041201,
			end:       18041231,
			precision: PrecisionMonth,
			certainty: CertaintyExact,
		},
		{
			name:      "approx start",
			raw:       chrono.RawTime{Start: "1760~", End: "1840"},
			start:     17600101,
			end:       18401231,
			precision: PrecisionRange,
			certainty: CertaintyApprox,
		},
		{
			name:      "uncertain end only",
			raw:       chrono.RawTime{Start: "1760", End: "1840?"},
			start:     17600101,
			end:       18401231,
			precision: PrecisionRange,
			certainty: CertaintyExact,
		},
		{
			name:      "overrides",
			raw:       chrono.RawTime{Start: "1760", End: "1840", Precision: "year", Certainty: "approx"},
			start:     17600101,
			end:       18401231,
			precision: PrecisionYear,
			certainty: CertaintyApprox,
		},
		{
			name:      "start only keeps notation",
			raw:       chrono.RawTime{Start: "1760~"},
			start:     17600101,
			end:       17601231,
			precision: PrecisionYear,
			certainty: CertaintyApprox,
		},
		{
			name:      "start only overrides",
			raw:       chrono.RawTime{Start: "1789", Precision: "month", Certainty: "approx"},
			start:     17890101,
			end:       17891231,
			precision: PrecisionMonth,
			certainty: CertaintyApprox,
		},
		{
			name:      "start only range",
			raw:       chrono.RawTime{Start: "1799/1815", Certainty: "uncertain"},
			start:     17990101,
			end:       18151231,
			precision: PrecisionRange,
			certainty: CertaintyExact,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ParseTime(tt.raw)
			if !ok {
				t.Fatalf("ParseTime(%+v) failed", tt.raw)
			}
			if d.SortStart != tt.start || d.SortEnd != tt.end {
				t.Errorf("sort = [%d, %d], want [%d, %d]", d.SortStart, d.SortEnd, tt.start, tt.end)
			}
			if d.Precision != tt.precision {
				t.Errorf("Precision = %v, want %v", d.Precision, tt.precision)
			}
			if d.Certainty != tt.certainty {
				t.Errorf("Certainty = %v, want %v", d.Certainty, tt.certainty)
			}
			wantStart, wantEnd := tt.raw.Start, tt.raw.End
			if wantEnd == "" {
				wantStart, wantEnd = canonicalOf(t, tt.raw.Start)
			}
			if d.CanonicalStart != wantStart || d.CanonicalEnd != wantEnd {
				t.Errorf("canonical = %q/%q, want %q/%q", d.CanonicalStart, d.CanonicalEnd, wantStart, wantEnd)
			}
		})
	}
}

func canonicalOf(t *testing.T, notation string) (string, string) {
	t.Helper()
	d, ok := ParseNotation(notation)
	if !ok {
		t.Fatalf("ParseNotation(%q) failed", notation)
	}
	return d.CanonicalStart, d.CanonicalEnd
}

func TestParseTimeRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  chrono.RawTime
	}{
		{"inverted", chrono.RawTime{Start: "1815", End: "1799"}},
		{"bad start", chrono.RawTime{Start: "soon", End: "1799"}},
		{"bad end", chrono.RawTime{Start: "1789", End: "later"}},
		{"unknown precision", chrono.RawTime{Start: "1789", End: "1799", Precision: "decade"}},
		{"unknown certainty", chrono.RawTime{Start: "1789", End: "1799", Certainty: "maybe"}},
		{"start only unknown precision", chrono.RawTime{Start: "1789", Precision: "decade"}},
		{"start only unknown certainty", chrono.RawTime{Start: "1789", Certainty: "bogus"}},
	}
	for _, tt := range tests {
		if d, ok := ParseTime(tt.raw); ok {
			t.Errorf("%s: ParseTime = %+v, want failure", tt.name, d)
		}
	}
}

func BenchmarkParseNotation(b *testing.B) {
	inputs := []string{"1789", "1804-12", "1789-07-14", "1799/1815", "1450~", "1450?"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ParseNotation(inputs[i%len(inputs)])
	}
}
