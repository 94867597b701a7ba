// Package derive normalizes authored event dates and builds the offline
// indexes a timeline trainer consumes.
//
// It provides three capabilities:
//
//   - [ParseNotation] and [ParseTime] convert date notations (YYYY,
//     YYYY-MM, YYYY-MM-DD, YYYY/YYYY, YYYY~, YYYY?) into a [DerivedTime]
//     whose sort keys are comparable across precisions.
//
//   - [Normalize] validates raw events, derives their times, falls back to
//     the numeric year when a notation cannot be parsed, and reports
//     [Warning]s instead of failing for recoverable problems.
//
//   - [Build] derives the year index, the chronological order and the
//     per-unit eligible-id pools. Every artifact is a deterministic function
//     of its input and renders byte-for-byte stable through [EncodeJSON].
//
// # Usage
//
//	artifacts, err := derive.Build(events, units)
//	for _, f := range artifacts.Files() {
//	    data, err := derive.EncodeJSON(f.Value)
//	    // write data to f.Name
//	}
//
// derive performs no I/O.
package derive
