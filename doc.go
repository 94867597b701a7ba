// Package chrono implements the question engine of a timeline trainer: a
// flashcard-style quiz over dated historical events.
//
// chrono samples constrained random questions (Before/After pairs and
// Earliest/Latest-of-3 triplets) from a unit's candidate events and keeps a
// bounded, single-session review queue of missed pairs. Raw date notations
// are normalized offline by the chrono/derive subpackage.
//
// Basic usage:
//
//	s, err := chrono.NewSession(chrono.SessionConfig{}, events, unit)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	q, err := s.Next()
//	res, err := s.Answer(q.CorrectOptionIndex)
package chrono
