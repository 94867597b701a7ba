package chrono

import "maps"

// Tally counts answered and correct questions.
type Tally struct {
	Answered int `json:"answered"`
	Correct  int `json:"correct"`
}

// Stats summarizes the answers given during a session.
type Stats struct {
	Total       Tally               `json:"total"`
	Review      Tally               `json:"review"`
	ByArchetype map[Archetype]Tally `json:"by_archetype"`
}

func newStats() Stats {
	return Stats{ByArchetype: make(map[Archetype]Tally, len(Archetypes))}
}

func (s *Stats) record(q Question, correct bool) {
	t := s.ByArchetype[q.Type]
	t.Answered++
	s.Total.Answered++
	if q.IsReview {
		s.Review.Answered++
	}
	if correct {
		t.Correct++
		s.Total.Correct++
		if q.IsReview {
			s.Review.Correct++
		}
	}
	s.ByArchetype[q.Type] = t
}

func (s Stats) clone() Stats {
	s.ByArchetype = maps.Clone(s.ByArchetype)
	return s
}
