package chrono

import (
	"cmp"
	"slices"
)

// Review defaults.
const (
	DefaultReviewDelayMin    = 2
	DefaultReviewDelayMax    = 4
	DefaultReviewMaxAttempts = 2
	DefaultReviewProbability = 0.3
)

// ReviewConfig configures a ReviewQueue. Zero values produce defaults, so a
// Probability of 0 means 0.3 rather than "never". Reviews are turned off
// with SessionConfig.DisableReview.
type ReviewConfig struct {
	DelayMin    int     `json:"delay_min" yaml:"delay_min"`       // zero → 2
	DelayMax    int     `json:"delay_max" yaml:"delay_max"`       // zero → 4
	MaxAttempts int     `json:"max_attempts" yaml:"max_attempts"` // zero → 2
	Probability float64 `json:"probability" yaml:"probability"`   // zero → 0.3
}

func (c ReviewConfig) withDefaults() ReviewConfig {
	if c.DelayMin == 0 {
		c.DelayMin = DefaultReviewDelayMin
	}
	if c.DelayMax == 0 {
		c.DelayMax = DefaultReviewDelayMax
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultReviewMaxAttempts
	}
	if c.Probability == 0 {
		c.Probability = DefaultReviewProbability
	}
	return c
}

// ReviewEntry tracks a missed Before/After pair.
type ReviewEntry struct {
	PairKey        string    `json:"pair_key"`
	EventIDs       [2]string `json:"event_ids"`
	WrongCount     int       `json:"wrong_count"`
	Attempts       int       `json:"attempts"`
	NextEligibleAt int       `json:"next_eligible_at"`
	LastAskedAt    int       `json:"last_asked_at"`

	seq int // insertion order, breaks ordering ties.
}

// ReviewQueue resurfaces missed pairs ahead of fresh questions.
//
// Entries are keyed by pair key. A pair answered correctly while under
// review is deleted; a pair whose attempts reach MaxAttempts stays in the
// queue but is never eligible again.
type ReviewQueue struct {
	cfg     ReviewConfig
	entries map[string]*ReviewEntry
	nextSeq int
}

// NewReviewQueue creates an empty queue.
func NewReviewQueue(cfg ReviewConfig) *ReviewQueue {
	return &ReviewQueue{
		cfg:     cfg.withDefaults(),
		entries: make(map[string]*ReviewEntry),
	}
}

// Enqueue records a wrong answer to a Before/After question asked at index.
// The pair becomes eligible again after a random delay in
// [DelayMin, DelayMax]. Other archetypes are ignored and report false.
func (q *ReviewQueue) Enqueue(question Question, index int, r Rand) bool {
	if question.Type != BeforeAfter || len(question.Options) != 2 {
		return false
	}
	ids := [2]string{question.Options[0].Event.ID, question.Options[1].Event.ID}
	key := PairKey(ids[0], ids[1])
	next := index + randomIntBetween(r, q.cfg.DelayMin, q.cfg.DelayMax)

	if e, ok := q.entries[key]; ok {
		e.WrongCount++
		e.NextEligibleAt = next
		e.LastAskedAt = index
		return true
	}

	q.entries[key] = &ReviewEntry{
		PairKey:        key,
		EventIDs:       ids,
		WrongCount:     1,
		NextEligibleAt: next,
		LastAskedAt:    index,
		seq:            q.nextSeq,
	}
	q.nextSeq++
	return true
}

// Eligible returns the entries that may be reviewed at index, most overdue
// first: ordered by NextEligibleAt, then LastAskedAt.
func (q *ReviewQueue) Eligible(index int, recent KeySet) []ReviewEntry {
	if recent == nil {
		recent = Keys(nil)
	}
	out := make([]ReviewEntry, 0, len(q.entries))
	for key, e := range q.entries {
		if e.Attempts >= q.cfg.MaxAttempts {
			continue
		}
		if index < e.NextEligibleAt {
			continue
		}
		if recent.Contains(key) {
			continue
		}
		out = append(out, *e)
	}
	slices.SortFunc(out, func(a, b ReviewEntry) int {
		return cmp.Or(
			cmp.Compare(a.NextEligibleAt, b.NextEligibleAt),
			cmp.Compare(a.LastAskedAt, b.LastAskedAt),
			cmp.Compare(a.seq, b.seq),
		)
	})
	return out
}

// Materializer turns a queue entry into a concrete question, or reports false
// when the pair can no longer be asked.
type Materializer func(ReviewEntry) (Question, bool)

// Draw tries to produce a review question at index. It only considers
// reviews when Before/After is enabled, and then only with probability
// Probability. Eligible entries are tried in priority order; the first one
// that materializes has its attempts counted and is returned marked IsReview.
func (q *ReviewQueue) Draw(index int, recent KeySet, enabled []Archetype, materialize Materializer, r Rand) (Question, bool) {
	if !slices.Contains(enabled, BeforeAfter) {
		return Question{}, false
	}
	eligible := q.Eligible(index, recent)
	if len(eligible) == 0 || r.Float64() >= q.cfg.Probability {
		return Question{}, false
	}

	for _, candidate := range eligible {
		question, ok := materialize(candidate)
		if !ok {
			continue
		}
		e, ok := q.entries[candidate.PairKey]
		if !ok {
			continue
		}
		e.Attempts++
		e.LastAskedAt = index
		question.IsReview = true
		return question, true
	}
	return Question{}, false
}

// Graduate removes the entry for pairKey. It reports whether one existed.
func (q *ReviewQueue) Graduate(pairKey string) bool {
	if _, ok := q.entries[pairKey]; !ok {
		return false
	}
	delete(q.entries, pairKey)
	return true
}

// Entry returns a copy of the entry for pairKey.
func (q *ReviewQueue) Entry(pairKey string) (ReviewEntry, bool) {
	e, ok := q.entries[pairKey]
	if !ok {
		return ReviewEntry{}, false
	}
	return *e, true
}

// Len returns the number of entries, including retired ones.
func (q *ReviewQueue) Len() int {
	return len(q.entries)
}
