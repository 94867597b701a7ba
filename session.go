package chrono

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session window defaults.
const (
	DefaultRecentPairWindow    = 15
	DefaultRecentTripletWindow = 12
)

// SessionConfig configures a Session.
// Zero values produce sensible defaults; see field comments.
// Reviews are turned off with DisableReview, not with a zero
// Review.Probability, which means the default.
type SessionConfig struct {
	Mode                Mode         `json:"mode" yaml:"mode"`                                   // zero → ModeMixed
	RecentPairWindow    int          `json:"recent_pair_window" yaml:"recent_pair_window"`       // zero → 15
	RecentTripletWindow int          `json:"recent_triplet_window" yaml:"recent_triplet_window"` // zero → 12
	MinYearSpan         int          `json:"min_year_span" yaml:"min_year_span"`                 // zero → 10
	PairAttempts        int          `json:"pair_attempts" yaml:"pair_attempts"`                 // zero → 120
	TripletAttempts     int          `json:"triplet_attempts" yaml:"triplet_attempts"`           // zero → 160
	Review              ReviewConfig `json:"review" yaml:"review"`
	DisableReview       bool         `json:"disable_review" yaml:"disable_review"`

	Rand     Rand        `json:"-" yaml:"-"` // nil → time-seeded math/rand
	Logger   *zap.Logger `json:"-" yaml:"-"` // nil → no-op logger
	Observer Observer    `json:"-" yaml:"-"` // nil → no-op observer
}

// Validate reports config values that cannot be defaulted.
func (c SessionConfig) Validate() error {
	switch {
	case !c.Mode.IsValid():
		return fmt.Errorf("%w: mode %d", ErrInvalidConfig, int(c.Mode))
	case c.RecentPairWindow < 0 || c.RecentTripletWindow < 0:
		return fmt.Errorf("%w: recent windows must not be negative", ErrInvalidConfig)
	case c.MinYearSpan < 0:
		return fmt.Errorf("%w: min year span %d must not be negative", ErrInvalidConfig, c.MinYearSpan)
	case c.PairAttempts < 0 || c.TripletAttempts < 0:
		return fmt.Errorf("%w: attempt budgets must not be negative", ErrInvalidConfig)
	case c.Review.DelayMin < 0 || c.Review.DelayMax < 0 || c.Review.MaxAttempts < 0:
		return fmt.Errorf("%w: review delays and attempts must not be negative", ErrInvalidConfig)
	case c.Review.Probability < 0 || c.Review.Probability > 1:
		return fmt.Errorf("%w: review probability %f out of range [0, 1]", ErrInvalidConfig, c.Review.Probability)
	}
	r := c.Review.withDefaults()
	if r.DelayMin > r.DelayMax {
		return fmt.Errorf("%w: review delay min %d exceeds max %d", ErrInvalidConfig, r.DelayMin, r.DelayMax)
	}
	return nil
}

// AnswerResult is the outcome of answering the current question.
type AnswerResult struct {
	Correct            bool   `json:"correct"`
	SelectedIndex      int    `json:"selected_index"`
	CorrectOptionIndex int    `json:"correct_option_index"`
	Explanation        string `json:"explanation"`
}

// Session runs one learner's quiz over one unit.
//
// A Session owns its review queue, recency windows and question counter.
// It is not safe for concurrent use.
type Session struct {
	id   uuid.UUID
	unit Unit
	mode Mode

	pairOpts      PairOptions
	tripletOpts   TripletOptions
	disableReview bool

	missing    []string
	eventByID  map[string]Event
	candidates map[Archetype][]Event
	available  map[Archetype]bool

	recentPairs    *RecentWindow
	recentTriplets *RecentWindow
	queue          *ReviewQueue

	index    int
	current  *Question
	answered bool
	stats    Stats

	rng Rand
	log *zap.Logger
	obs Observer
}

// NewSession prepares a session over the unit's events.
//
// Unit event ids missing from events are logged and reported by MissingIDs;
// they do not prevent the session from starting. NewSession returns
// ErrNoArchetypeAvailable when no archetype has enough candidates.
func NewSession(cfg SessionConfig, events []Event, unit Unit) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pairWindow := cfg.RecentPairWindow
	if pairWindow == 0 {
		pairWindow = DefaultRecentPairWindow
	}
	tripletWindow := cfg.RecentTripletWindow
	if tripletWindow == 0 {
		tripletWindow = DefaultRecentTripletWindow
	}
	minSpan := cfg.MinYearSpan
	if minSpan == 0 {
		minSpan = DefaultMinYearSpan
	}
	rng := cfg.Rand
	if rng == nil {
		rng = newDefaultRand()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	obs := cfg.Observer
	if obs == nil {
		obs = nopObserver{}
	}

	id := uuid.New()
	s := &Session{
		id:             id,
		unit:           unit,
		mode:           cfg.Mode,
		pairOpts:       PairOptions{MaxAttempts: cfg.PairAttempts},
		tripletOpts:    TripletOptions{MinYearSpan: minSpan, MaxAttempts: cfg.TripletAttempts},
		disableReview:  cfg.DisableReview,
		recentPairs:    NewRecentWindow(pairWindow),
		recentTriplets: NewRecentWindow(tripletWindow),
		queue:          NewReviewQueue(cfg.Review),
		stats:          newStats(),
		rng:            rng,
		log:            logger.With(zap.String("session_id", id.String()), zap.String("unit_id", unit.ID)),
		obs:            obs,
	}
	s.prepare(events)

	if len(s.Available()) == 0 {
		return nil, fmt.Errorf("%w: unit %s", ErrNoArchetypeAvailable, unit.ID)
	}
	return s, nil
}

// prepare resolves the unit and computes per-archetype candidates once.
func (s *Session) prepare(events []Event) {
	resolved, missing := ResolveUnitEvents(events, s.unit)
	if len(missing) > 0 {
		s.log.Warn("unit references missing events", zap.Strings("missing_ids", missing))
	}
	s.missing = missing

	s.eventByID = make(map[string]Event, len(resolved))
	for _, e := range resolved {
		s.eventByID[e.ID] = e
	}

	s.candidates = make(map[Archetype][]Event, len(Archetypes))
	s.available = make(map[Archetype]bool, len(Archetypes))
	for _, a := range Archetypes {
		pool := FilterCandidates(resolved, a)
		s.candidates[a] = pool
		if a == BeforeAfter {
			s.available[a] = len(pool) >= 2
		} else {
			s.available[a] = HasTripletCapacity(pool, s.tripletOpts.MinYearSpan)
		}
		s.log.Debug("candidates prepared",
			zap.Stringer("archetype", a),
			zap.Int("pool_size", len(pool)),
			zap.Bool("available", s.available[a]))
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Unit returns the unit being studied.
func (s *Session) Unit() Unit { return s.unit }

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// MissingIDs returns the unit's event ids absent from the corpus.
func (s *Session) MissingIDs() []string { return slices.Clone(s.missing) }

// QuestionIndex returns the number of questions requested so far.
func (s *Session) QuestionIndex() int { return s.index }

// Stats returns a snapshot of the session's answer counters.
func (s *Session) Stats() Stats { return s.stats.clone() }

// Candidates returns the candidate pool for an archetype.
func (s *Session) Candidates(a Archetype) []Event { return slices.Clone(s.candidates[a]) }

// Available returns the archetypes with enough candidates, in canonical order.
func (s *Session) Available() []Archetype {
	return EnabledArchetypes(ModeMixed, s.available)
}

// ReviewEntry returns the review queue entry for pairKey.
func (s *Session) ReviewEntry(pairKey string) (ReviewEntry, bool) {
	return s.queue.Entry(pairKey)
}

// Current returns the question awaiting an answer, if any.
func (s *Session) Current() (Question, bool) {
	if s.current == nil {
		return Question{}, false
	}
	return *s.current, true
}

// SetMode switches the mode and discards the current question.
// A mode none of whose archetypes is available is rejected with
// ErrNoArchetypeAvailable and leaves the session unchanged.
func (s *Session) SetMode(m Mode) error {
	if !m.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	if len(EnabledArchetypes(m, s.available)) == 0 {
		return fmt.Errorf("%w: mode %s", ErrNoArchetypeAvailable, m)
	}
	s.mode = m
	s.current = nil
	s.answered = false
	return nil
}

// Next produces the next question. A due review is preferred; otherwise
// archetypes are tried in selector order, falling through on sampling
// failures. Failures are retryable: calling Next again draws afresh.
func (s *Session) Next() (Question, error) {
	s.index++
	s.current = nil
	s.answered = false

	enabled := EnabledArchetypes(s.mode, s.available)
	if len(enabled) == 0 {
		return Question{}, fmt.Errorf("%w: mode %s", ErrNoArchetypeAvailable, s.mode)
	}

	if !s.disableReview {
		if q, ok := s.queue.Draw(s.index, s.recentPairs, enabled, s.materializeReview, s.rng); ok {
			s.log.Debug("review question drawn", zap.String("pair_key", q.PairKey), zap.Int("question_index", s.index))
			return s.serve(q), nil
		}
	}

	var lastErr error
	for _, a := range OrderArchetypes(s.mode, enabled, s.rng) {
		q, err := s.generate(a)
		if err != nil {
			s.log.Warn("question generation skipped",
				zap.Stringer("archetype", a),
				zap.Int("pool_size", len(s.candidates[a])),
				zap.Int("recent_pairs", s.recentPairs.Len()),
				zap.Int("recent_triplets", s.recentTriplets.Len()),
				zap.Error(err))
			s.obs.SamplingFailed(a, err)
			lastErr = err
			continue
		}
		return s.serve(q), nil
	}
	return Question{}, fmt.Errorf("%w: %w", ErrNoQuestion, lastErr)
}

func (s *Session) serve(q Question) Question {
	s.current = &q
	s.obs.QuestionServed(q)
	return q
}

func (s *Session) generate(a Archetype) (Question, error) {
	if a == BeforeAfter {
		return SamplePair(s.candidates[a], s.recentPairs, s.pairOpts, s.rng)
	}
	return SampleTriplet(s.candidates[a], s.recentTriplets, a, s.tripletOpts, s.rng)
}

// materializeReview rebuilds a Before/After question from a queued pair,
// applying the same checks as fresh sampling.
func (s *Session) materializeReview(e ReviewEntry) (Question, bool) {
	first, ok := s.eventByID[e.EventIDs[0]]
	if !ok {
		return Question{}, false
	}
	second, ok := s.eventByID[e.EventIDs[1]]
	if !ok {
		return Question{}, false
	}
	if s.recentPairs.Contains(PairKey(first.ID, second.ID)) {
		return Question{}, false
	}
	return buildPairQuestion(first, second, s.rng)
}

// Answer grades the current question. Wrong Before/After answers enter the
// review queue; a correct answer to a review question retires its pair.
func (s *Session) Answer(option int) (AnswerResult, error) {
	if s.current == nil {
		return AnswerResult{}, ErrNoActiveQuestion
	}
	if s.answered {
		return AnswerResult{}, ErrAlreadyAnswered
	}
	q := *s.current
	if option < 0 || option >= len(q.Options) {
		return AnswerResult{}, fmt.Errorf("%w: %d of %d", ErrInvalidOption, option, len(q.Options))
	}

	correct := option == q.CorrectOptionIndex
	s.answered = true
	s.recentPairs.Push(q.PairKey)
	s.recentTriplets.Push(q.TripletKey)
	s.stats.record(q, correct)

	if correct {
		if q.IsReview && s.queue.Graduate(q.PairKey) {
			s.log.Debug("review pair graduated", zap.String("pair_key", q.PairKey))
		}
	} else {
		s.queue.Enqueue(q, s.index, s.rng)
	}

	s.obs.AnswerRecorded(q, correct)
	s.obs.ReviewQueueSize(s.queue.Len())

	return AnswerResult{
		Correct:            correct,
		SelectedIndex:      option,
		CorrectOptionIndex: q.CorrectOptionIndex,
		Explanation:        Explain(q),
	}, nil
}
