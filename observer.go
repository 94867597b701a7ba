package chrono

// Observer receives session events, e.g. to export metrics.
// Implementations must not retain or mutate the questions they are given.
type Observer interface {
	QuestionServed(q Question)
	AnswerRecorded(q Question, correct bool)
	SamplingFailed(a Archetype, err error)
	ReviewQueueSize(n int)
}

type nopObserver struct{}

func (nopObserver) QuestionServed(Question)         {}
func (nopObserver) AnswerRecorded(Question, bool)   {}
func (nopObserver) SamplingFailed(Archetype, error) {}
func (nopObserver) ReviewQueueSize(int)             {}
