// Package metrics exports session activity as Prometheus metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sky-flux/chrono"
)

// Collector implements chrono.Observer on top of Prometheus collectors.
type Collector struct {
	served      *prometheus.CounterVec
	answers     *prometheus.CounterVec
	failures    *prometheus.CounterVec
	reviewQueue prometheus.Gauge
}

var _ chrono.Observer = (*Collector)(nil)

// NewCollector creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		served: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chrono",
			Name:      "questions_served_total",
			Help:      "Questions served by archetype and review flag",
		}, []string{"archetype", "review"}),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chrono",
			Name:      "answers_total",
			Help:      "Answers recorded by archetype and result",
		}, []string{"archetype", "result"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chrono",
			Name:      "sampling_failures_total",
			Help:      "Archetypes skipped because sampling failed",
		}, []string{"archetype"}),
		reviewQueue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chrono",
			Name:      "review_queue_entries",
			Help:      "Pairs currently held in the review queue",
		}),
	}
	for _, col := range []prometheus.Collector{c.served, c.answers, c.failures, c.reviewQueue} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNewCollector is like NewCollector but panics on registration errors.
func MustNewCollector(reg prometheus.Registerer) *Collector {
	c, err := NewCollector(reg)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Collector) QuestionServed(q chrono.Question) {
	c.served.WithLabelValues(q.Type.String(), strconv.FormatBool(q.IsReview)).Inc()
}

func (c *Collector) AnswerRecorded(q chrono.Question, correct bool) {
	result := "wrong"
	if correct {
		result = "correct"
	}
	c.answers.WithLabelValues(q.Type.String(), result).Inc()
}

func (c *Collector) SamplingFailed(a chrono.Archetype, _ error) {
	c.failures.WithLabelValues(a.String()).Inc()
}

func (c *Collector) ReviewQueueSize(n int) {
	c.reviewQueue.Set(float64(n))
}
