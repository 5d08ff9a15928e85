// Package metrics provides Prometheus counters for log delivery.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeEmitted  = "emitted"
	OutcomeFiltered = "filtered"

	OutcomeDelivered = "delivered"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// Collector counts messages at the logger gate and writes at each sink.
// A nil *Collector is valid and records nothing.
type Collector struct {
	messages *prometheus.CounterVec
	writes   *prometheus.CounterVec
}

// New registers the loggy counters on reg. Registering twice on the same
// registerer reuses the counters already there.
func New(reg prometheus.Registerer) (*Collector, error) {
	messages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "loggy_messages_total",
		Help: "Messages submitted to a logger, by level and logger gate outcome",
	}, []string{"logger", "level", "outcome"})

	writes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "loggy_sink_writes_total",
		Help: "Per-sink delivery attempts, by sink kind and outcome",
	}, []string{"logger", "sink", "outcome"})

	var err error
	if messages, err = register(reg, messages); err != nil {
		return nil, err
	}
	if writes, err = register(reg, writes); err != nil {
		return nil, err
	}
	return &Collector{messages: messages, writes: writes}, nil
}

func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

func (c *Collector) Message(logger, level, outcome string) {
	if c == nil {
		return
	}
	c.messages.WithLabelValues(logger, level, outcome).Inc()
}

func (c *Collector) Write(logger, sink, outcome string) {
	if c == nil {
		return
	}
	c.writes.WithLabelValues(logger, sink, outcome).Inc()
}

// MessagesFor returns the message counter for one label set.
func (c *Collector) MessagesFor(logger, level, outcome string) prometheus.Counter {
	return c.messages.WithLabelValues(logger, level, outcome)
}

// WritesFor returns the sink write counter for one label set.
func (c *Collector) WritesFor(logger, sink, outcome string) prometheus.Counter {
	return c.writes.WithLabelValues(logger, sink, outcome)
}
