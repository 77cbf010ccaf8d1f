package wallet

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels of the submissions counter.
const (
	outcomeAccepted     = "accepted"
	outcomeRejected     = "rejected"
	outcomeShape        = "unexpected_shape"
	outcomeSubmitFailed = "submit_failed"
	outcomeWaitFailed   = "wait_failed"
)

type metrics struct {
	submissions *prometheus.CounterVec
	waitSeconds prometheus.Histogram
	polls       prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tariplan",
			Subsystem: "wallet",
			Name:      "submissions_total",
			Help:      "Transactions submitted, by terminal outcome.",
		}, []string{"outcome"}),
		waitSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tariplan",
			Subsystem: "wallet",
			Name:      "wait_seconds",
			Help:      "Time from submission to terminal status.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
		polls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tariplan",
			Subsystem: "wallet",
			Name:      "wait_polls_total",
			Help:      "Result polls issued while waiting for terminal status.",
		}),
	}
	if reg != nil {
		m.submissions = register(reg, m.submissions)
		m.waitSeconds = register(reg, m.waitSeconds)
		m.polls = register(reg, m.polls)
	}
	return m
}

// register adds c to reg. When pipelines share a registry the collector
// registered first is returned so all of them count into the same series.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing
		}
	}
	panic(err)
}
