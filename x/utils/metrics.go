package utils

import (
	"time"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator counting processed transactions and measuring how
// long the processing took. Each collector is labeled with the message
// path, the phase (check or deliver) and the result.
type Metrics struct {
	processed *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

var _ swap.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator with collectors registered in
// given registry.
func NewMetrics(reg prometheus.Registerer) (Metrics, error) {
	m := Metrics{
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swap",
			Name:      "tx_total",
			Help:      "Total number of processed transactions.",
		}, []string{"path", "phase", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "swap",
			Name:      "tx_duration_seconds",
			Help:      "Time spent processing a transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"path", "phase"}),
	}
	for _, c := range []prometheus.Collector{m.processed, m.duration} {
		if err := reg.Register(c); err != nil {
			return m, errors.Wrap(errors.ErrInput, err.Error())
		}
	}
	return m, nil
}

// Check records the CheckTx outcome.
func (m Metrics) Check(ctx swap.Context, db swap.KVStore, tx swap.Tx, next swap.Checker) (*swap.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	m.observe(txPath(tx), "check", start, err)
	return res, err
}

// Deliver records the DeliverTx outcome.
func (m Metrics) Deliver(ctx swap.Context, db swap.KVStore, tx swap.Tx, next swap.Deliverer) (*swap.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	m.observe(txPath(tx), "deliver", start, err)
	return res, err
}

func (m Metrics) observe(path, phase string, start time.Time, err error) {
	m.duration.WithLabelValues(path, phase).Observe(time.Since(start).Seconds())
	m.processed.WithLabelValues(path, phase, resultLabel(err)).Inc()
}

// resultLabel returns "ok" for a success or the name of the registered root
// error.
func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	for _, e := range []*errors.Error{
		errors.ErrUnauthorized,
		errors.ErrNotFound,
		errors.ErrBalance,
		errors.ErrAmount,
		errors.ErrDuplicate,
		errors.ErrMsg,
		errors.ErrPanic,
	} {
		if e.Is(err) {
			return e.Error()
		}
	}
	return "error"
}
