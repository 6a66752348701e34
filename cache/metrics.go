package cache

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opHasKey = "has_key"
	opGet    = "get"
	opSet    = "set"
	opDelete = "delete"

	resultHit   = "hit"
	resultMiss  = "miss"
	resultOK    = "ok"
	resultError = "error"
)

// Metrics holds the cache counters.
type Metrics struct {
	Operations *prometheus.CounterVec
}

// NewMetrics registers the cache counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Operations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "projectinfo",
				Subsystem: "cache",
				Name:      "operations_total",
				Help:      "Cache operations by operation and result",
			},
			[]string{"op", "result"},
		),
	}
}

// sizer is implemented by backends that know how many entries they hold.
type sizer interface {
	Size() int
}

// RegisterEntries registers a gauge reporting the entry count of c on reg.
// It reports false when c cannot tell its size.
func RegisterEntries(reg prometheus.Registerer, c Cache) bool {
	s, ok := c.(sizer)
	if !ok {
		return false
	}
	promauto.With(reg).NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "projectinfo",
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Entries held by the in-process cache",
		},
		func() float64 { return float64(s.Size()) },
	)
	return true
}

// Instrumented counts every call made against the wrapped Cache.
type Instrumented struct {
	next    Cache
	metrics *Metrics
}

// Instrument wraps c so that its operations are counted in m.
func Instrument(c Cache, m *Metrics) *Instrumented {
	return &Instrumented{next: c, metrics: m}
}

func (i *Instrumented) HasKey(ctx context.Context, key string) (bool, error) {
	ok, err := i.next.HasKey(ctx, key)
	i.observe(opHasKey, lookupResult(ok, err))
	return ok, err
}

func (i *Instrumented) Get(ctx context.Context, key string, dest any) (bool, error) {
	ok, err := i.next.Get(ctx, key, dest)
	i.observe(opGet, lookupResult(ok, err))
	return ok, err
}

func (i *Instrumented) Set(ctx context.Context, key string, value any) error {
	err := i.next.Set(ctx, key, value)
	i.observe(opSet, writeResult(err))
	return err
}

func (i *Instrumented) Delete(ctx context.Context, key string) error {
	err := i.next.Delete(ctx, key)
	i.observe(opDelete, writeResult(err))
	return err
}

func (i *Instrumented) observe(op, result string) {
	i.metrics.Operations.WithLabelValues(op, result).Inc()
}

func lookupResult(ok bool, err error) string {
	switch {
	case err != nil:
		return resultError
	case ok:
		return resultHit
	default:
		return resultMiss
	}
}

func writeResult(err error) string {
	if err != nil {
		return resultError
	}
	return resultOK
}
