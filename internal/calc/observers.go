package calc

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agbru/bncalc/internal/logging"
)

// Event describes one finished evaluation.
type Event struct {
	Op       string
	Layout   LayoutInfo
	Duration time.Duration
	Overflow bool
	Err      error
}

// Status classifies an event as "ok", "overflow" or "error".
func (ev Event) Status() string {
	switch {
	case ev.Err != nil:
		return "error"
	case ev.Overflow:
		return "overflow"
	default:
		return "ok"
	}
}

// Observer is notified after every evaluation. Observers are called
// synchronously from Evaluate and must be safe for concurrent use.
type Observer interface {
	Observe(ev Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev Event)

// Observe calls f(ev).
func (f ObserverFunc) Observe(ev Event) { f(ev) }

// NoOpObserver discards events.
type NoOpObserver struct{}

// Observe does nothing.
func (NoOpObserver) Observe(Event) {}

// MultiObserver fans events out to several observers in registration order.
type MultiObserver struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewMultiObserver returns a MultiObserver over the non-nil observers given.
func NewMultiObserver(observers ...Observer) *MultiObserver {
	m := &MultiObserver{}
	for _, o := range observers {
		m.Register(o)
	}
	return m
}

// Register adds an observer. Nil is ignored.
func (m *MultiObserver) Register(o Observer) {
	if o == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
}

// Len returns the number of registered observers.
func (m *MultiObserver) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.observers)
}

// Observe forwards ev to every registered observer.
func (m *MultiObserver) Observe(ev Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.observers {
		o.Observe(ev)
	}
}

// LoggingObserver logs evaluations at debug level and failures at error
// level.
type LoggingObserver struct {
	logger logging.Logger
}

// NewLoggingObserver returns an observer writing to logger.
func NewLoggingObserver(logger logging.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// Observe logs ev.
func (o *LoggingObserver) Observe(ev Event) {
	fields := []logging.Field{
		logging.String("op", ev.Op),
		logging.Int("bits", ev.Layout.Bits),
		logging.Int("word_bits", ev.Layout.WordBits),
		logging.Duration("duration", ev.Duration),
		logging.Bool("overflow", ev.Overflow),
	}
	if ev.Err != nil {
		o.logger.Error("evaluation failed", ev.Err, fields...)
		return
	}
	o.logger.Debug("evaluated", fields...)
}

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bncalc_operations_total",
			Help: "Evaluated operations by name, word width and status.",
		},
		[]string{"op", "word_bits", "status"},
	)
	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bncalc_operation_duration_seconds",
			Help:    "Duration of evaluations.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		},
		[]string{"op"},
	)
)

// MetricsObserver exports evaluation counts and durations to Prometheus.
type MetricsObserver struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsObserver returns an observer backed by the package collectors,
// registered once with the default registry.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{total: operationsTotal, duration: operationDuration}
}

// Observe records ev.
// Unregistered operation names are folded into "unknown".
func (o *MetricsObserver) Observe(ev Event) {
	op := ev.Op
	if _, ok := Lookup(op); !ok {
		op = "unknown"
	}
	o.total.WithLabelValues(op, strconv.Itoa(ev.Layout.WordBits), ev.Status()).Inc()
	if ev.Err == nil {
		o.duration.WithLabelValues(op).Observe(ev.Duration.Seconds())
	}
}
