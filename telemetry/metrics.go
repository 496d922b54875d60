package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is the Prometheus-backed counter/histogram set a context reports
// compilation and execution activity through. Disable lets a caller hold a
// Metrics instance without paying for collection, e.g. in tests.
type Metrics struct {
	mu      sync.RWMutex
	enabled bool

	functionsWritten prometheus.Counter
	functionsReused   prometheus.Counter
	executions        prometheus.Counter
	executionErrors   prometheus.Counter
	compileLatency    prometheus.Histogram
	lineCount         prometheus.Histogram
}

// NewMetrics registers the executor's collectors against registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)
	return &Metrics{
		enabled: true,
		functionsWritten: factory.NewCounter(prometheus.CounterOpts{
			Name: "gcexec_functions_written_total",
			Help: "Number of functions newly emitted and installed.",
		}),
		functionsReused: factory.NewCounter(prometheus.CounterOpts{
			Name: "gcexec_functions_reused_total",
			Help: "Number of WriteExecutable calls short-circuited by an adequate existing function.",
		}),
		executions: factory.NewCounter(prometheus.CounterOpts{
			Name: "gcexec_executions_total",
			Help: "Number of Execute calls.",
		}),
		executionErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "gcexec_execution_errors_total",
			Help: "Number of Execute calls that returned an error.",
		}),
		compileLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gcexec_compile_seconds",
			Help:    "Wall-clock time spent inside a single WriteExecutable call.",
			Buckets: prometheus.DefBuckets,
		}),
		lineCount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gcexec_function_line_count",
			Help:    "Line count of each newly emitted function.",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024},
		}),
	}
}

func (m *Metrics) RecordFunctionWritten(lines int) {
	if !m.isEnabled() {
		return
	}
	m.functionsWritten.Inc()
	m.lineCount.Observe(float64(lines))
}

func (m *Metrics) RecordFunctionReused() {
	if m.isEnabled() {
		m.functionsReused.Inc()
	}
}

func (m *Metrics) RecordExecution(err error) {
	if !m.isEnabled() {
		return
	}
	m.executions.Inc()
	if err != nil {
		m.executionErrors.Inc()
	}
}

func (m *Metrics) RecordCompileSeconds(s float64) {
	if m.isEnabled() {
		m.compileLatency.Observe(s)
	}
}

func (m *Metrics) Disable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = false
}

func (m *Metrics) Enable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = true
}

func (m *Metrics) isEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}
