package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Skaland01/Kollektiv/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use, so constructing
// one that is never exercised leaves the registry untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	distributions     prometheus.Counter
	distributedRooms  prometheus.Histogram
	distributeLatency prometheus.Histogram

	rotations      *prometheus.CounterVec
	rebalanceMoves prometheus.Counter
	rotateLatency  prometheus.Histogram

	scheduleWeeks   prometheus.Histogram
	scheduleLatency prometheus.Histogram

	loadSpread prometheus.Gauge
	memberLoad *prometheus.GaugeVec
}

var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Metrics namespace (defaults to "kollektiv" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "kollektiv"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		latencyBuckets := prometheus.ExponentialBuckets(0.00005, 4, 8) // 50µs .. ~0.8s

		p.distributions = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "distribution",
			Name:      "runs_total",
			Help:      "Total completed distributions.",
		})
		p.distributedRooms = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "distribution",
			Name:      "rooms",
			Help:      "Rooms handed out per distribution.",
			Buckets:   prometheus.LinearBuckets(1, 2, 10),
		})
		p.distributeLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "distribution",
			Name:      "duration_seconds",
			Help:      "Distribution latency in seconds.",
			Buckets:   latencyBuckets,
		})

		p.rotations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "rotation",
			Name:      "runs_total",
			Help:      "Total rotation attempts by result (success|failure).",
		}, []string{"result"})
		p.rebalanceMoves = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "rotation",
			Name:      "rebalance_moves_total",
			Help:      "Total single-room transfers made by the rebalancing pass.",
		})
		p.rotateLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "rotation",
			Name:      "duration_seconds",
			Help:      "Rotation latency in seconds.",
			Buckets:   latencyBuckets,
		})

		p.scheduleWeeks = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "schedule",
			Name:      "weeks",
			Help:      "Weeks produced per schedule generation.",
			Buckets:   []float64{1, 2, 4, 8, 13, 26, 52},
		})
		p.scheduleLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "schedule",
			Name:      "duration_seconds",
			Help:      "Schedule generation latency in seconds.",
			Buckets:   latencyBuckets,
		})

		p.loadSpread = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "load",
			Name:      "spread",
			Help:      "Current max-min historical load across members.",
		})
		p.memberLoad = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "load",
			Name:      "member_rooms",
			Help:      "Cumulative rooms received per member.",
		}, []string{"member"})

		p.reg.MustRegister(p.distributions)
		p.reg.MustRegister(p.distributedRooms)
		p.reg.MustRegister(p.distributeLatency)
		p.reg.MustRegister(p.rotations)
		p.reg.MustRegister(p.rebalanceMoves)
		p.reg.MustRegister(p.rotateLatency)
		p.reg.MustRegister(p.scheduleWeeks)
		p.reg.MustRegister(p.scheduleLatency)
		p.reg.MustRegister(p.loadSpread)
		p.reg.MustRegister(p.memberLoad)
	})
}

// DistributionMetrics implementation

// RecordDistribution counts a completed distribution and observes its size and latency.
func (p *PrometheusCollector) RecordDistribution(rooms, _ /* members */ int, duration float64) {
	p.ensureRegistered()
	p.distributions.Inc()
	p.distributedRooms.Observe(float64(rooms))
	p.distributeLatency.Observe(duration)
}

// RotationMetrics implementation

// RecordRotation counts a rotation by result and adds its rebalancing moves.
func (p *PrometheusCollector) RecordRotation(moves int, success bool, duration float64) {
	p.ensureRegistered()
	if !success {
		p.rotations.WithLabelValues("failure").Inc()
		return
	}

	p.rotations.WithLabelValues("success").Inc()
	p.rebalanceMoves.Add(float64(moves))
	p.rotateLatency.Observe(duration)
}

// ScheduleMetrics implementation

// RecordScheduleGenerated observes the number of generated weeks and the latency.
func (p *PrometheusCollector) RecordScheduleGenerated(weeks int, duration float64) {
	p.ensureRegistered()
	p.scheduleWeeks.Observe(float64(weeks))
	p.scheduleLatency.Observe(duration)
}

// LoadMetrics implementation

// RecordLoadSpread sets the spread gauge.
func (p *PrometheusCollector) RecordLoadSpread(spread int) {
	p.ensureRegistered()
	p.loadSpread.Set(float64(spread))
}

// RecordMemberLoad sets the load gauge of one member.
func (p *PrometheusCollector) RecordMemberLoad(memberID types.MemberID, load int) {
	p.ensureRegistered()
	p.memberLoad.WithLabelValues(string(memberID)).Set(float64(load))
}
