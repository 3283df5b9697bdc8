// Package metrics provides types.MetricsCollector implementations.
package metrics

import "github.com/Skaland01/Kollektiv/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. It is the engine default.
type NopMetrics struct{}

var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Example:
//
//	engine, _ := kollektiv.NewEngine(&cfg, kollektiv.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// DistributionMetrics implementation

// RecordDistribution discards the distribution metric.
func (n *NopMetrics) RecordDistribution(_ /* rooms */, _ /* members */ int, _ /* duration */ float64) {
}

// RotationMetrics implementation

// RecordRotation discards the rotation metric.
func (n *NopMetrics) RecordRotation(_ /* moves */ int, _ /* success */ bool, _ /* duration */ float64) {
}

// ScheduleMetrics implementation

// RecordScheduleGenerated discards the schedule metric.
func (n *NopMetrics) RecordScheduleGenerated(_ /* weeks */ int, _ /* duration */ float64) {}

// LoadMetrics implementation

// RecordLoadSpread discards the spread gauge.
func (n *NopMetrics) RecordLoadSpread(_ /* spread */ int) {}

// RecordMemberLoad discards the member load gauge.
func (n *NopMetrics) RecordMemberLoad(_ /* memberID */ types.MemberID, _ /* load */ int) {}
