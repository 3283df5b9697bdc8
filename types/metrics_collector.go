package types

// MetricsCollector defines methods for recording engine metrics.
//
// Implementations should be non-blocking and must be thread-safe: engines
// of different collectives may share one collector.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	DistributionMetrics
	RotationMetrics
	ScheduleMetrics
	LoadMetrics
}

// DistributionMetrics defines metrics for distribution runs.
type DistributionMetrics interface {
	// RecordDistribution records a completed distribution.
	//
	// Parameters:
	//   - rooms: Number of rooms distributed
	//   - members: Number of participating members
	//   - duration: Time taken in seconds
	RecordDistribution(rooms, members int, duration float64)
}

// RotationMetrics defines metrics for rotation runs.
type RotationMetrics interface {
	// RecordRotation records a rotation attempt.
	//
	// Parameters:
	//   - moves: Rooms moved by the rebalancing pass
	//   - success: false when the rotation was rejected
	//   - duration: Time taken in seconds
	RecordRotation(moves int, success bool, duration float64)
}

// ScheduleMetrics defines metrics for schedule generation.
type ScheduleMetrics interface {
	// RecordScheduleGenerated records a generated schedule.
	//
	// Parameters:
	//   - weeks: Number of weeks produced
	//   - duration: Time taken in seconds
	RecordScheduleGenerated(weeks int, duration float64)
}

// LoadMetrics defines gauges over the Historical Load Ledger.
type LoadMetrics interface {
	// RecordLoadSpread sets the current max-min historical load difference.
	RecordLoadSpread(spread int)

	// RecordMemberLoad sets the historical load of one member.
	RecordMemberLoad(memberID MemberID, load int)
}
