// Package types provides core type definitions and interfaces for the Kollektiv engine.
//
// This package contains shared types that are used across multiple packages in the
// module. By keeping these types in a separate package, we avoid import cycles
// between the root kollektiv package, the strategy package and the stores.
//
// Key types:
//   - Room: A cleanable space with its task checklist and cleaning cadence
//   - Member: A household member participating in distribution
//   - Assignments: The member-to-rooms ledger for one week
//   - WeekEntry: An immutable weekly schedule record
//   - Snapshot: Serializable view of the engine ledgers
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
