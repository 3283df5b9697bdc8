// Package strategy provides the built-in distribution and rotation algorithms.
//
// The package includes:
//
//   - Fairness: Distributes rooms round-robin over members sorted by historical
//     load, letting underloaded members pick up rooms beyond the average (default)
//   - RoundRobin: Plain modulo distribution that ignores history
//   - Rotator: Hands whole buckets to the next member in id order, then moves
//     single rooms from overloaded to underloaded members
//
// # Strategy Selection Guide
//
// Fairness:
//   - Use for real households: members who received fewer rooms in the past
//     are served first, keeping the long-run load spread bounded
//   - Deterministic for the same rooms, members and load ledger
//
// RoundRobin:
//   - Use when history must not influence the result (previews, tests)
//   - Room i goes to member i mod N in input order
//
// Rotator:
//   - Used by the engine for every week after the first
//   - O(members) handoff that keeps rooms grouped per bucket
//
// Custom strategies can be implemented by satisfying types.Distributor or
// types.Rotator.
package strategy
