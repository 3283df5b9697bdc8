// Package store provides types.SnapshotStore implementations and the Recorder
// hook adapter that persists engine snapshots.
//
// The engine performs no I/O; persistence happens through its OnSnapshot hook:
//
//	st := store.NewMemory()
//	rec, _ := store.NewRecorder(st, "flat-42", 5*time.Second, logger)
//	engine, _ := kollektiv.NewEngine(&cfg, kollektiv.WithHooks(rec.Hooks()))
//
// Backends:
//   - Memory: in-process map
//   - NATSKV: NATS JetStream KeyValue bucket
//   - Redis: Redis string keys (go-redis)
//   - SQL: a relational table through database/sql (PostgreSQL dialect)
//
// Every backend rejects a snapshot older than the stored one with
// types.ErrStaleSnapshot.
package store
