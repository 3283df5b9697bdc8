// Package kollektiv provides a room distribution and rotation engine for
// shared households.
//
// A collective's shared rooms are assigned to its members fairly, rotated
// week over week, and pre-computed into a multi-week schedule. The engine
// remembers how many rooms each member has been given and biases new
// distributions toward members who have done less.
//
// # Quick Start
//
//	cfg := kollektiv.DefaultConfig()
//	cfg.CollectiveID = "flat-42"
//
//	eng, err := kollektiv.NewEngine(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rooms := []kollektiv.Room{
//	    kollektiv.NewRoom("Kitchen", kollektiv.CategoryKitchen),
//	    kollektiv.NewRoom("Bathroom", kollektiv.CategoryBathroom),
//	}
//	members := []kollektiv.Member{{ID: "ola"}, {ID: "kari"}}
//
//	entries, err := eng.GenerateSchedule(ctx, rooms, members, 4)
//	mine := eng.UpcomingAssignmentsFor("ola", 4)
//
// # Key Features
//
//   - Fairness Distribution: Members with lower historical load receive rooms first
//   - Whole-Bucket Rotation: Each member takes over the next member's rooms every week
//   - Rebalancing: Uneven buckets are evened out after every rotation
//   - ISO Weeks: Schedules are keyed by ISO-8601 week, Monday to Sunday
//   - Snapshots: State can be persisted through hooks to NATS KV, Redis or Postgres
//
// # Architecture
//
// Data flows in one direction:
//
//	GenerateSchedule → Rotator → Distributor
//
// and every run adds to the Historical Load Ledger, which feeds the next one.
// The engine never performs I/O; attach a store.Recorder with WithHooks to
// persist a snapshot after every mutation.
//
// # Advanced Usage
//
//	rec, _ := store.NewRecorder(store.NewMemory(), cfg.CollectiveID, store.DefaultTimeout, logger)
//	eng, _ := kollektiv.NewEngine(&cfg,
//	    kollektiv.WithRotator(strategy.NewRotator(strategy.WithTolerance(1))),
//	    kollektiv.WithHooks(rec.Hooks()),
//	    kollektiv.WithMetrics(metrics.NewPrometheus(prometheus.DefaultRegisterer, "kollektiv")),
//	)
//
// See the examples/ directory and cmd/kollektiv for complete programs.
package kollektiv
