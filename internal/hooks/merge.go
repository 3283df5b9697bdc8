package hooks

import (
	"context"
	"errors"

	"github.com/Skaland01/Kollektiv/types"
)

// Merge combines several hook sets into one.
//
// Each merged callback invokes the corresponding callback of every set in
// argument order, even when an earlier one fails, and returns the joined
// errors. Nil sets and nil callbacks are skipped.
//
// Example:
//
//	rec, _ := store.NewRecorder(st, cfg.CollectiveID, cfg.Store.OperationTimeout, logger)
//	engine, _ := kollektiv.NewEngine(&cfg, kollektiv.WithHooks(hooks.Merge(rec.Hooks(), notifyHooks)))
func Merge(sets ...*types.Hooks) *types.Hooks {
	return &types.Hooks{
		OnAssignmentsChanged: func(ctx context.Context, reason string, a types.Assignments) error {
			var errs []error
			for _, h := range sets {
				if h != nil && h.OnAssignmentsChanged != nil {
					errs = append(errs, h.OnAssignmentsChanged(ctx, reason, a))
				}
			}

			return errors.Join(errs...)
		},
		OnScheduleGenerated: func(ctx context.Context, entries []types.WeekEntry) error {
			var errs []error
			for _, h := range sets {
				if h != nil && h.OnScheduleGenerated != nil {
					errs = append(errs, h.OnScheduleGenerated(ctx, entries))
				}
			}

			return errors.Join(errs...)
		},
		OnSnapshot: func(ctx context.Context, snap types.Snapshot) error {
			var errs []error
			for _, h := range sets {
				if h != nil && h.OnSnapshot != nil {
					errs = append(errs, h.OnSnapshot(ctx, snap))
				}
			}

			return errors.Join(errs...)
		},
		OnError: func(ctx context.Context, err error) error {
			var errs []error
			for _, h := range sets {
				if h != nil && h.OnError != nil {
					errs = append(errs, h.OnError(ctx, err))
				}
			}

			return errors.Join(errs...)
		},
	}
}
