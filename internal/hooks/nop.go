// Package hooks provides helpers for building types.Hooks values.
package hooks

import (
	"context"

	"github.com/Skaland01/Kollektiv/types"
)

// NopHooks implements every hook callback as a no-op.
//
// The engine fills unset callbacks from it so call sites never nil-check.
type NopHooks struct{}

var (
	_ func(context.Context, string, types.Assignments) error = (*NopHooks)(nil).OnAssignmentsChanged
	_ func(context.Context, []types.WeekEntry) error         = (*NopHooks)(nil).OnScheduleGenerated
	_ func(context.Context, types.Snapshot) error            = (*NopHooks)(nil).OnSnapshot
	_ func(context.Context, error) error                     = (*NopHooks)(nil).OnError
)

// NewNop creates hooks whose callbacks all return nil.
func NewNop() *types.Hooks {
	h := &NopHooks{}
	return &types.Hooks{
		OnAssignmentsChanged: h.OnAssignmentsChanged,
		OnScheduleGenerated:  h.OnScheduleGenerated,
		OnSnapshot:           h.OnSnapshot,
		OnError:              h.OnError,
	}
}

// OnAssignmentsChanged is a no-op implementation.
func (h *NopHooks) OnAssignmentsChanged(_ context.Context, _ string, _ types.Assignments) error {
	return nil
}

// OnScheduleGenerated is a no-op implementation.
func (h *NopHooks) OnScheduleGenerated(_ context.Context, _ []types.WeekEntry) error {
	return nil
}

// OnSnapshot is a no-op implementation.
func (h *NopHooks) OnSnapshot(_ context.Context, _ types.Snapshot) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(_ context.Context, _ error) error {
	return nil
}

// Fill returns a copy of h with every nil callback replaced by a no-op.
//
// A nil h yields NewNop().
func Fill(h *types.Hooks) *types.Hooks {
	nop := NewNop()
	if h == nil {
		return nop
	}

	out := *h
	if out.OnAssignmentsChanged == nil {
		out.OnAssignmentsChanged = nop.OnAssignmentsChanged
	}
	if out.OnScheduleGenerated == nil {
		out.OnScheduleGenerated = nop.OnScheduleGenerated
	}
	if out.OnSnapshot == nil {
		out.OnSnapshot = nop.OnSnapshot
	}
	if out.OnError == nil {
		out.OnError = nop.OnError
	}

	return &out
}
