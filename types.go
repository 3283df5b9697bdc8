package kollektiv

import "github.com/Skaland01/Kollektiv/types"

// Re-export types from the internal types package.
//
// Internal packages depend on `types` only, while users get the convenient
// `kollektiv.Room`, `kollektiv.Logger`, etc. from the root package.
type (
	Room          = types.Room
	RoomID        = types.RoomID
	RoomCategory  = types.RoomCategory
	Cadence       = types.Cadence
	Task          = types.Task
	TaskID        = types.TaskID
	TaskPriority  = types.TaskPriority
	Member        = types.Member
	MemberID      = types.MemberID
	Role          = types.Role
	Assignments   = types.Assignments
	WeekKey       = types.WeekKey
	WeekEntry     = types.WeekEntry
	UpcomingWeek  = types.UpcomingWeek
	Snapshot      = types.Snapshot
	ScheduleEntry = types.ScheduleRecord

	InvalidStateError = types.InvalidStateError
)

// Re-export interfaces from the internal types package for convenience.
type (
	Distributor      = types.Distributor
	Rotator          = types.Rotator
	LoadTracker      = types.LoadTracker
	HouseholdSource  = types.HouseholdSource
	SnapshotStore    = types.SnapshotStore
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
	Hooks            = types.Hooks
)

// Re-export constants from the internal types package.
const (
	CategoryKitchen    = types.CategoryKitchen
	CategoryBathroom   = types.CategoryBathroom
	CategoryLivingRoom = types.CategoryLivingRoom
	CategoryCustom     = types.CategoryCustom

	CadenceWeekly   = types.CadenceWeekly
	CadenceBiweekly = types.CadenceBiweekly
	CadenceMonthly  = types.CadenceMonthly

	PriorityLow    = types.PriorityLow
	PriorityMedium = types.PriorityMedium
	PriorityHigh   = types.PriorityHigh

	RoleAdmin  = types.RoleAdmin
	RoleMember = types.RoleMember
)

// Hook reasons passed to Hooks.OnAssignmentsChanged.
const (
	ReasonDistribute = types.ReasonDistribute
	ReasonRotate     = types.ReasonRotate
	ReasonSchedule   = types.ReasonSchedule
	ReasonRestore    = types.ReasonRestore
)

// NewRoom creates a weekly room with a fresh ID and the default checklist for its category.
//
// Example:
//
//	kitchen := kollektiv.NewRoom("Kitchen", kollektiv.CategoryKitchen)
func NewRoom(name string, category RoomCategory) Room {
	return types.NewRoom(name, category)
}
