package types

import (
	"time"

	"github.com/google/uuid"
)

// TaskID identifies a checklist task.
type TaskID string

// NewTaskID returns a fresh random task identity.
func NewTaskID() TaskID {
	return TaskID(uuid.NewString())
}

// TaskPriority ranks checklist tasks.
type TaskPriority string

// Task priorities.
const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task is one item of a room's cleaning checklist.
type Task struct {
	ID            TaskID       `json:"id" yaml:"id"`
	Name          string       `json:"name" yaml:"name"`
	Priority      TaskPriority `json:"priority,omitempty" yaml:"priority,omitempty"`
	Completed     bool         `json:"completed" yaml:"completed"`
	LastCompleted *time.Time   `json:"lastCompleted,omitempty" yaml:"lastCompleted,omitempty"`
}

// NewTask creates an open task with a fresh ID.
func NewTask(name string, priority TaskPriority) Task {
	return Task{ID: NewTaskID(), Name: name, Priority: priority}
}

type taskTemplate struct {
	name     string
	priority TaskPriority
}

var defaultChecklists = map[RoomCategory][]taskTemplate{
	CategoryKitchen: {
		{"Wipe counters and stovetop", PriorityHigh},
		{"Clean sink", PriorityMedium},
		{"Take out trash", PriorityHigh},
		{"Sweep and mop floor", PriorityMedium},
		{"Clean microwave", PriorityLow},
	},
	CategoryBathroom: {
		{"Clean toilet", PriorityHigh},
		{"Clean shower/bathtub", PriorityHigh},
		{"Clean sink and mirror", PriorityMedium},
		{"Sweep and mop floor", PriorityMedium},
		{"Empty trash", PriorityLow},
	},
	CategoryLivingRoom: {
		{"Vacuum floor", PriorityHigh},
		{"Dust furniture", PriorityMedium},
		{"Clean windows", PriorityLow},
		{"Organize common items", PriorityLow},
	},
}

// DefaultTasks returns a fresh default checklist for the category.
//
// Custom and unknown categories start with an empty checklist.
func DefaultTasks(category RoomCategory) []Task {
	templates := defaultChecklists[category]
	tasks := make([]Task, 0, len(templates))
	for _, tpl := range templates {
		tasks = append(tasks, NewTask(tpl.name, tpl.priority))
	}

	return tasks
}
