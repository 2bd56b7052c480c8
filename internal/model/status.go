package model

// TaskStatus is the lifecycle position of a fetch or conversion task:
//
//	Pending -> Starting -> Running -> Completed | Stopped | Error
//
// Stopping sits between Running and Stopped while the process is torn down.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "Pending"
	TaskStatusStarting  TaskStatus = "Starting"
	TaskStatusRunning   TaskStatus = "Running"
	TaskStatusStopping  TaskStatus = "Stopping"
	TaskStatusStopped   TaskStatus = "Stopped"
	TaskStatusCompleted TaskStatus = "Completed"
	TaskStatusError     TaskStatus = "Error"
)

func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive reports whether a process is attached to the task
func (ts TaskStatus) IsActive() bool {
	switch ts {
	case TaskStatusStarting, TaskStatusRunning, TaskStatusStopping:
		return true
	}
	return false
}

// IsFinished reports whether the task reached a terminal status
func (ts TaskStatus) IsFinished() bool {
	switch ts {
	case TaskStatusCompleted, TaskStatusStopped, TaskStatusError:
		return true
	}
	return false
}

// CanStop reports whether a stop request would change anything
func (ts TaskStatus) CanStop() bool {
	return ts == TaskStatusPending || ts == TaskStatusStarting || ts == TaskStatusRunning
}
