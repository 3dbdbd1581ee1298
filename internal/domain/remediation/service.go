package remediation

import "context"

// TaskLimit bounds the task list
const TaskLimit = 20

// Service defines the remediation service interface
type Service interface {
	// ListTasks returns the latest alerts across all owners as tasks
	ListTasks(ctx context.Context) ([]Task, error)

	// PerformAction applies an operator action to an alert
	PerformAction(ctx context.Context, alertID int64, action string) (*ActionResult, error)

	// ExecutePlaybook records a simulated critical alert for drills
	ExecutePlaybook(ctx context.Context) (*ExecuteResult, error)
}
