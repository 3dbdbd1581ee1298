package remediation

import (
	"fmt"
	"time"

	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
)

// Action is an operator-driven status transition
type Action string

const (
	ActionApprove  Action = "Approve"
	ActionRetry    Action = "Retry"
	ActionRollback Action = "Rollback"
	ActionStop     Action = "Stop"
)

var transitions = map[Action]alert.Status{
	ActionApprove:  alert.StatusRemediated,
	ActionRetry:    alert.StatusActive,
	ActionRollback: alert.StatusActive,
	ActionStop:     alert.StatusSafe,
}

// ParseAction returns the action named s. Names are case sensitive.
func ParseAction(s string) (Action, bool) {
	a := Action(s)
	_, ok := transitions[a]
	return a, ok
}

// Target is the status an alert ends in after the action.
// Every action is unconditional, so applying it twice is a no-op.
func (a Action) Target() alert.Status {
	return transitions[a]
}

// Playbooks
const (
	PlaybookIsolateHost = "Isolate Host & Kill Process"
	PlaybookBlockIP     = "Block IP & Reset Session"
	PlaybookRateLimit   = "WAF Rate Limiting"
	PlaybookFirewall    = "Basic Firewall Rule"
)

// PlaybookFor returns the recommended response procedure for a severity
func PlaybookFor(s threat.Severity) string {
	switch s {
	case threat.SeverityCritical:
		return PlaybookIsolateHost
	case threat.SeverityHigh:
		return PlaybookBlockIP
	case threat.SeverityMedium:
		return PlaybookRateLimit
	default:
		return PlaybookFirewall
	}
}

// ProgressFor is a display-only completion percentage
func ProgressFor(status alert.Status, id int64) int {
	if status.Resolved() {
		return 100
	}
	return int((id*7)%90) + 10
}

// Task types and display statuses
const (
	TypeAutomated = "Automated"
	TypeManual    = "Manual"

	TaskCompleted  = "Completed"
	TaskInProgress = "In Progress"

	durationCompleted = "45s"
	durationRunning   = "Running..."
)

// Task is a read-only view of an alert as a remediation job
type Task struct {
	ID        int64     `json:"id"`
	Threat    string    `json:"threat"`
	Playbook  string    `json:"playbook"`
	Type      string    `json:"type"`
	StartTime time.Time `json:"startTime"`
	Duration  string    `json:"duration"`
	Progress  int       `json:"progress"`
	Status    string    `json:"status"`
}

// TaskFromAlert derives a task. Nothing here is persisted.
func TaskFromAlert(a *alert.Alert) Task {
	t := Task{
		ID:        a.ID,
		Threat:    fmt.Sprintf("%s detected from %s", a.VerdictLabel, a.SourceAddress),
		Playbook:  PlaybookFor(a.Severity),
		Type:      TypeManual,
		StartTime: a.CreatedAt,
		Progress:  ProgressFor(a.Status, a.ID),
	}
	if a.Severity == threat.SeverityCritical || a.Severity == threat.SeverityHigh {
		t.Type = TypeAutomated
	}
	if a.Status.Resolved() {
		t.Status = TaskCompleted
		t.Duration = durationCompleted
	} else {
		t.Status = TaskInProgress
		t.Duration = durationRunning
	}
	return t
}

// ActionResult confirms an applied action
type ActionResult struct {
	Message string       `json:"message"`
	Status  alert.Status `json:"status"`
}

// ExecuteResult is returned by the playbook simulation path
type ExecuteResult struct {
	Message string `json:"message"`
	TaskID  int64  `json:"task_id"`
}
