package alert

import (
	"time"

	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
)

// Status is the persisted remediation status of an alert
type Status string

// Alert status
const (
	StatusActive     Status = "Active"
	StatusSafe       Status = "Safe"
	StatusRemediated Status = "Remediated"
)

// Statuses lists every persisted status
var Statuses = []Status{StatusActive, StatusSafe, StatusRemediated}

// Resolved reports whether no further remediation work is expected
func (s Status) Resolved() bool {
	return s == StatusRemediated || s == StatusSafe
}

// Alert is one classified traffic event and its remediation status
type Alert struct {
	ID            int64           `json:"id"`
	SourceAddress string          `json:"src_ip"`
	VerdictLabel  threat.Label    `json:"prediction"`
	Confidence    float64         `json:"confidence"`
	Severity      threat.Severity `json:"severity"`
	Status        Status          `json:"status"`
	OwnerID       *int64          `json:"user_id,omitempty"`
	CreatedAt     time.Time       `json:"timestamp"`
}

// InitialStatus is Active for threats and Safe otherwise
func InitialStatus(v threat.Verdict) Status {
	if v.IsThreat {
		return StatusActive
	}
	return StatusSafe
}

// New builds an unsaved alert from a verdict
func New(v threat.Verdict, sourceAddress string, ownerID *int64) *Alert {
	return &Alert{
		SourceAddress: sourceAddress,
		VerdictLabel:  v.Label,
		Confidence:    v.Confidence,
		Severity:      v.Severity,
		Status:        InitialStatus(v),
		OwnerID:       ownerID,
	}
}

// AlertSummary is returned to the caller of a classification
type AlertSummary struct {
	ID         int64           `json:"id"`
	IsThreat   bool            `json:"is_threat"`
	Confidence float64         `json:"confidence"`
	Severity   threat.Severity `json:"severity"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Aggregate holds counts over a set of alerts
type Aggregate struct {
	Total      int64
	Threats    int64
	BySeverity map[threat.Severity]int64
	ByStatus   map[Status]int64
	LatestAt   *time.Time
}

// NewAggregate returns an aggregate with every bucket present
func NewAggregate() *Aggregate {
	agg := &Aggregate{
		BySeverity: make(map[threat.Severity]int64, len(threat.Severities)),
		ByStatus:   make(map[Status]int64, len(Statuses)),
	}
	for _, s := range threat.Severities {
		agg.BySeverity[s] = 0
	}
	for _, s := range Statuses {
		agg.ByStatus[s] = 0
	}
	return agg
}

// Overview is the global alert summary
type Overview struct {
	Total      int64                     `json:"total"`
	Threats    int64                     `json:"threats"`
	ByStatus   map[Status]int64          `json:"by_status"`
	BySeverity map[threat.Severity]int64 `json:"by_severity"`
	LatestAt   *time.Time                `json:"latest_at,omitempty"`
}
