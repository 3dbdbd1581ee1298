package client

import "time"

// FeatureRecord is one network flow submitted for classification
type FeatureRecord struct {
	SrcIP    string  `json:"srcip"`
	SrcPort  int     `json:"srcport,omitempty"`
	DstIP    string  `json:"dstip,omitempty"`
	DstPort  int     `json:"dstport,omitempty"`
	Proto    string  `json:"proto,omitempty"`
	Service  string  `json:"service,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Bytes    int64   `json:"bytes,omitempty"`
	Packets  int64   `json:"packets,omitempty"`
}

// AlertSummary is the result of a classification
type AlertSummary struct {
	ID         int64     `json:"id"`
	IsThreat   bool      `json:"is_threat"`
	Confidence float64   `json:"confidence"`
	Severity   string    `json:"severity"`
	Timestamp  time.Time `json:"timestamp"`
}

// Alert is a stored classification and its remediation status
type Alert struct {
	ID         int64     `json:"id"`
	SrcIP      string    `json:"src_ip"`
	Prediction string    `json:"prediction"`
	Confidence float64   `json:"confidence"`
	Severity   string    `json:"severity"`
	Status     string    `json:"status"`
	UserID     *int64    `json:"user_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Overview is the global alert summary
type Overview struct {
	Total      int64            `json:"total"`
	Threats    int64            `json:"threats"`
	ByStatus   map[string]int64 `json:"by_status"`
	BySeverity map[string]int64 `json:"by_severity"`
	LatestAt   *time.Time       `json:"latest_at,omitempty"`
}

// SecurityEvent is a log-style view of an alert
type SecurityEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Event     string    `json:"event"`
	Source    string    `json:"source"`
	User      string    `json:"user"`
	IP        string    `json:"ip"`
	Message   string    `json:"message"`
	TraceID   string    `json:"trace_id"`
}

// Bucket is one slice of a dashboard distribution
type Bucket struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Color string `json:"color"`
}

// Stats is the dashboard summary
type Stats struct {
	TotalScans           int64    `json:"total_scans"`
	TotalThreats         int64    `json:"total_threats"`
	SeverityDistribution []Bucket `json:"severity_distribution"`
	StatusDistribution   []Bucket `json:"status_distribution"`
}

// Task is an alert viewed as a remediation job
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

// ActionResult confirms an applied remediation action
type ActionResult struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ExecuteResult is returned when a playbook run is requested
type ExecuteResult struct {
	Message string `json:"message"`
	TaskID  int64  `json:"task_id"`
}

// Preferences holds notification settings
type Preferences struct {
	EmailAlerts   bool   `json:"email_alerts"`
	SMSAlerts     bool   `json:"sms_alerts"`
	WeeklyReports bool   `json:"weekly_reports"`
	Phone         string `json:"phone,omitempty"`
}

// User is the authenticated account
type User struct {
	ID          int64       `json:"id"`
	Email       string      `json:"email"`
	Username    string      `json:"username,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Preferences Preferences `json:"preferences"`
}

// AuthResponse is returned by login, register and refresh
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	User         *User  `json:"user,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse map[string]string
