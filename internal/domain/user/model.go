package user

import "time"

// User represents a user in the system
type User struct {
	ID           int64       `json:"id"`
	Email        string      `json:"email"`
	Username     string      `json:"username,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	PasswordHash string      `json:"-"` // Not exposed in JSON
	Preferences  Preferences `json:"preferences"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Preferences holds per-user notification switches
type Preferences struct {
	EmailAlerts   bool `json:"email_alerts"`
	SMSAlerts     bool `json:"sms_alerts"`
	WeeklyReports bool `json:"weekly_reports"`
}

// DefaultPreferences are applied at registration
func DefaultPreferences() Preferences {
	return Preferences{EmailAlerts: true, SMSAlerts: false, WeeklyReports: true}
}

// Preference names a boolean preference column
type Preference string

const (
	PreferenceEmailAlerts   Preference = "email_alerts"
	PreferenceSMSAlerts     Preference = "sms_alerts"
	PreferenceWeeklyReports Preference = "weekly_reports"
)
