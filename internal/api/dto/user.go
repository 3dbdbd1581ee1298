package dto

import "github.com/pratik-mahalle/threatwatch/internal/domain/user"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          int64          `json:"id"`
	Email       string         `json:"email"`
	Username    string         `json:"username,omitempty"`
	Phone       string         `json:"phone,omitempty"`
	Preferences PreferencesDTO `json:"preferences"`
}

// PreferencesDTO mirrors the notification switches
type PreferencesDTO struct {
	EmailAlerts   bool   `json:"email_alerts"`
	SMSAlerts     bool   `json:"sms_alerts"`
	WeeklyReports bool   `json:"weekly_reports"`
	Phone         string `json:"phone,omitempty"`
}

// UpdatePreferencesRequest replaces every switch at once
type UpdatePreferencesRequest struct {
	EmailAlerts   bool   `json:"email_alerts"`
	SMSAlerts     bool   `json:"sms_alerts"`
	WeeklyReports bool   `json:"weekly_reports"`
	Phone         string `json:"phone,omitempty" validate:"omitempty,e164"`
}

// ToPreferences converts the request to the domain value
func (r UpdatePreferencesRequest) ToPreferences() user.Preferences {
	return user.Preferences{
		EmailAlerts:   r.EmailAlerts,
		SMSAlerts:     r.SMSAlerts,
		WeeklyReports: r.WeeklyReports,
	}
}

// NewUserDTO converts a domain user
func NewUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Phone:    u.Phone,
		Preferences: PreferencesDTO{
			EmailAlerts:   u.Preferences.EmailAlerts,
			SMSAlerts:     u.Preferences.SMSAlerts,
			WeeklyReports: u.Preferences.WeeklyReports,
			Phone:         u.Phone,
		},
	}
}

// SubscribeRequest signs an address up for the newsletter
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}
