package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/pratik-mahalle/threatwatch/internal/domain/notification"
	"github.com/pratik-mahalle/threatwatch/internal/domain/user"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
)

const userColumns = "id, email, username, phone, password_hash, email_alerts, sms_alerts, weekly_reports, created_at, updated_at"

// UserRepository implements user.Repository
type UserRepository struct {
	db     *sql.DB
	driver string
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, driverName string) *UserRepository {
	return &UserRepository{db: db, driver: driverName}
}

func (r *UserRepository) q(query string) string {
	return rebind(r.driver, query)
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	defer observe("users", "insert", time.Now())

	now := time.Now().UTC().Truncate(time.Microsecond)

	query := r.q(`
		INSERT INTO users (email, username, phone, password_hash, email_alerts, sms_alerts, weekly_reports, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := r.db.QueryRowContext(ctx, query,
		u.Email, u.Username, u.Phone, u.PasswordHash,
		u.Preferences.EmailAlerts, u.Preferences.SMSAlerts, u.Preferences.WeeklyReports,
		formatTime(now), formatTime(now),
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict("Email already registered")
		}
		return errors.PersistenceFailure("Failed to create user", err)
	}

	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, "email = ?", strings.ToLower(email))
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg interface{}) (*user.User, error) {
	defer observe("users", "select", time.Now())

	row := r.db.QueryRowContext(ctx, r.q("SELECT "+userColumns+" FROM users WHERE "+where), arg)
	u, err := scanUser(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.PersistenceFailure("Failed to get user", err)
	}
	return u, nil
}

// UpdatePreferences replaces a user's phone and notification switches
func (r *UserRepository) UpdatePreferences(ctx context.Context, id int64, phone string, prefs user.Preferences) error {
	defer observe("users", "update", time.Now())

	result, err := r.db.ExecContext(ctx, r.q(`
		UPDATE users SET phone = ?, email_alerts = ?, sms_alerts = ?, weekly_reports = ?, updated_at = ?
		WHERE id = ?
	`), phone, prefs.EmailAlerts, prefs.SMSAlerts, prefs.WeeklyReports, formatTime(time.Now()), id)
	if err != nil {
		return errors.PersistenceFailure("Failed to update preferences", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.PersistenceFailure("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}
	return nil
}

var preferenceColumns = map[user.Preference]bool{
	user.PreferenceEmailAlerts:   true,
	user.PreferenceSMSAlerts:     true,
	user.PreferenceWeeklyReports: true,
}

// ListByPreference returns every user with the preference enabled, oldest first
func (r *UserRepository) ListByPreference(ctx context.Context, pref user.Preference) ([]*user.User, error) {
	if !preferenceColumns[pref] {
		return nil, errors.BadRequest("Unknown preference " + string(pref))
	}
	defer observe("users", "select", time.Now())

	rows, err := r.db.QueryContext(ctx,
		r.q("SELECT "+userColumns+" FROM users WHERE "+string(pref)+" = ? ORDER BY id"), true)
	if err != nil {
		return nil, errors.PersistenceFailure("Failed to list users", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errors.PersistenceFailure("Failed to scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.PersistenceFailure("Failed to iterate users", err)
	}
	return users, nil
}

// ListRecipients implements notification.Directory
func (r *UserRepository) ListRecipients(ctx context.Context, channel notification.Channel) ([]notification.Recipient, error) {
	pref := user.PreferenceEmailAlerts
	if channel == notification.ChannelSMS {
		pref = user.PreferenceSMSAlerts
	}

	users, err := r.ListByPreference(ctx, pref)
	if err != nil {
		return nil, err
	}

	recipients := make([]notification.Recipient, 0, len(users))
	for _, u := range users {
		addr := u.Email
		if channel == notification.ChannelSMS {
			addr = u.Phone
		}
		if addr == "" {
			continue
		}
		recipients = append(recipients, notification.Recipient{UserID: u.ID, Address: addr})
	}
	return recipients, nil
}

// GetPreferences implements notification.Directory
func (r *UserRepository) GetPreferences(ctx context.Context, ownerID int64) (*notification.OwnerPreferences, error) {
	u, err := r.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &notification.OwnerPreferences{
		EmailEnabled:     u.Preferences.EmailAlerts,
		SecondaryEnabled: u.Preferences.SMSAlerts,
		EmailAddress:     u.Email,
		SecondaryAddress: u.Phone,
	}, nil
}

func scanUser(s rowScanner) (*user.User, error) {
	var (
		u                    user.User
		createdAt, updatedAt dbTime
	)
	err := s.Scan(&u.ID, &u.Email, &u.Username, &u.Phone, &u.PasswordHash,
		&u.Preferences.EmailAlerts, &u.Preferences.SMSAlerts, &u.Preferences.WeeklyReports,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time
	return &u, nil
}

// isUniqueViolation matches both sqlite and postgres messages
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
