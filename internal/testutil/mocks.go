package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
	"github.com/pratik-mahalle/threatwatch/internal/domain/notification"
	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
	"github.com/pratik-mahalle/threatwatch/internal/domain/user"
	"github.com/pratik-mahalle/threatwatch/internal/events"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
)

// MockAlertRepository is an in-memory alert.Repository
type MockAlertRepository struct {
	mu          sync.Mutex
	Alerts      map[int64]*alert.Alert
	NextID      int64
	Clock       func() time.Time
	CreateError error
	UpdateError error
	ListError   error
}

func NewMockAlertRepository() *MockAlertRepository {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var tick int64
	return &MockAlertRepository{
		Alerts: make(map[int64]*alert.Alert),
		NextID: 1,
		Clock: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		},
	}
}

func (m *MockAlertRepository) Create(ctx context.Context, a *alert.Alert) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return 0, m.CreateError
	}
	a.ID = m.NextID
	a.CreatedAt = m.Clock()
	m.NextID++

	stored := *a
	m.Alerts[a.ID] = &stored
	return a.ID, nil
}

func (m *MockAlertRepository) GetByID(ctx context.Context, id int64) (*alert.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.Alerts[id]
	if !ok {
		return nil, errors.NotFound("Alert")
	}
	cp := *a
	return &cp, nil
}

func (m *MockAlertRepository) ListRecent(ctx context.Context, ownerID *int64, limit int) ([]*alert.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListError != nil {
		return nil, m.ListError
	}

	var out []*alert.Alert
	for _, a := range m.Alerts {
		if ownerID != nil && (a.OwnerID == nil || *a.OwnerID != *ownerID) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockAlertRepository) UpdateStatus(ctx context.Context, id int64, status alert.Status) (*alert.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateError != nil {
		return nil, m.UpdateError
	}
	a, ok := m.Alerts[id]
	if !ok {
		return nil, errors.NotFound("Alert")
	}
	a.Status = status
	cp := *a
	return &cp, nil
}

func (m *MockAlertRepository) Aggregate(ctx context.Context, ownerID *int64) (*alert.Aggregate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListError != nil {
		return nil, m.ListError
	}

	agg := alert.NewAggregate()
	for _, a := range m.Alerts {
		if ownerID != nil && (a.OwnerID == nil || *a.OwnerID != *ownerID) {
			continue
		}
		agg.Total++
		if a.VerdictLabel == threat.LabelAttack {
			agg.Threats++
		}
		agg.BySeverity[a.Severity]++
		agg.ByStatus[a.Status]++
		if agg.LatestAt == nil || a.CreatedAt.After(*agg.LatestAt) {
			t := a.CreatedAt
			agg.LatestAt = &t
		}
	}
	return agg, nil
}

// Put stores a copy of a as-is, for seeding
func (m *MockAlertRepository) Put(a *alert.Alert) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.Alerts[a.ID] = &cp
	if a.ID >= m.NextID {
		m.NextID = a.ID + 1
	}
}

// Len returns the number of stored alerts
func (m *MockAlertRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Alerts)
}

// MockUserRepository is an in-memory user.Repository and notification.Directory
type MockUserRepository struct {
	mu          sync.Mutex
	Users       map[int64]*user.User
	NextID      int64
	CreateError error
	ListError   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:  make(map[int64]*user.User),
		NextID: 1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return m.CreateError
	}
	for _, existing := range m.Users {
		if strings.EqualFold(existing.Email, u.Email) {
			return errors.Conflict("Email already registered")
		}
	}
	u.ID = m.NextID
	m.NextID++
	cp := *u
	m.Users[u.ID] = &cp
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.Users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.NotFound("User")
}

func (m *MockUserRepository) UpdatePreferences(ctx context.Context, id int64, phone string, prefs user.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.Users[id]
	if !ok {
		return errors.NotFound("User")
	}
	u.Phone = phone
	u.Preferences = prefs
	return nil
}

func (m *MockUserRepository) ListByPreference(ctx context.Context, pref user.Preference) ([]*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListError != nil {
		return nil, m.ListError
	}

	var out []*user.User
	for _, u := range m.Users {
		var on bool
		switch pref {
		case user.PreferenceEmailAlerts:
			on = u.Preferences.EmailAlerts
		case user.PreferenceSMSAlerts:
			on = u.Preferences.SMSAlerts
		case user.PreferenceWeeklyReports:
			on = u.Preferences.WeeklyReports
		}
		if on {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockUserRepository) ListRecipients(ctx context.Context, channel notification.Channel) ([]notification.Recipient, error) {
	pref := user.PreferenceEmailAlerts
	if channel == notification.ChannelSMS {
		pref = user.PreferenceSMSAlerts
	}
	users, err := m.ListByPreference(ctx, pref)
	if err != nil {
		return nil, err
	}
	out := make([]notification.Recipient, 0, len(users))
	for _, u := range users {
		addr := u.Email
		if channel == notification.ChannelSMS {
			addr = u.Phone
		}
		out = append(out, notification.Recipient{UserID: u.ID, Address: addr})
	}
	return out, nil
}

func (m *MockUserRepository) GetPreferences(ctx context.Context, ownerID int64) (*notification.OwnerPreferences, error) {
	u, err := m.GetByID(ctx, ownerID)
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

// MockModel returns a canned prediction
type MockModel struct {
	mu         sync.Mutex
	Prediction threat.Prediction
	Err        error
	Panic      bool
	Calls      int
}

func (m *MockModel) Predict(ctx context.Context, features map[string]interface{}) (threat.Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	if m.Panic {
		panic("model exploded")
	}
	if m.Err != nil {
		return threat.Prediction{}, m.Err
	}
	return m.Prediction, nil
}

// MockTransport records messages and fails for configured addresses
type MockTransport struct {
	mu     sync.Mutex
	Sent   []notification.Message
	FailTo map[string]error
	Delay  time.Duration
}

func NewMockTransport() *MockTransport {
	return &MockTransport{FailTo: make(map[string]error)}
}

func (m *MockTransport) Send(ctx context.Context, msg notification.Message) error {
	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.FailTo[msg.To]; ok {
		return err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

// Messages returns a copy of every delivered message
func (m *MockTransport) Messages() []notification.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notification.Message(nil), m.Sent...)
}

// Recipients returns the addresses of delivered messages
func (m *MockTransport) Recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Sent))
	for _, msg := range m.Sent {
		out = append(out, msg.To)
	}
	return out
}

// MockDispatcher records enqueued jobs
type MockDispatcher struct {
	mu     sync.Mutex
	Jobs   []notification.Job
	Reject bool
}

func (m *MockDispatcher) Enqueue(job notification.Job) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Reject {
		return false
	}
	m.Jobs = append(m.Jobs, job)
	return true
}

// Enqueued returns a copy of every accepted job
func (m *MockDispatcher) Enqueued() []notification.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notification.Job(nil), m.Jobs...)
}

// MockPublisher records published events
type MockPublisher struct {
	mu     sync.Mutex
	Events []events.Event
	Err    error
}

func (m *MockPublisher) Publish(ctx context.Context, ev events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, ev)
	return nil
}

// Published returns a copy of every published event
func (m *MockPublisher) Published() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.Event(nil), m.Events...)
}

// ErrBoom is a generic failure for tests
var ErrBoom = fmt.Errorf("boom")

// MockSMSTransport is a MockTransport that addresses the owner's phone
type MockSMSTransport struct {
	*MockTransport
}

func NewMockSMSTransport() *MockSMSTransport {
	return &MockSMSTransport{MockTransport: NewMockTransport()}
}

func (m *MockSMSTransport) AddressFor(p *notification.OwnerPreferences) string {
	return p.SecondaryAddress
}
