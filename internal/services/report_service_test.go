package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/threatwatch/internal/domain/user"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/testutil"
)

type memoryArchive struct {
	mu   sync.Mutex
	keys []int64
	err  error
}

func (a *memoryArchive) Put(ctx context.Context, day time.Time, userID int64, body []byte) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return "", a.err
	}
	a.keys = append(a.keys, userID)
	return "", nil
}

func TestReportService_SendWeekly(t *testing.T) {
	users := testutil.NewMockUserRepository()
	alerts := testutil.NewMockAlertRepository()
	mail := testutil.NewMockTransport()
	archive := &memoryArchive{}

	subscriber := &user.User{Email: "weekly@example.com", Preferences: user.Preferences{WeeklyReports: true}}
	optedOut := &user.User{Email: "none@example.com", Preferences: user.Preferences{WeeklyReports: false}}
	require.NoError(t, users.Create(context.Background(), subscriber))
	require.NoError(t, users.Create(context.Background(), optedOut))
	seedAlerts(t, alerts, 4, 0.95, 1, &subscriber.ID)

	service := NewReportService(users, NewStatsService(alerts), mail, archive, logger.Nop())
	service.now = func() time.Time { return time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC) }

	sent, err := service.SendWeekly(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	msgs := mail.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "weekly@example.com", msgs[0].To)
	assert.Equal(t, "Weekly Threat Report: 2024-06-03 to 2024-06-10", msgs[0].Subject)
	assert.Contains(t, msgs[0].Body, "<strong>4</strong> flows analysed")
	assert.Equal(t, []int64{subscriber.ID}, archive.keys)
}

func TestReportService_PartialFailure(t *testing.T) {
	users := testutil.NewMockUserRepository()
	mail := testutil.NewMockTransport()
	mail.FailTo["a@example.com"] = testutil.ErrBoom

	for _, email := range []string{"a@example.com", "b@example.com"} {
		require.NoError(t, users.Create(context.Background(), &user.User{Email: email, Preferences: user.Preferences{WeeklyReports: true}}))
	}

	archive := &memoryArchive{err: testutil.ErrBoom}
	service := NewReportService(users, NewStatsService(testutil.NewMockAlertRepository()), mail, archive, logger.Nop())

	sent, err := service.SendWeekly(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, sent, "archive failures do not block delivery")
	assert.Equal(t, []string{"b@example.com"}, mail.Recipients())
}

func TestReportService_NoArchive(t *testing.T) {
	users := testutil.NewMockUserRepository()
	mail := testutil.NewMockTransport()
	require.NoError(t, users.Create(context.Background(), &user.User{Email: "x@example.com", Preferences: user.Preferences{WeeklyReports: true}}))

	service := NewReportService(users, NewStatsService(testutil.NewMockAlertRepository()), mail, nil, logger.Nop())

	sent, err := service.SendWeekly(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}
