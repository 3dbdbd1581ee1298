package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pratik-mahalle/threatwatch/internal/domain/user"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/testutil"
)

func newUserService() (user.Service, *testutil.MockUserRepository) {
	repo := testutil.NewMockUserRepository()
	return NewUserService(repo, bcrypt.MinCost, logger.Nop()), repo
}

func TestUserService_Register(t *testing.T) {
	service, repo := newUserService()
	ctx := context.Background()

	u, err := service.Register(ctx, "  Analyst@Example.com ", "analyst", "s3cret-pass")
	require.NoError(t, err)

	assert.NotZero(t, u.ID)
	assert.Equal(t, "analyst@example.com", u.Email)
	assert.Equal(t, user.DefaultPreferences(), u.Preferences)
	assert.NotEqual(t, "s3cret-pass", repo.Users[u.ID].PasswordHash)

	_, err = service.Register(ctx, "analyst@example.com", "again", "other-pass")
	assert.True(t, errors.HasCode(err, errors.ErrCodeConflict))
}

func TestUserService_Authenticate(t *testing.T) {
	service, _ := newUserService()
	ctx := context.Background()

	_, err := service.Register(ctx, "soc@example.com", "soc", "correct-pass")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "valid", email: "soc@example.com", password: "correct-pass"},
		{name: "case insensitive email", email: "SOC@example.com", password: "correct-pass"},
		{name: "wrong password", email: "soc@example.com", password: "nope", wantErr: true},
		{name: "unknown email", email: "ghost@example.com", password: "correct-pass", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := service.Authenticate(ctx, tt.email, tt.password)
			if tt.wantErr {
				assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "soc@example.com", u.Email)
		})
	}
}

func TestUserService_UpdatePreferences(t *testing.T) {
	service, _ := newUserService()
	ctx := context.Background()

	u, err := service.Register(ctx, "pref@example.com", "", "password1")
	require.NoError(t, err)

	prefs := user.Preferences{EmailAlerts: false, SMSAlerts: true, WeeklyReports: true}
	got, err := service.UpdatePreferences(ctx, u.ID, " +15550100 ", prefs)
	require.NoError(t, err)
	assert.Equal(t, prefs, got.Preferences)
	assert.Equal(t, "+15550100", got.Phone)

	_, err = service.UpdatePreferences(ctx, 999, "", prefs)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}
