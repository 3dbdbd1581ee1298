package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pratik-mahalle/threatwatch/internal/api/handlers"
	"github.com/pratik-mahalle/threatwatch/internal/classifier"
	"github.com/pratik-mahalle/threatwatch/internal/config"
	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
	"github.com/pratik-mahalle/threatwatch/internal/events"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/validator"
	"github.com/pratik-mahalle/threatwatch/internal/services"
	"github.com/pratik-mahalle/threatwatch/internal/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{FrontendURL: "http://localhost:5173", RateLimitRPS: 1000, RateLimitBurst: 1000},
		Auth:   config.AuthConfig{JWTSecret: "router-secret", AccessTokenExpiry: time.Minute, RefreshTokenExpiry: time.Hour},
	}
	log := logger.Nop()
	val := validator.New()

	alerts := testutil.NewMockAlertRepository()
	users := testutil.NewMockUserRepository()
	model := &testutil.MockModel{Prediction: threat.Prediction{Label: 1, Probability: 0.9}}
	userSvc := services.NewUserService(users, bcrypt.MinCost, log)

	h := &Handlers{
		Health:      handlers.NewHealthHandler(nil, log),
		Auth:        handlers.NewAuthHandler(userSvc, cfg, log, val),
		User:        handlers.NewUserHandler(userSvc, log, val),
		Threat:      handlers.NewThreatHandler(services.NewThreatService(classifier.NewAdapter(model, log), alerts, &testutil.MockDispatcher{}, events.NopPublisher{}, log), log),
		Alert:       handlers.NewAlertHandler(services.NewAlertService(alerts, log), log),
		Stats:       handlers.NewStatsHandler(services.NewStatsService(alerts)),
		Remediation: handlers.NewRemediationHandler(services.NewRemediationService(alerts, events.NopPublisher{}, log), log, val),
		Newsletter:  handlers.NewNewsletterHandler(services.NewSubscriptionService(testutil.NewMockTransport(), log), log, val),
	}

	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })
	return New(cfg, log, h, stop)
}

func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_Routes(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/readyz", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/api/v1/alerts", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/alerts/summary", "", http.StatusOK},
		{http.MethodGet, "/api/v1/alerts/1", "", http.StatusNotFound},
		{http.MethodGet, "/api/v1/stats", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/analyze", `{"srcip":"10.0.0.1"}`, http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/logs", "", http.StatusOK},
		{http.MethodGet, "/api/v1/remediations", "", http.StatusOK},
		{http.MethodPost, "/api/v1/remediations/1/action", `{"action":"Explode"}`, http.StatusBadRequest},
		{http.MethodGet, "/api/v1/users/me/preferences", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/subscribe", `{"email":"reader@example.com"}`, http.StatusOK},
		{http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
		{http.MethodDelete, "/api/v1/alerts", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := do(t, h, tt.method, tt.path, tt.body, "")
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
			assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		})
	}
}

func register(t *testing.T, h http.Handler, email string) string {
	t.Helper()

	rr := do(t, h, http.MethodPost, "/api/v1/auth/register", `{"email":"`+email+`","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var reg struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reg))
	return reg.Data.AccessToken
}

func alertCount(t *testing.T, h http.Handler, token string) int {
	t.Helper()

	rr := do(t, h, http.MethodGet, "/api/v1/alerts", "", token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var scoped struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &scoped))
	return len(scoped.Data)
}

func TestRouter_AnalyzeScopedToCaller(t *testing.T) {
	h := newTestRouter(t)

	owner := register(t, h, "owner@example.com")
	other := register(t, h, "other@example.com")

	rr := do(t, h, http.MethodPost, "/api/v1/analyze", `{"srcip":"10.9.9.9"}`, owner)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	assert.Equal(t, 1, alertCount(t, h, owner))
	assert.Equal(t, 0, alertCount(t, h, other))

	rr = do(t, h, http.MethodGet, "/api/v1/users/me/preferences", "", owner)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_InvalidTokenRejected(t *testing.T) {
	h := newTestRouter(t)
	owner := register(t, h, "victim@example.com")

	rr := do(t, h, http.MethodPost, "/api/v1/analyze", `{"srcip":"10.1.1.1"}`, owner)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/v1/alerts", ""},
		{http.MethodGet, "/api/v1/stats", ""},
		{http.MethodPost, "/api/v1/analyze", `{"srcip":"10.1.1.2"}`},
	} {
		rr := do(t, h, tc.method, tc.path, tc.body, "garbage.invalid.token")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", tc.method, tc.path)
		assert.NotContains(t, rr.Body.String(), "10.1.1.1")
	}

	assert.Equal(t, 1, alertCount(t, h, owner))
}
