package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pratik-mahalle/threatwatch/internal/api/dto"
	"github.com/pratik-mahalle/threatwatch/internal/config"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/validator"
	"github.com/pratik-mahalle/threatwatch/internal/services"
	"github.com/pratik-mahalle/threatwatch/internal/testutil"
)

func newAuthHandler() *AuthHandler {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:          "handler-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
		},
	}
	log := logger.Nop()
	service := services.NewUserService(testutil.NewMockUserRepository(), bcrypt.MinCost, log)
	return NewAuthHandler(service, cfg, log, validator.New())
}

func TestAuthHandler_RegisterLoginRefresh(t *testing.T) {
	handler := newAuthHandler()

	tests := []struct {
		name           string
		call           func(w http.ResponseWriter, r *http.Request)
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "register",
			call:           handler.Register,
			body:           dto.RegisterRequest{Email: "soc@example.com", Password: "password123"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate register",
			call:           handler.Register,
			body:           dto.RegisterRequest{Email: "SOC@example.com", Password: "password123"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "short password",
			call:           handler.Register,
			body:           dto.RegisterRequest{Email: "new@example.com", Password: "short"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "login",
			call:           handler.Login,
			body:           dto.LoginRequest{Email: "soc@example.com", Password: "password123"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			call:           handler.Login,
			body:           dto.LoginRequest{Email: "soc@example.com", Password: "password124"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	var refresh string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth", jsonBody(t, tt.body))
			rr := httptest.NewRecorder()

			tt.call(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("handler returned wrong status code: got %v want %v (%s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if rr.Code >= 300 {
				return
			}

			var resp dto.AuthResponse
			if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &resp); err != nil {
				t.Fatal(err)
			}
			if resp.AccessToken == "" || resp.User == nil || resp.User.Email != "soc@example.com" {
				t.Errorf("unexpected auth response: %+v", resp)
			}
			if !resp.User.Preferences.EmailAlerts || !resp.User.Preferences.WeeklyReports || resp.User.Preferences.SMSAlerts {
				t.Errorf("registration should apply default preferences, got %+v", resp.User.Preferences)
			}
			refresh = resp.RefreshToken
		})
	}

	t.Run("refresh", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", jsonBody(t, dto.RefreshTokenRequest{RefreshToken: refresh}))
		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("refresh status = %d (%s)", rr.Code, rr.Body.String())
		}
	})

	t.Run("access token cannot refresh", func(t *testing.T) {
		login := httptest.NewRecorder()
		handler.Login(login, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			jsonBody(t, dto.LoginRequest{Email: "soc@example.com", Password: "password123"})))
		var resp dto.AuthResponse
		if err := json.Unmarshal(decodeEnvelope(t, login).Data, &resp); err != nil {
			t.Fatal(err)
		}

		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh",
			jsonBody(t, dto.RefreshTokenRequest{RefreshToken: resp.AccessToken})))
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("refresh with access token = %d, want 401", rr.Code)
		}
	})
}
