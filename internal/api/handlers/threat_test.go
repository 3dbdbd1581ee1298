package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pratik-mahalle/threatwatch/internal/classifier"
	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
	"github.com/pratik-mahalle/threatwatch/internal/events"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/services"
	"github.com/pratik-mahalle/threatwatch/internal/testutil"
)

func TestThreatHandler_Analyze(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		model          *testutil.MockModel
		userID         int64
		expectedStatus int
		expectedCode   string
		expectedSev    threat.Severity
		expectedJobs   int
	}{
		{
			name:           "critical attack",
			body:           `{"srcip":"10.0.0.5","dstip":"10.0.0.1","dstport":22,"proto":"tcp"}`,
			model:          &testutil.MockModel{Prediction: threat.Prediction{Label: 1, Probability: 0.93}},
			userID:         3,
			expectedStatus: http.StatusOK,
			expectedSev:    threat.SeverityCritical,
			expectedJobs:   1,
		},
		{
			name:           "normal traffic",
			body:           `{"srcip":"10.0.0.6","proto":"udp"}`,
			model:          &testutil.MockModel{Prediction: threat.Prediction{Label: 0, Probability: 0.1}},
			expectedStatus: http.StatusOK,
			expectedSev:    threat.SeverityLow,
		},
		{
			name:           "malformed json",
			body:           `{"srcip":`,
			model:          &testutil.MockModel{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   errors.ErrCodeInvalidInput,
		},
		{
			name:           "mistyped port",
			body:           `{"srcip":"x","srcport":"abc"}`,
			model:          &testutil.MockModel{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   errors.ErrCodeInvalidInput,
		},
		{
			name:           "missing source address",
			body:           `{"dstport":80}`,
			model:          &testutil.MockModel{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   errors.ErrCodeInvalidInput,
		},
		{
			name:           "model down",
			body:           `{"srcip":"10.0.0.7"}`,
			model:          &testutil.MockModel{Err: testutil.ErrBoom},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   errors.ErrCodeModelUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := logger.Nop()
			repo := testutil.NewMockAlertRepository()
			dispatcher := &testutil.MockDispatcher{}
			service := services.NewThreatService(classifier.NewAdapter(tt.model, log), repo, dispatcher, events.NopPublisher{}, log)
			handler := NewThreatHandler(service, log)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(tt.body))
			if tt.userID != 0 {
				req = withUser(req, tt.userID)
			}
			rr := httptest.NewRecorder()

			handler.Analyze(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("handler returned wrong status code: got %v want %v (%s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			env := decodeEnvelope(t, rr)
			if tt.expectedCode != "" {
				if env.Error.Code != tt.expectedCode {
					t.Errorf("error code = %s, want %s", env.Error.Code, tt.expectedCode)
				}
				if repo.Len() != 0 {
					t.Errorf("failed request stored %d alerts", repo.Len())
				}
				return
			}

			var summary alert.AlertSummary
			if err := json.Unmarshal(env.Data, &summary); err != nil {
				t.Fatal(err)
			}
			if summary.Severity != tt.expectedSev {
				t.Errorf("severity = %s, want %s", summary.Severity, tt.expectedSev)
			}
			if got := len(dispatcher.Enqueued()); got != tt.expectedJobs {
				t.Errorf("enqueued %d jobs, want %d", got, tt.expectedJobs)
			}

			stored, err := repo.GetByID(req.Context(), summary.ID)
			if err != nil {
				t.Fatal(err)
			}
			if tt.userID != 0 && (stored.OwnerID == nil || *stored.OwnerID != tt.userID) {
				t.Errorf("alert owner = %v, want %d", stored.OwnerID, tt.userID)
			}
			if tt.userID == 0 && stored.OwnerID != nil {
				t.Errorf("unowned alert has owner %d", *stored.OwnerID)
			}
		})
	}
}
