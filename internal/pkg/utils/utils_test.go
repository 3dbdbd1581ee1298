package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
)

func TestParseLimit(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", DefaultAlertLimit},
		{"?limit=10", 10},
		{"?limit=0", DefaultAlertLimit},
		{"?limit=-3", DefaultAlertLimit},
		{"?limit=abc", DefaultAlertLimit},
		{"?limit=100000", MaxLimit},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/alerts"+tt.query, nil)
		if got := ParseLimit(r, DefaultAlertLimit); got != tt.want {
			t.Errorf("ParseLimit(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestWriteAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"app error", errors.NotFound("Alert"), http.StatusNotFound, errors.ErrCodeNotFound},
		{"wrapped app error", fmt.Errorf("ctx: %w", errors.InvalidAction("Nuke")), http.StatusBadRequest, errors.ErrCodeInvalidAction},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError, errors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			_ = WriteAppError(rr, tt.err)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success || body.Error.Code != tt.wantCode {
				t.Errorf("body = %+v, want code %s", body, tt.wantCode)
			}
		})
	}
}
