package errors

import (
	"database/sql"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode_ThroughWrapping(t *testing.T) {
	base := NotFound("Alert")
	wrapped := fmt.Errorf("perform action: %w", base)

	assert.True(t, HasCode(wrapped, ErrCodeNotFound))
	assert.False(t, HasCode(wrapped, ErrCodeInvalidAction))
	assert.False(t, HasCode(stderrors.New("plain"), ErrCodeNotFound))
	assert.False(t, HasCode(nil, ErrCodeNotFound))
}

func TestPipelineErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"invalid input", InvalidInput("bad record", nil), ErrCodeInvalidInput, http.StatusBadRequest},
		{"model unavailable", ModelUnavailable(stderrors.New("down")), ErrCodeModelUnavailable, http.StatusServiceUnavailable},
		{"not found", NotFound("Alert"), ErrCodeNotFound, http.StatusNotFound},
		{"invalid action", InvalidAction("Explode"), ErrCodeInvalidAction, http.StatusBadRequest},
		{"persistence", PersistenceFailure("insert", sql.ErrConnDone), ErrCodePersistenceFailure, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := PersistenceFailure("Failed to create alert", sql.ErrConnDone)

	assert.True(t, stderrors.Is(err, sql.ErrConnDone))
	assert.Contains(t, err.Error(), "Failed to create alert")
	assert.Equal(t, `Unknown remediation action "Explode"`, InvalidAction("Explode").Error())
}
