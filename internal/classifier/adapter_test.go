package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/testutil"
)

func validRecord() threat.FeatureRecord {
	return threat.FeatureRecord{
		SrcIP:    "10.0.0.5",
		SrcPort:  51515,
		DstIP:    "10.0.0.1",
		DstPort:  80,
		Proto:    "tcp",
		Service:  "http",
		Duration: 0.4,
		Bytes:    1200,
		Packets:  8,
	}
}

func TestAdapter_Classify(t *testing.T) {
	tests := []struct {
		name         string
		prediction   threat.Prediction
		wantThreat   bool
		wantLabel    threat.Label
		wantSeverity threat.Severity
	}{
		{"critical attack", threat.Prediction{Label: 1, Probability: 0.95}, true, threat.LabelAttack, threat.SeverityCritical},
		{"boundary 0.8 is high", threat.Prediction{Label: 1, Probability: 0.8}, true, threat.LabelAttack, threat.SeverityHigh},
		{"boundary 0.5 is low", threat.Prediction{Label: 0, Probability: 0.5}, false, threat.LabelNormal, threat.SeverityLow},
		{"normal with high probability", threat.Prediction{Label: 0, Probability: 0.85}, false, threat.LabelNormal, threat.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &testutil.MockModel{Prediction: tt.prediction}
			adapter := NewAdapter(model, logger.Nop())

			v, err := adapter.Classify(context.Background(), validRecord())
			require.NoError(t, err)

			assert.Equal(t, tt.wantThreat, v.IsThreat)
			assert.Equal(t, tt.wantLabel, v.Label)
			assert.Equal(t, tt.wantSeverity, v.Severity)
			assert.Equal(t, tt.prediction.Probability, v.Confidence)
		})
	}
}

func TestAdapter_InvalidInput(t *testing.T) {
	model := &testutil.MockModel{Prediction: threat.Prediction{Label: 1, Probability: 0.9}}
	adapter := NewAdapter(model, logger.Nop())

	rec := validRecord()
	rec.SrcIP = ""
	rec.DstPort = 70000

	_, err := adapter.Classify(context.Background(), rec)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
	assert.Zero(t, model.Calls, "model must not be called for invalid input")
}

func TestAdapter_ModelUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		model *testutil.MockModel
	}{
		{"model error", &testutil.MockModel{Err: testutil.ErrBoom}},
		{"model panic", &testutil.MockModel{Panic: true}},
		{"probability above one", &testutil.MockModel{Prediction: threat.Prediction{Label: 1, Probability: 1.2}}},
		{"negative probability", &testutil.MockModel{Prediction: threat.Prediction{Label: 0, Probability: -0.1}}},
		{"unknown label", &testutil.MockModel{Prediction: threat.Prediction{Label: 3, Probability: 0.4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := NewAdapter(tt.model, logger.Nop())

			_, err := adapter.Classify(context.Background(), validRecord())
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeModelUnavailable))
		})
	}
}
