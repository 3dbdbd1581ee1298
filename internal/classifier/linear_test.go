package classifier

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWeights = `
bias: -2
numeric:
  bytes: 0.5
categorical:
  proto:
    udp: 3
`

func TestParseLinearModel(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{name: "valid", yaml: testWeights},
		{name: "no features", yaml: "bias: 1\n", wantErr: true},
		{name: "malformed", yaml: "numeric: [1, 2", wantErr: true},
		{name: "bad threshold", yaml: "threshold: 1.5\nnumeric:\n  bytes: 1\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLinearModel([]byte(tt.yaml))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLinearModel_Predict(t *testing.T) {
	m, err := ParseLinearModel([]byte(testWeights))
	require.NoError(t, err)
	ctx := context.Background()

	quiet, err := m.Predict(ctx, map[string]interface{}{"bytes": int64(0), "proto": "tcp"})
	require.NoError(t, err)
	assert.Equal(t, 0, quiet.Label)
	assert.InDelta(t, 0.1192, quiet.Probability, 0.001)

	noisy, err := m.Predict(ctx, map[string]interface{}{"bytes": int64(10000), "proto": "UDP"})
	require.NoError(t, err)
	assert.Equal(t, 1, noisy.Label)
	assert.Greater(t, noisy.Probability, 0.95)
	assert.LessOrEqual(t, noisy.Probability, 1.0)

	_, err = m.Predict(ctx, map[string]interface{}{"bytes": "lots"})
	assert.Error(t, err)
}

func TestLoadLinearModel(t *testing.T) {
	_, err := LoadLinearModel(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testWeights), 0o600))

	m, err := LoadLinearModel(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, m.w.Threshold)
}

func TestLoadLinearModel_Bundled(t *testing.T) {
	m, err := LoadLinearModel(filepath.Join("..", "..", "models", "weights.yaml"))
	require.NoError(t, err)

	p, err := m.Predict(context.Background(), validRecord().AsMap())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p.Probability, 0.0)
	assert.LessOrEqual(t, p.Probability, 1.0)
}
