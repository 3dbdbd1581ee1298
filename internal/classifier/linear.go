package classifier

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
)

// Weights is the on-disk form of a LinearModel
type Weights struct {
	Bias        float64                       `yaml:"bias"`
	Threshold   float64                       `yaml:"threshold"`
	Numeric     map[string]float64            `yaml:"numeric"`
	Categorical map[string]map[string]float64 `yaml:"categorical"`
}

// LinearModel is a logistic regression over log-scaled numeric features and
// one-hot categorical features. It is safe for concurrent use.
type LinearModel struct {
	w Weights
}

// LoadLinearModel reads weights from a YAML file
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model weights %s: %w", path, err)
	}
	return ParseLinearModel(data)
}

// ParseLinearModel builds a model from YAML weights
func ParseLinearModel(data []byte) (*LinearModel, error) {
	var w Weights
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse model weights: %w", err)
	}
	if len(w.Numeric) == 0 && len(w.Categorical) == 0 {
		return nil, fmt.Errorf("model weights define no features")
	}
	if w.Threshold == 0 {
		w.Threshold = 0.5
	}
	if w.Threshold <= 0 || w.Threshold >= 1 {
		return nil, fmt.Errorf("model threshold %v outside (0,1)", w.Threshold)
	}
	return &LinearModel{w: w}, nil
}

// Predict scores the features. Unknown features and categories contribute nothing.
func (m *LinearModel) Predict(ctx context.Context, features map[string]interface{}) (threat.Prediction, error) {
	z := m.w.Bias

	for name, weight := range m.w.Numeric {
		v, ok := features[name]
		if !ok {
			continue
		}
		x, err := toFloat(v)
		if err != nil {
			return threat.Prediction{}, fmt.Errorf("feature %s: %w", name, err)
		}
		if x < 0 {
			x = 0
		}
		z += weight * math.Log1p(x)
	}

	for name, categories := range m.w.Categorical {
		v, ok := features[name].(string)
		if !ok {
			continue
		}
		z += categories[strings.ToLower(v)]
	}

	p := 1 / (1 + math.Exp(-z))

	label := 0
	if p >= m.w.Threshold {
		label = 1
	}
	return threat.Prediction{Label: label, Probability: p}, nil
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
