// Package classifier turns feature records into verdicts using an injected model.
package classifier

import (
	"context"
	"fmt"
	"time"

	"github.com/pratik-mahalle/threatwatch/internal/domain/threat"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/metrics"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/validator"
)

// Adapter implements threat.Classifier on top of a threat.Model
type Adapter struct {
	model     threat.Model
	validator *validator.Validator
	logger    *logger.Logger
}

// NewAdapter creates a classifier around model
func NewAdapter(model threat.Model, log *logger.Logger) *Adapter {
	return &Adapter{
		model:     model,
		validator: validator.New(),
		logger:    log,
	}
}

// Classify validates the record, runs the model and normalises its output
func (a *Adapter) Classify(ctx context.Context, features threat.FeatureRecord) (threat.Verdict, error) {
	if verrs := a.validator.Validate(features); verrs != nil {
		metrics.RecordClassificationError("invalid_input")
		return threat.Verdict{}, errors.InvalidInput("Invalid feature record", verrs)
	}

	start := time.Now()
	prediction, err := a.predict(ctx, features)
	if err != nil {
		metrics.RecordClassificationError("model")
		a.logger.WithFields(map[string]interface{}{
			"srcip": features.SrcIP,
		}).ErrorWithErr(err, "Model prediction failed")
		return threat.Verdict{}, errors.ModelUnavailable(err)
	}

	if prediction.Probability < 0 || prediction.Probability > 1 {
		metrics.RecordClassificationError("out_of_range")
		return threat.Verdict{}, errors.ModelUnavailable(fmt.Errorf("probability %v outside [0,1]", prediction.Probability))
	}
	if prediction.Label != 0 && prediction.Label != 1 {
		metrics.RecordClassificationError("out_of_range")
		return threat.Verdict{}, errors.ModelUnavailable(fmt.Errorf("unknown label %d", prediction.Label))
	}

	verdict := threat.NewVerdict(prediction)
	metrics.RecordClassification(string(verdict.Label), string(verdict.Severity), time.Since(start))
	return verdict, nil
}

// predict converts a model panic into an error
func (a *Adapter) predict(ctx context.Context, features threat.FeatureRecord) (p threat.Prediction, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model panic: %v", r)
		}
	}()
	return a.model.Predict(ctx, features.AsMap())
}
