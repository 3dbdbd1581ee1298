package threat

import "context"

// Model is an opaque prediction capability
type Model interface {
	// Predict returns a binary label and the attack-class probability
	Predict(ctx context.Context, features map[string]interface{}) (Prediction, error)
}

// Classifier turns feature records into verdicts
type Classifier interface {
	// Classify validates the record and derives a verdict from the model
	Classify(ctx context.Context, features FeatureRecord) (Verdict, error)
}
