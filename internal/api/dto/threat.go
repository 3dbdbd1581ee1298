package dto

import "github.com/pratik-mahalle/threatwatch/internal/domain/threat"

// AnalyzeRequest is one traffic flow submitted for classification.
// Field validation happens in the classifier.
type AnalyzeRequest struct {
	threat.FeatureRecord
}
