package threat

// Label is the verdict label persisted with an alert
type Label string

// Verdict labels
const (
	LabelAttack Label = "Attack"
	LabelNormal Label = "Normal"
)

// Severity is derived from model confidence
type Severity string

// Severity levels. Medium is a recognised bucket for stats and playbooks,
// but SeverityFor never produces it.
const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Severities lists every bucket in display order
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Confidence thresholds (exclusive lower bounds)
const (
	CriticalThreshold = 0.8
	HighThreshold     = 0.5
)

// SeverityFor maps the attack-class probability to a severity
func SeverityFor(p float64) Severity {
	switch {
	case p > CriticalThreshold:
		return SeverityCritical
	case p > HighThreshold:
		return SeverityHigh
	default:
		return SeverityLow
	}
}

// FeatureRecord is one observed traffic flow
type FeatureRecord struct {
	SrcIP    string  `json:"srcip" validate:"required,max=255"`
	SrcPort  int     `json:"srcport" validate:"gte=0,lte=65535"`
	DstIP    string  `json:"dstip" validate:"max=255"`
	DstPort  int     `json:"dstport" validate:"gte=0,lte=65535"`
	Proto    string  `json:"proto" validate:"max=32"`
	Service  string  `json:"service" validate:"max=64"`
	Duration float64 `json:"duration" validate:"gte=0"`
	Bytes    int64   `json:"bytes" validate:"gte=0"`
	Packets  int64   `json:"packets" validate:"gte=0"`
}

// AsMap returns the record keyed by wire names, the shape models consume
func (f FeatureRecord) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"srcip":    f.SrcIP,
		"srcport":  f.SrcPort,
		"dstip":    f.DstIP,
		"dstport":  f.DstPort,
		"proto":    f.Proto,
		"service":  f.Service,
		"duration": f.Duration,
		"bytes":    f.Bytes,
		"packets":  f.Packets,
	}
}

// Prediction is the raw output of a model
type Prediction struct {
	Label       int     `json:"label"`
	Probability float64 `json:"probability"`
}

// Verdict is a normalised prediction, before persistence
type Verdict struct {
	IsThreat   bool     `json:"is_threat"`
	Label      Label    `json:"label"`
	Confidence float64  `json:"confidence"`
	Severity   Severity `json:"severity"`
}

// NewVerdict derives a verdict from a prediction
func NewVerdict(p Prediction) Verdict {
	v := Verdict{
		IsThreat:   p.Label == 1,
		Label:      LabelNormal,
		Confidence: p.Probability,
		Severity:   SeverityFor(p.Probability),
	}
	if v.IsThreat {
		v.Label = LabelAttack
	}
	return v
}

// ShouldNotify reports whether a verdict crosses the notification threshold
func (v Verdict) ShouldNotify() bool {
	return v.IsThreat && (v.Severity == SeverityCritical || v.Confidence > CriticalThreshold)
}
