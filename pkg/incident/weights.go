package incident

// Weights maps each severity level to its numeric risk weight.
// A table that does not cover every level in the fixed set is rejected
// before analysis rather than defaulting silently.
type Weights map[Severity]float64

// DefaultWeights returns the standard severity weight table.
func DefaultWeights() Weights {
	return Weights{
		SeverityCritical: 4,
		SeverityHigh:     3,
		SeverityMedium:   2,
		SeverityLow:      1,
	}
}

// Validate checks that the table assigns a weight to every severity level.
func (w Weights) Validate() error {
	for _, level := range severityOrder {
		if _, ok := w[level]; !ok {
			return &DataQualityError{Field: "severity_weights", Value: string(level), Reason: "no weight assigned"}
		}
	}
	return nil
}

// Score returns the weight for a severity level. An unmapped severity is a
// data-quality error and fails the run.
func (w Weights) Score(s Severity) (float64, error) {
	score, ok := w[s]
	if !ok {
		return 0, &DataQualityError{Field: "severity", Value: string(s), Reason: "not in the severity weight table"}
	}
	return score, nil
}
