package analyzer

import (
	"fmt"
	"sort"
)

// ScoringResult is the output of the risk scoring stage.
type ScoringResult struct {
	// Percentile is the configured high-risk cutoff (0-100).
	Percentile float64 `json:"percentile"`
	// Threshold is the computed score value at that percentile.
	Threshold float64 `json:"threshold"`
	// Categories holds every category with its risk score filled in,
	// sorted by risk score descending, ties by category label ascending.
	Categories []CategoryMetrics `json:"categories"`
	// HighRisk is the subset of Categories with score >= Threshold,
	// in the same order. It may be empty; that is a valid outcome.
	HighRisk []CategoryMetrics `json:"high_risk"`
}

// Score computes the composite risk score for every category and selects
// the high-risk subset at the given percentile.
//
// The formula is part of the contract:
//
//	recurrence_rate = recurring / count * 100                     (1dp)
//	risk_score = count * avg_severity * (1 + recurrence_rate/100)
//	             + avg_resolution_hours / 10                      (2dp)
//
// Frequency and severity multiply, recurrence amplifies, and resolution
// time is an additive dampened penalty. The threshold is the percentile of
// all scores with linear interpolation between order statistics; the
// comparison is inclusive, so ties at the threshold all qualify.
func Score(agg *Aggregation, percentile float64) (*ScoringResult, error) {
	if agg == nil || len(agg.Categories) == 0 {
		return nil, fmt.Errorf("no aggregated categories to score")
	}
	if percentile < 0 || percentile > 100 {
		return nil, fmt.Errorf("percentile must be between 0 and 100, got %v", percentile)
	}

	scored := make([]CategoryMetrics, len(agg.Categories))
	scores := make([]float64, len(agg.Categories))
	for i, cm := range agg.Categories {
		cm.RecurrenceRate = round1(float64(cm.RecurringIncidents) / float64(cm.IncidentCount) * 100)
		cm.RiskScore = round2(
			float64(cm.IncidentCount)*cm.AvgSeverityScore*(1+cm.RecurrenceRate/100) +
				cm.AvgResolutionHours/10,
		)
		scored[i] = cm
		scores[i] = cm.RiskScore
	}

	threshold, err := quantile(scores, percentile)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].RiskScore != scored[j].RiskScore {
			return scored[i].RiskScore > scored[j].RiskScore
		}
		return scored[i].Category < scored[j].Category
	})

	result := &ScoringResult{
		Percentile: percentile,
		Threshold:  threshold,
		Categories: scored,
	}
	for _, cm := range scored {
		if cm.RiskScore >= threshold {
			result.HighRisk = append(result.HighRisk, cm)
		}
	}
	return result, nil
}
