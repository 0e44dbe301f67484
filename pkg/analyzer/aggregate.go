// Package analyzer implements the incident risk analysis engine: category
// and severity aggregation, composite risk scoring with percentile-based
// high-risk selection, and recurrence / root-cause analysis.
//
// Each stage returns an immutable result struct consumed by the next stage;
// no stage reads implicit shared state, and source records are never
// mutated.
package analyzer

import (
	"fmt"
	"sort"

	"github.com/riskops/riskcheck/pkg/incident"
)

// CategoryMetrics holds the derived metrics for one incident category.
// RecurrenceRate and RiskScore are filled in by the scoring stage.
type CategoryMetrics struct {
	Category           string  `json:"category"`
	IncidentCount      int     `json:"incident_count"`
	AvgSeverityScore   float64 `json:"avg_severity_score"`
	AvgResolutionHours float64 `json:"avg_resolution_hours"`
	RecurringIncidents int     `json:"recurring_incidents"`
	RecurrenceRate     float64 `json:"recurrence_rate"`
	RiskScore          float64 `json:"risk_score"`
}

// SeverityMetrics holds resolution-time statistics for one severity level.
// Levels absent from the data still get a row with a zero count.
type SeverityMetrics struct {
	Severity      incident.Severity `json:"severity"`
	AvgHours      float64           `json:"avg_hours"`
	MedianHours   float64           `json:"median_hours"`
	IncidentCount int               `json:"incident_count"`
}

// CategoryResolution holds the full resolution-time statistics for one
// category, sorted by average descending for reporting.
type CategoryResolution struct {
	Category    string  `json:"category"`
	AvgHours    float64 `json:"avg_hours"`
	MedianHours float64 `json:"median_hours"`
	MinHours    float64 `json:"min_hours"`
	MaxHours    float64 `json:"max_hours"`
	StdDev      float64 `json:"std_dev"`
}

// SeverityDistribution holds the incident share of one severity level.
type SeverityDistribution struct {
	Severity   incident.Severity `json:"severity"`
	Count      int               `json:"count"`
	Percentage float64           `json:"percentage"`
}

// Aggregation is the output of the aggregation stage. All numeric fields
// are rounded to 2 decimal places exactly once, here.
type Aggregation struct {
	TotalIncidents int                    `json:"total_incidents"`
	Categories     []CategoryMetrics      `json:"categories"`
	BySeverity     []SeverityMetrics      `json:"by_severity"`
	Resolution     []CategoryResolution   `json:"resolution_by_category"`
	Distribution   []SeverityDistribution `json:"severity_distribution"`
}

// Aggregate groups the incident table by category and by severity and folds
// each group into its derived metrics. Grouping is explicit (key -> record
// slice) so each fold is independent and testable. An unmapped severity
// fails the run with a DataQualityError.
func Aggregate(table incident.Table, weights incident.Weights) (*Aggregation, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("no incident records to aggregate")
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	byCategory := groupByCategory(table)

	agg := &Aggregation{TotalIncidents: len(table)}

	for _, category := range sortedKeys(byCategory) {
		records := byCategory[category]

		var severitySum float64
		var hours []float64
		recurring := 0
		for _, rec := range records {
			score, err := weights.Score(rec.Severity)
			if err != nil {
				return nil, err
			}
			severitySum += score
			hours = append(hours, rec.ResolutionHours)
			if rec.IsRecurring() {
				recurring++
			}
		}

		agg.Categories = append(agg.Categories, CategoryMetrics{
			Category:           category,
			IncidentCount:      len(records),
			AvgSeverityScore:   round2(severitySum / float64(len(records))),
			AvgResolutionHours: round2(mean(hours)),
			RecurringIncidents: recurring,
		})

		min, max := minMax(hours)
		agg.Resolution = append(agg.Resolution, CategoryResolution{
			Category:    category,
			AvgHours:    round2(mean(hours)),
			MedianHours: round2(median(hours)),
			MinHours:    round2(min),
			MaxHours:    round2(max),
			StdDev:      round2(stddev(hours)),
		})
	}

	// Resolution table is a ranking, slowest categories first.
	sort.SliceStable(agg.Resolution, func(i, j int) bool {
		if agg.Resolution[i].AvgHours != agg.Resolution[j].AvgHours {
			return agg.Resolution[i].AvgHours > agg.Resolution[j].AvgHours
		}
		return agg.Resolution[i].Category < agg.Resolution[j].Category
	})

	// Severity rows keep the fixed display order and include empty levels.
	bySeverity := make(map[incident.Severity][]float64)
	for _, rec := range table {
		bySeverity[rec.Severity] = append(bySeverity[rec.Severity], rec.ResolutionHours)
	}
	for _, level := range incident.SeverityLevels() {
		hours := bySeverity[level]
		agg.BySeverity = append(agg.BySeverity, SeverityMetrics{
			Severity:      level,
			AvgHours:      round2(mean(hours)),
			MedianHours:   round2(median(hours)),
			IncidentCount: len(hours),
		})
		agg.Distribution = append(agg.Distribution, SeverityDistribution{
			Severity:   level,
			Count:      len(hours),
			Percentage: round1(float64(len(hours)) / float64(len(table)) * 100),
		})
	}

	return agg, nil
}

func groupByCategory(table incident.Table) map[string]incident.Table {
	groups := make(map[string]incident.Table)
	for _, rec := range table {
		groups[rec.Category] = append(groups[rec.Category], rec)
	}
	return groups
}

// sortedKeys orders group keys so per-category results are deterministic
// regardless of map iteration order.
func sortedKeys(groups map[string]incident.Table) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
