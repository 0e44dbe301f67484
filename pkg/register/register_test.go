package register

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskops/riskcheck/pkg/analyzer"
)

var buildTime = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func resultWith(highRisk []analyzer.CategoryMetrics, recurrence *analyzer.RecurrenceAnalysis) *analyzer.Result {
	if recurrence == nil {
		recurrence = &analyzer.RecurrenceAnalysis{}
	}
	return &analyzer.Result{
		Scoring:    &analyzer.ScoringResult{HighRisk: highRisk, Categories: highRisk},
		Recurrence: recurrence,
	}
}

func TestBuildTieringPureFunction(t *testing.T) {
	cm := analyzer.CategoryMetrics{
		Category:           "Network",
		IncidentCount:      10,
		AvgResolutionHours: 45,
		RecurrenceRate:     60,
		RiskScore:          55,
	}
	recurrence := &analyzer.RecurrenceAnalysis{
		ByCategory: []analyzer.RecurringCategory{{Category: "Network", RecurringCount: 6}},
	}

	entries, err := Build(resultWith([]analyzer.CategoryMetrics{cm}, recurrence), buildTime)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "RISK-001", e.RiskID)
	assert.Equal(t, LevelCritical, e.Level)
	assert.Equal(t, "Very High", e.Likelihood)
	assert.Equal(t, "Severe", e.Impact)
	assert.Equal(t, StatusMitigationRequired, e.Status)
	assert.Equal(t, "2026-03-15", e.ReviewDate)

	// All three clauses fire and join with "; ".
	assert.Equal(t,
		"Conduct root cause analysis to address systemic issues; "+
			"Review and optimize incident response procedures; "+
			"Implement preventive controls to reduce incident frequency",
		e.Mitigation)

	assert.Contains(t, e.Description, "with 60% recurrence rate")
}

func TestBuildTieringThresholds(t *testing.T) {
	tests := []struct {
		score      float64
		level      RiskLevel
		likelihood string
	}{
		{55, LevelCritical, "Very High"},
		{50, LevelCritical, "Very High"},
		{49.99, LevelHigh, "High"},
		{30, LevelHigh, "High"},
		{29.99, LevelMedium, "Medium"},
		{15, LevelMedium, "Medium"},
		{14.99, LevelLow, "Low"},
		{0, LevelLow, "Low"},
	}
	for _, tt := range tests {
		level, likelihood := tierRisk(tt.score)
		assert.Equal(t, tt.level, level, "score %v", tt.score)
		assert.Equal(t, tt.likelihood, likelihood, "score %v", tt.score)
	}
}

func TestBuildImpactThresholds(t *testing.T) {
	tests := []struct {
		hours  float64
		impact string
	}{
		{45, "Severe"},
		{40, "Severe"},
		{39.99, "Major"},
		{20, "Major"},
		{19.99, "Moderate"},
		{10, "Moderate"},
		{9.99, "Minor"},
		{0, "Minor"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.impact, tierImpact(tt.hours), "hours %v", tt.hours)
	}
}

func TestBuildDefaultMitigationAndStatus(t *testing.T) {
	cm := analyzer.CategoryMetrics{
		Category:           "Access",
		IncidentCount:      3,
		AvgResolutionHours: 5,
		RecurrenceRate:     10,
		RiskScore:          12,
	}
	entries, err := Build(resultWith([]analyzer.CategoryMetrics{cm}, nil), buildTime)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, LevelLow, e.Level)
	assert.Equal(t, "Monitor trends and maintain current controls", e.Mitigation)
	assert.Equal(t, StatusMonitoring, e.Status)
	// Category never recurred, so no recurrence clause.
	assert.NotContains(t, e.Description, "recurrence rate")
}

func TestBuildSpecExample(t *testing.T) {
	// Score 40.2 with 12h average resolution: High / High / Moderate.
	cm := analyzer.CategoryMetrics{
		Category:           "A",
		IncidentCount:      10,
		AvgResolutionHours: 12,
		RecurrenceRate:     30,
		RiskScore:          40.2,
	}
	entries, err := Build(resultWith([]analyzer.CategoryMetrics{cm}, nil), buildTime)
	require.NoError(t, err)

	e := entries[0]
	assert.Equal(t, LevelHigh, e.Level)
	assert.Equal(t, "High", e.Likelihood)
	assert.Equal(t, "Moderate", e.Impact)
	assert.Equal(t, StatusMitigationRequired, e.Status)
}

func TestBuildSequentialIDs(t *testing.T) {
	highRisk := []analyzer.CategoryMetrics{
		{Category: "A", RiskScore: 60, IncidentCount: 1},
		{Category: "B", RiskScore: 40, IncidentCount: 1},
		{Category: "C", RiskScore: 20, IncidentCount: 1},
	}
	entries, err := Build(resultWith(highRisk, nil), buildTime)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "RISK-001", entries[0].RiskID)
	assert.Equal(t, "RISK-002", entries[1].RiskID)
	assert.Equal(t, "RISK-003", entries[2].RiskID)
	assert.Equal(t, "A", entries[0].Category)
}

func TestBuildBeforeScoringFails(t *testing.T) {
	var seqErr *SequenceError

	_, err := Build(nil, buildTime)
	require.Error(t, err)
	assert.True(t, errors.As(err, &seqErr))

	_, err = Build(&analyzer.Result{}, buildTime)
	require.Error(t, err)
	assert.True(t, errors.As(err, &seqErr))
}

func TestBuildEmptyHighRiskSet(t *testing.T) {
	entries, err := Build(resultWith(nil, nil), buildTime)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
