// Package register builds the governance-facing risk register from the
// high-risk categories identified by the analysis engine.
package register

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskops/riskcheck/pkg/analyzer"
)

// RiskLevel classifies a register entry by its risk score.
type RiskLevel string

const (
	LevelCritical RiskLevel = "Critical"
	LevelHigh     RiskLevel = "High"
	LevelMedium   RiskLevel = "Medium"
	LevelLow      RiskLevel = "Low"
)

// Status values for register entries.
const (
	StatusMitigationRequired = "Active - Mitigation Required"
	StatusMonitoring         = "Active - Monitoring"
)

// SequenceError reports the register being built before the scoring stage
// has run. It is a usage error, distinct from data errors.
type SequenceError struct {
	Stage string
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("risk register requires the %s stage to run first", e.Stage)
}

// Entry is one row of the risk register, covering one high-risk category.
type Entry struct {
	RiskID             string    `json:"risk_id"`
	Category           string    `json:"category"`
	Description        string    `json:"risk_description"`
	Level              RiskLevel `json:"risk_level"`
	Likelihood         string    `json:"likelihood"`
	Impact             string    `json:"impact"`
	RiskScore          float64   `json:"risk_score"`
	IncidentCount      int       `json:"incident_count"`
	AvgResolutionHours float64   `json:"avg_resolution_hours"`
	RecurrenceRate     float64   `json:"recurrence_rate"`
	Mitigation         string    `json:"mitigation_strategy"`
	Status             string    `json:"status"`
	ReviewDate         string    `json:"review_date"`
}

// Build produces one register entry per high-risk category, numbered
// sequentially from 1 in descending risk-score order. now stamps the review
// date. Building before scoring has run is a SequenceError; an empty
// high-risk set yields an empty register, which is a valid outcome.
func Build(result *analyzer.Result, now time.Time) ([]Entry, error) {
	if result == nil || result.Scoring == nil {
		return nil, &SequenceError{Stage: "risk scoring"}
	}

	reviewDate := now.Format("2006-01-02")
	entries := make([]Entry, 0, len(result.Scoring.HighRisk))
	for i, cm := range result.Scoring.HighRisk {
		level, likelihood := tierRisk(cm.RiskScore)
		entries = append(entries, Entry{
			RiskID:             fmt.Sprintf("RISK-%03d", i+1),
			Category:           cm.Category,
			Description:        describe(cm, result.Recurrence),
			Level:              level,
			Likelihood:         likelihood,
			Impact:             tierImpact(cm.AvgResolutionHours),
			RiskScore:          cm.RiskScore,
			IncidentCount:      cm.IncidentCount,
			AvgResolutionHours: cm.AvgResolutionHours,
			RecurrenceRate:     cm.RecurrenceRate,
			Mitigation:         mitigation(cm),
			Status:             status(level),
			ReviewDate:         reviewDate,
		})
	}
	return entries, nil
}

// tierRisk maps a risk score to its level and likelihood. Inclusive lower
// bounds, evaluated top-down, first match wins.
func tierRisk(score float64) (RiskLevel, string) {
	switch {
	case score >= 50:
		return LevelCritical, "Very High"
	case score >= 30:
		return LevelHigh, "High"
	case score >= 15:
		return LevelMedium, "Medium"
	default:
		return LevelLow, "Low"
	}
}

// tierImpact maps average resolution hours to an impact rating.
func tierImpact(hours float64) string {
	switch {
	case hours >= 40:
		return "Severe"
	case hours >= 20:
		return "Major"
	case hours >= 10:
		return "Moderate"
	default:
		return "Minor"
	}
}

// describe builds the risk description. The recurrence clause is appended
// only when the category showed up in the recurrence analysis.
func describe(cm analyzer.CategoryMetrics, recurrence *analyzer.RecurrenceAnalysis) string {
	recurrenceText := ""
	if recurrence != nil && recurrence.HasCategory(cm.Category) {
		recurrenceText = fmt.Sprintf(" with %.0f%% recurrence rate", cm.RecurrenceRate)
	}
	return fmt.Sprintf(
		"Elevated incident rate in %s category (%d incidents%s). "+
			"Average resolution time of %.1f hours indicates potential resource or process constraints.",
		cm.Category, cm.IncidentCount, recurrenceText, cm.AvgResolutionHours,
	)
}

// mitigation assembles the mitigation strategy from three independent
// conditions, joined with "; ". No match falls back to trend monitoring.
func mitigation(cm analyzer.CategoryMetrics) string {
	var clauses []string
	if cm.RecurrenceRate > 50 {
		clauses = append(clauses, "Conduct root cause analysis to address systemic issues")
	}
	if cm.AvgResolutionHours > 30 {
		clauses = append(clauses, "Review and optimize incident response procedures")
	}
	if cm.IncidentCount > 8 {
		clauses = append(clauses, "Implement preventive controls to reduce incident frequency")
	}
	if len(clauses) == 0 {
		return "Monitor trends and maintain current controls"
	}
	return strings.Join(clauses, "; ")
}

func status(level RiskLevel) string {
	if level == LevelCritical || level == LevelHigh {
		return StatusMitigationRequired
	}
	return StatusMonitoring
}
