package reporter

import (
	"fmt"
	"strings"

	"github.com/riskops/riskcheck/pkg/analyzer"
)

const lineWidth = 80

// renderText renders the plain-text executive summary.
func renderText(result *analyzer.Result) []byte {
	var sb strings.Builder
	rule := strings.Repeat("=", lineWidth)
	thin := strings.Repeat("-", lineWidth)

	sb.WriteString(rule + "\n")
	sb.WriteString("EXECUTIVE RISK SUMMARY REPORT\n")
	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf("Report Generated: %s\n", result.GeneratedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString("Analysis Period: All Available Data\n")
	sb.WriteString(fmt.Sprintf("Total Incidents Analyzed: %d\n", result.TotalIncidents))
	sb.WriteString(rule + "\n")

	section := func(title string) {
		sb.WriteString("\n" + title + "\n")
		sb.WriteString(thin + "\n")
	}

	// Overall risk profile.
	section("OVERALL RISK PROFILE")
	sb.WriteString("\nSeverity Distribution:\n")
	for _, d := range result.Aggregation.Distribution {
		bar := strings.Repeat("#", int(d.Percentage/2))
		sb.WriteString(fmt.Sprintf("  %-12s: %3d incidents (%5.1f%%) %s\n", d.Severity, d.Count, d.Percentage, bar))
	}
	sb.WriteString(fmt.Sprintf("\nOverall Recurrence Rate: %.1f%%\n", result.OverallRecurrenceRate))

	// High-risk categories.
	section("HIGH-RISK CATEGORIES (Immediate Attention Required)")
	if len(result.Scoring.HighRisk) == 0 {
		sb.WriteString("\nNo categories cleared the risk threshold.\n")
	} else {
		sb.WriteString("\nRisk scores are calculated based on frequency, severity, recurrence, and resolution time.\n")
		sb.WriteString(fmt.Sprintf("\n%-20s %-12s %-12s %-15s %s\n", "Category", "Risk Score", "Incidents", "Recurrence %", "Avg Resolution"))
		sb.WriteString(thin + "\n")
		for _, cm := range result.Scoring.HighRisk {
			sb.WriteString(fmt.Sprintf("%-20s %-12.2f %-12d %-15.1f %.1f hours\n",
				cm.Category, cm.RiskScore, cm.IncidentCount, cm.RecurrenceRate, cm.AvgResolutionHours))
		}
		top := result.Scoring.HighRisk[0]
		sb.WriteString("\nCRITICAL INSIGHT:\n")
		sb.WriteString(fmt.Sprintf("  '%s' presents the highest risk (score: %.2f)\n", top.Category, top.RiskScore))
		sb.WriteString("  This category requires immediate systematic intervention.\n")
	}

	// Resolution performance.
	section("RESOLUTION TIME ANALYSIS")
	sb.WriteString("\nAverage Resolution Time by Category:\n")
	sb.WriteString(fmt.Sprintf("\n%-20s %-12s %-15s %s\n", "Category", "Avg Hours", "Median Hours", "Range"))
	sb.WriteString(thin + "\n")
	for _, cr := range result.Aggregation.Resolution {
		sb.WriteString(fmt.Sprintf("%-20s %-12.1f %-15.1f %.0f - %.0f\n",
			cr.Category, cr.AvgHours, cr.MedianHours, cr.MinHours, cr.MaxHours))
	}
	sb.WriteString("\nResolution Time by Severity Level:\n")
	for _, sm := range result.Aggregation.BySeverity {
		sb.WriteString(fmt.Sprintf("  %-10s: %6.1f hours average (%d incidents)\n", sm.Severity, sm.AvgHours, sm.IncidentCount))
	}

	// Recurring issues.
	section("RECURRING ISSUES (Systemic Problems)")
	if result.Recurrence.Empty() {
		sb.WriteString("\nNo recurring issues detected.\n")
	} else {
		sb.WriteString("\nRecurring Issues by Category:\n")
		sb.WriteString(fmt.Sprintf("\n%-20s %-18s %-25s %s\n", "Category", "Recurring Count", "Most Common Severity", "Avg Resolution"))
		sb.WriteString(thin + "\n")
		for _, rc := range result.Recurrence.ByCategory {
			sb.WriteString(fmt.Sprintf("%-20s %-18d %-25s %.1f hours\n",
				rc.Category, rc.RecurringCount, rc.MostCommonSeverity, rc.AvgResolutionHours))
		}
		if len(result.Recurrence.RootCauses) > 0 {
			sb.WriteString("\nTop Recurring Root Causes:\n")
			for i, cause := range result.Recurrence.RootCauses {
				if i >= 5 {
					break
				}
				sb.WriteString(fmt.Sprintf("  %d. %s (%d occurrences)\n", i+1, cause.Cause, cause.OccurrenceCount))
				sb.WriteString(fmt.Sprintf("     Affects: %s\n", cause.AffectedList()))
			}
		}
	}

	// Recommendations.
	section("KEY RECOMMENDATIONS")
	for i, rec := range BuildRecommendations(result) {
		sb.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, rec.Title))
		sb.WriteString(fmt.Sprintf("   %s\n", rec.Description))
	}

	sb.WriteString("\n" + rule + "\n")
	sb.WriteString("END OF EXECUTIVE SUMMARY\n")
	sb.WriteString(rule + "\n")

	return []byte(sb.String())
}
