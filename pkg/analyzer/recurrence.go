package analyzer

import (
	"sort"
	"strings"

	"github.com/riskops/riskcheck/pkg/incident"
)

// DefaultRootCauseLimit is the default display truncation for the
// root-cause ranking.
const DefaultRootCauseLimit = 10

// RecurringCategory summarizes the recurring incidents of one category.
type RecurringCategory struct {
	Category           string            `json:"category"`
	RecurringCount     int               `json:"recurring_count"`
	MostCommonSeverity incident.Severity `json:"most_common_severity"`
	AvgResolutionHours float64           `json:"avg_resolution_hours"`
}

// RootCause summarizes one root cause among recurring incidents.
type RootCause struct {
	Cause           string `json:"cause"`
	OccurrenceCount int    `json:"occurrence_count"`
	// AffectedCategories is de-duplicated, preserving first-seen order.
	AffectedCategories []string `json:"affected_categories"`
}

// AffectedList renders the affected categories as a joined string.
func (rc RootCause) AffectedList() string {
	return strings.Join(rc.AffectedCategories, ", ")
}

// RecurrenceAnalysis is the output of the recurrence stage. An empty
// analysis is a valid, reportable state, not an error.
type RecurrenceAnalysis struct {
	ByCategory []RecurringCategory `json:"by_category"`
	RootCauses []RootCause         `json:"root_causes"`
}

// Empty reports whether no recurring incidents were found.
func (ra *RecurrenceAnalysis) Empty() bool {
	return len(ra.ByCategory) == 0
}

// HasCategory reports whether the category has recurring incidents.
func (ra *RecurrenceAnalysis) HasCategory(category string) bool {
	for _, rc := range ra.ByCategory {
		if rc.Category == category {
			return true
		}
	}
	return false
}

// AnalyzeRecurrence isolates recurring incidents and ranks categories by
// recurring count and root causes by occurrence count. rootCauseLimit caps
// the root-cause ranking for display; it is a display policy, not a scoring
// decision. Records without a root cause are excluded from the root-cause
// ranking only.
func AnalyzeRecurrence(table incident.Table, rootCauseLimit int) *RecurrenceAnalysis {
	if rootCauseLimit <= 0 {
		rootCauseLimit = DefaultRootCauseLimit
	}
	recurring := table.Recurring()
	analysis := &RecurrenceAnalysis{}
	if len(recurring) == 0 {
		return analysis
	}

	byCategory := groupByCategory(recurring)
	for _, category := range sortedKeys(byCategory) {
		records := byCategory[category]
		var hours []float64
		for _, rec := range records {
			hours = append(hours, rec.ResolutionHours)
		}
		analysis.ByCategory = append(analysis.ByCategory, RecurringCategory{
			Category:           category,
			RecurringCount:     len(records),
			MostCommonSeverity: modalSeverity(records),
			AvgResolutionHours: round2(mean(hours)),
		})
	}
	sort.SliceStable(analysis.ByCategory, func(i, j int) bool {
		if analysis.ByCategory[i].RecurringCount != analysis.ByCategory[j].RecurringCount {
			return analysis.ByCategory[i].RecurringCount > analysis.ByCategory[j].RecurringCount
		}
		return analysis.ByCategory[i].Category < analysis.ByCategory[j].Category
	})

	analysis.RootCauses = rankRootCauses(recurring, rootCauseLimit)
	return analysis
}

// modalSeverity returns the most frequent severity among the records.
// Ties are broken by the fixed severity order, most severe first.
func modalSeverity(records incident.Table) incident.Severity {
	counts := make(map[incident.Severity]int)
	for _, rec := range records {
		counts[rec.Severity]++
	}
	var mode incident.Severity
	best := -1
	for _, level := range incident.SeverityLevels() {
		if counts[level] > best {
			best = counts[level]
			mode = level
		}
	}
	return mode
}

func rankRootCauses(recurring incident.Table, limit int) []RootCause {
	index := make(map[string]*RootCause)
	var order []string
	for _, rec := range recurring {
		if rec.RootCause == "" {
			continue
		}
		rc, ok := index[rec.RootCause]
		if !ok {
			rc = &RootCause{Cause: rec.RootCause}
			index[rec.RootCause] = rc
			order = append(order, rec.RootCause)
		}
		rc.OccurrenceCount++
		if !contains(rc.AffectedCategories, rec.Category) {
			rc.AffectedCategories = append(rc.AffectedCategories, rec.Category)
		}
	}

	ranked := make([]RootCause, 0, len(order))
	for _, cause := range order {
		ranked = append(ranked, *index[cause])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].OccurrenceCount != ranked[j].OccurrenceCount {
			return ranked[i].OccurrenceCount > ranked[j].OccurrenceCount
		}
		return ranked[i].Cause < ranked[j].Cause
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
