package reporter

import (
	"fmt"

	"github.com/riskops/riskcheck/pkg/analyzer"
	"github.com/riskops/riskcheck/pkg/incident"
)

// Recommendation is one actionable item in the report.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// BuildRecommendations derives actionable recommendations from the analysis
// result. Each recommendation is conditional on what the data actually
// shows, except the standing monitoring item which always closes the list.
func BuildRecommendations(result *analyzer.Result) []Recommendation {
	var recs []Recommendation

	if result.Scoring != nil && len(result.Scoring.HighRisk) > 0 {
		top := result.Scoring.HighRisk[0]
		recs = append(recs, Recommendation{
			Title: fmt.Sprintf("Implement Risk Mitigation Plan for '%s'", top.Category),
			Description: "Develop comprehensive controls and process improvements to address " +
				"the highest-risk category. Consider root cause analysis workshops and enhanced monitoring.",
		})
	}

	if result.Recurrence != nil && !result.Recurrence.Empty() {
		recs = append(recs, Recommendation{
			Title: "Address Systemic Issues Through Process Redesign",
			Description: fmt.Sprintf("Focus on eliminating recurring issues which represent %d categories. "+
				"Implement preventive controls rather than reactive fixes.", len(result.Recurrence.ByCategory)),
		})
	}

	if rec, ok := criticalResponse(result); ok {
		recs = append(recs, rec)
	}

	if result.Aggregation != nil && len(result.Aggregation.Resolution) > 0 {
		slowest := result.Aggregation.Resolution[0]
		recs = append(recs, Recommendation{
			Title: fmt.Sprintf("Optimize Resolution Processes for '%s'", slowest.Category),
			Description: "Investigate delays in this category and implement process improvements, " +
				"additional training, or automation to reduce resolution time.",
		})
	}

	recs = append(recs, Recommendation{
		Title: "Enhance Continuous Monitoring and Compliance Framework",
		Description: "Implement real-time alerting for high-risk patterns and establish regular " +
			"executive reviews to ensure prompt action on emerging risks.",
	})
	return recs
}

// criticalResponse recommends response-capability work when critical
// incidents are present.
func criticalResponse(result *analyzer.Result) (Recommendation, bool) {
	if result.Aggregation == nil {
		return Recommendation{}, false
	}
	for _, sm := range result.Aggregation.BySeverity {
		if sm.Severity != incident.SeverityCritical || sm.IncidentCount == 0 {
			continue
		}
		return Recommendation{
			Title: "Strengthen Critical Incident Response Capabilities",
			Description: fmt.Sprintf("With %d critical incidents averaging %.1f hours to resolve, "+
				"enhance emergency response procedures and resource allocation.",
				sm.IncidentCount, sm.AvgHours),
		}, true
	}
	return Recommendation{}, false
}
