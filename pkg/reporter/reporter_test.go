package reporter

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskops/riskcheck/pkg/analyzer"
	"github.com/riskops/riskcheck/pkg/incident"
)

func sampleResult(t *testing.T) *analyzer.Result {
	t.Helper()
	var table incident.Table
	for i := 0; i < 6; i++ {
		rec := incident.Record{
			IncidentID:      fmt.Sprintf("N-%d", i),
			Category:        "Network",
			Severity:        incident.SeverityCritical,
			ResolutionHours: 30,
			Recurrence:      "No",
		}
		if i < 4 {
			rec.Recurrence = "Yes"
			rec.RootCause = "Hardware Failure"
		}
		table = append(table, rec)
	}
	table = append(table, incident.Record{
		IncidentID: "A-1", Category: "Access", Severity: incident.SeverityLow,
		ResolutionHours: 2, Recurrence: "No",
	})

	result, err := analyzer.Run(table, analyzer.DefaultOptions())
	require.NoError(t, err)
	return result
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"text", "markdown", "json"} {
		format, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), format)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestGenerateText(t *testing.T) {
	data, err := NewReporter(TextFormat).Generate(sampleResult(t))
	require.NoError(t, err)
	report := string(data)

	assert.Contains(t, report, "EXECUTIVE RISK SUMMARY REPORT")
	assert.Contains(t, report, "OVERALL RISK PROFILE")
	assert.Contains(t, report, "HIGH-RISK CATEGORIES")
	assert.Contains(t, report, "RESOLUTION TIME ANALYSIS")
	assert.Contains(t, report, "RECURRING ISSUES")
	assert.Contains(t, report, "KEY RECOMMENDATIONS")
	assert.Contains(t, report, "Network")
	assert.Contains(t, report, "Hardware Failure")
	assert.Contains(t, report, "END OF EXECUTIVE SUMMARY")
}

func TestGenerateTextEmptyRecurrence(t *testing.T) {
	table := incident.Table{
		{IncidentID: "1", Category: "Ops", Severity: incident.SeverityLow, ResolutionHours: 1, Recurrence: "No"},
	}
	result, err := analyzer.Run(table, analyzer.DefaultOptions())
	require.NoError(t, err)

	data, err := NewReporter(TextFormat).Generate(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), "No recurring issues detected.")
}

func TestGenerateJSON(t *testing.T) {
	data, err := NewReporter(JSONFormat).Generate(sampleResult(t))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "scoring")
	assert.Contains(t, decoded, "recurrence")
	assert.Contains(t, decoded, "recommendations")
}

func TestGenerateMarkdown(t *testing.T) {
	data, err := NewReporter(MarkdownFormat).Generate(sampleResult(t))
	require.NoError(t, err)
	report := string(data)

	assert.Contains(t, report, "# Executive Risk Summary Report")
	assert.Contains(t, report, "## 2. High-Risk Categories")
	assert.Contains(t, report, "| Network |")
	assert.Contains(t, report, "## 5. Key Recommendations")
}

func TestGenerateNilResult(t *testing.T) {
	_, err := NewReporter(TextFormat).Generate(nil)
	assert.Error(t, err)
}

func TestBuildRecommendations(t *testing.T) {
	recs := BuildRecommendations(sampleResult(t))
	require.NotEmpty(t, recs)

	titles := make([]string, 0, len(recs))
	for _, r := range recs {
		titles = append(titles, r.Title)
	}
	assert.Contains(t, titles, "Implement Risk Mitigation Plan for 'Network'")
	assert.Contains(t, titles, "Address Systemic Issues Through Process Redesign")
	assert.Contains(t, titles, "Strengthen Critical Incident Response Capabilities")
	assert.Contains(t, titles, "Optimize Resolution Processes for 'Network'")
	// Standing recommendation always closes the list.
	assert.Equal(t, "Enhance Continuous Monitoring and Compliance Framework", recs[len(recs)-1].Title)
}

func TestBuildRecommendationsQuietData(t *testing.T) {
	table := incident.Table{
		{IncidentID: "1", Category: "Ops", Severity: incident.SeverityLow, ResolutionHours: 1, Recurrence: "No"},
	}
	result, err := analyzer.Run(table, analyzer.DefaultOptions())
	require.NoError(t, err)

	recs := BuildRecommendations(result)
	for _, r := range recs {
		assert.NotEqual(t, "Strengthen Critical Incident Response Capabilities", r.Title)
		assert.NotEqual(t, "Address Systemic Issues Through Process Redesign", r.Title)
	}
}
