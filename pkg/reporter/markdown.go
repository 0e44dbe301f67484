package reporter

import (
	"bytes"
	"text/template"

	"github.com/riskops/riskcheck/pkg/analyzer"
)

// markdownReportTemplate renders the executive summary as markdown.
const markdownReportTemplate = `# Executive Risk Summary Report
**Generated:** {{.Result.GeneratedAt.Format "2006-01-02 15:04:05"}}
**Total Incidents Analyzed:** {{.Result.TotalIncidents}}
**Overall Recurrence Rate:** {{printf "%.1f" .Result.OverallRecurrenceRate}}%

## 1. Overall Risk Profile
| Severity | Count | Percentage |
| :--- | ---: | ---: |
{{range .Result.Aggregation.Distribution}}| {{.Severity}} | {{.Count}} | {{printf "%.1f" .Percentage}}% |
{{end}}
## 2. High-Risk Categories
{{if .Result.Scoring.HighRisk}}Threshold: score >= {{printf "%.2f" .Result.Scoring.Threshold}} ({{printf "%.0f" .Result.Scoring.Percentile}}th percentile)

| Category | Risk Score | Incidents | Recurrence % | Avg Resolution (h) |
| :--- | ---: | ---: | ---: | ---: |
{{range .Result.Scoring.HighRisk}}| {{.Category}} | {{printf "%.2f" .RiskScore}} | {{.IncidentCount}} | {{printf "%.1f" .RecurrenceRate}} | {{printf "%.1f" .AvgResolutionHours}} |
{{end}}{{else}}No categories cleared the risk threshold.
{{end}}
## 3. Resolution Time Analysis
| Category | Avg (h) | Median (h) | Min (h) | Max (h) | Std Dev |
| :--- | ---: | ---: | ---: | ---: | ---: |
{{range .Result.Aggregation.Resolution}}| {{.Category}} | {{printf "%.2f" .AvgHours}} | {{printf "%.2f" .MedianHours}} | {{printf "%.2f" .MinHours}} | {{printf "%.2f" .MaxHours}} | {{printf "%.2f" .StdDev}} |
{{end}}
## 4. Recurring Issues
{{if .Result.Recurrence.Empty}}No recurring issues detected.
{{else}}| Category | Recurring Count | Most Common Severity | Avg Resolution (h) |
| :--- | ---: | :--- | ---: |
{{range .Result.Recurrence.ByCategory}}| {{.Category}} | {{.RecurringCount}} | {{.MostCommonSeverity}} | {{printf "%.1f" .AvgResolutionHours}} |
{{end}}
### Top Recurring Root Causes
{{range $i, $c := .Result.Recurrence.RootCauses}}{{add $i 1}}. **{{$c.Cause}}** ({{$c.OccurrenceCount}} occurrences) — affects: {{$c.AffectedList}}
{{end}}{{end}}
## 5. Key Recommendations
{{range $i, $r := .Recommendations}}{{add $i 1}}. **{{$r.Title}}**
   {{$r.Description}}
{{end}}`

type markdownData struct {
	Result          *analyzer.Result
	Recommendations []Recommendation
}

func renderMarkdown(result *analyzer.Result) ([]byte, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}).Parse(markdownReportTemplate)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, markdownData{
		Result:          result,
		Recommendations: BuildRecommendations(result),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
