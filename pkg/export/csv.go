// Package export serializes derived tables to flat CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/riskops/riskcheck/pkg/analyzer"
	"github.com/riskops/riskcheck/pkg/register"
)

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeAll(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteCategoryMetrics writes scored category metrics as CSV.
func WriteCategoryMetrics(w io.Writer, metrics []analyzer.CategoryMetrics) error {
	header := []string{"category", "incident_count", "avg_severity_score", "avg_resolution_hours", "recurring_incidents", "recurrence_rate", "risk_score"}
	rows := make([][]string, 0, len(metrics))
	for _, cm := range metrics {
		rows = append(rows, []string{
			cm.Category,
			strconv.Itoa(cm.IncidentCount),
			fnum(cm.AvgSeverityScore),
			fnum(cm.AvgResolutionHours),
			strconv.Itoa(cm.RecurringIncidents),
			fnum(cm.RecurrenceRate),
			fnum(cm.RiskScore),
		})
	}
	return writeAll(w, header, rows)
}

// WriteSeverityMetrics writes per-severity resolution metrics as CSV.
func WriteSeverityMetrics(w io.Writer, metrics []analyzer.SeverityMetrics) error {
	header := []string{"severity", "avg_hours", "median_hours", "incident_count"}
	rows := make([][]string, 0, len(metrics))
	for _, sm := range metrics {
		rows = append(rows, []string{string(sm.Severity), fnum(sm.AvgHours), fnum(sm.MedianHours), strconv.Itoa(sm.IncidentCount)})
	}
	return writeAll(w, header, rows)
}

// WriteResolution writes per-category resolution statistics as CSV.
func WriteResolution(w io.Writer, stats []analyzer.CategoryResolution) error {
	header := []string{"category", "avg_hours", "median_hours", "min_hours", "max_hours", "std_dev"}
	rows := make([][]string, 0, len(stats))
	for _, cr := range stats {
		rows = append(rows, []string{cr.Category, fnum(cr.AvgHours), fnum(cr.MedianHours), fnum(cr.MinHours), fnum(cr.MaxHours), fnum(cr.StdDev)})
	}
	return writeAll(w, header, rows)
}

// WriteDistribution writes the severity distribution as CSV.
func WriteDistribution(w io.Writer, dist []analyzer.SeverityDistribution) error {
	header := []string{"severity", "count", "percentage"}
	rows := make([][]string, 0, len(dist))
	for _, d := range dist {
		rows = append(rows, []string{string(d.Severity), strconv.Itoa(d.Count), fnum(d.Percentage)})
	}
	return writeAll(w, header, rows)
}

// WriteRecurring writes the recurring-by-category table as CSV.
func WriteRecurring(w io.Writer, categories []analyzer.RecurringCategory) error {
	header := []string{"category", "recurring_count", "most_common_severity", "avg_resolution_hours"}
	rows := make([][]string, 0, len(categories))
	for _, rc := range categories {
		rows = append(rows, []string{rc.Category, strconv.Itoa(rc.RecurringCount), string(rc.MostCommonSeverity), fnum(rc.AvgResolutionHours)})
	}
	return writeAll(w, header, rows)
}

// WriteRootCauses writes the root-cause ranking as CSV.
func WriteRootCauses(w io.Writer, causes []analyzer.RootCause) error {
	header := []string{"root_cause", "occurrence_count", "affected_categories"}
	rows := make([][]string, 0, len(causes))
	for _, rc := range causes {
		rows = append(rows, []string{rc.Cause, strconv.Itoa(rc.OccurrenceCount), rc.AffectedList()})
	}
	return writeAll(w, header, rows)
}

// WriteRegister writes the risk register as CSV. Column names and number
// formatting follow the register's external contract.
func WriteRegister(w io.Writer, entries []register.Entry) error {
	header := []string{
		"Risk_ID", "Category", "Risk_Description", "Risk_Level", "Likelihood", "Impact",
		"Risk_Score", "Incident_Count", "Avg_Resolution_Hours", "Recurrence_Rate_%",
		"Mitigation_Strategy", "Status", "Review_Date",
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.RiskID,
			e.Category,
			e.Description,
			string(e.Level),
			e.Likelihood,
			e.Impact,
			fmt.Sprintf("%.2f", e.RiskScore),
			strconv.Itoa(e.IncidentCount),
			fmt.Sprintf("%.1f", e.AvgResolutionHours),
			fmt.Sprintf("%.1f", e.RecurrenceRate),
			e.Mitigation,
			e.Status,
			e.ReviewDate,
		})
	}
	return writeAll(w, header, rows)
}

// WriteRegisterFile writes the risk register CSV to path.
func WriteRegisterFile(path string, entries []register.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create register file: %w", err)
	}
	defer f.Close()
	if err := WriteRegister(f, entries); err != nil {
		return fmt.Errorf("write register: %w", err)
	}
	return f.Close()
}

// ExportAll writes every derived table of the result into dir, one CSV per
// table, and returns the written file paths.
func ExportAll(dir string, result *analyzer.Result) ([]string, error) {
	if result == nil {
		return nil, fmt.Errorf("nil analysis result")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"category_metrics.csv", func(w io.Writer) error { return WriteCategoryMetrics(w, result.Scoring.Categories) }},
		{"high_risk_categories.csv", func(w io.Writer) error { return WriteCategoryMetrics(w, result.Scoring.HighRisk) }},
		{"resolution_by_category.csv", func(w io.Writer) error { return WriteResolution(w, result.Aggregation.Resolution) }},
		{"resolution_by_severity.csv", func(w io.Writer) error { return WriteSeverityMetrics(w, result.Aggregation.BySeverity) }},
		{"severity_distribution.csv", func(w io.Writer) error { return WriteDistribution(w, result.Aggregation.Distribution) }},
		{"recurring_by_category.csv", func(w io.Writer) error { return WriteRecurring(w, result.Recurrence.ByCategory) }},
		{"top_root_causes.csv", func(w io.Writer) error { return WriteRootCauses(w, result.Recurrence.RootCauses) }},
	}

	var written []string
	for _, file := range files {
		path := filepath.Join(dir, file.name)
		f, err := os.Create(path)
		if err != nil {
			return written, err
		}
		err = file.write(f)
		closeErr := f.Close()
		if err != nil {
			return written, fmt.Errorf("write %s: %w", file.name, err)
		}
		if closeErr != nil {
			return written, closeErr
		}
		written = append(written, path)
	}
	return written, nil
}
