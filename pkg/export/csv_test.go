package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskops/riskcheck/pkg/analyzer"
	"github.com/riskops/riskcheck/pkg/incident"
	"github.com/riskops/riskcheck/pkg/register"
)

func sampleResult(t *testing.T) *analyzer.Result {
	t.Helper()
	table := incident.Table{
		{IncidentID: "1", Category: "Network", Severity: incident.SeverityCritical, ResolutionHours: 10, Recurrence: "Yes", RootCause: "Hardware Failure"},
		{IncidentID: "2", Category: "Network", Severity: incident.SeverityHigh, ResolutionHours: 20, Recurrence: "No"},
		{IncidentID: "3", Category: "Access", Severity: incident.SeverityLow, ResolutionHours: 3, Recurrence: "No"},
	}
	result, err := analyzer.Run(table, analyzer.DefaultOptions())
	require.NoError(t, err)
	return result
}

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCategoryMetrics(t *testing.T) {
	result := sampleResult(t)
	var buf bytes.Buffer
	require.NoError(t, WriteCategoryMetrics(&buf, result.Scoring.Categories))

	rows := parseCSV(t, buf.Bytes())
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"category", "incident_count", "avg_severity_score", "avg_resolution_hours", "recurring_incidents", "recurrence_rate", "risk_score"}, rows[0])
	// Highest score first.
	assert.Equal(t, "Network", rows[1][0])
	assert.Equal(t, "2", rows[1][1])
}

func TestWriteRegister(t *testing.T) {
	entries := []register.Entry{{
		RiskID:             "RISK-001",
		Category:           "Network",
		Description:        "Elevated incident rate in Network category (12 incidents).",
		Level:              register.LevelHigh,
		Likelihood:         "High",
		Impact:             "Moderate",
		RiskScore:          40.2,
		IncidentCount:      12,
		AvgResolutionHours: 12.5,
		RecurrenceRate:     30,
		Mitigation:         "Implement preventive controls to reduce incident frequency",
		Status:             register.StatusMitigationRequired,
		ReviewDate:         "2026-03-15",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteRegister(&buf, entries))

	rows := parseCSV(t, buf.Bytes())
	require.Len(t, rows, 2)
	assert.Equal(t, "Risk_ID", rows[0][0])
	assert.Equal(t, "Review_Date", rows[0][12])

	row := rows[1]
	assert.Equal(t, "RISK-001", row[0])
	assert.Equal(t, "40.20", row[6])
	assert.Equal(t, "12.5", row[8])
	assert.Equal(t, "30.0", row[9])
	assert.Equal(t, register.StatusMitigationRequired, row[11])
}

func TestWriteRegisterFile(t *testing.T) {
	result := sampleResult(t)
	entries, err := register.Build(result, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "risk_register.csv")
	require.NoError(t, WriteRegisterFile(path, entries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows := parseCSV(t, data)
	assert.Len(t, rows, len(entries)+1)
}

func TestExportAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	written, err := ExportAll(dir, sampleResult(t))
	require.NoError(t, err)
	require.Len(t, written, 7)

	for _, path := range written {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.FileExists(t, filepath.Join(dir, "high_risk_categories.csv"))
	assert.FileExists(t, filepath.Join(dir, "top_root_causes.csv"))
}

func TestExportAllNilResult(t *testing.T) {
	_, err := ExportAll(t.TempDir(), nil)
	assert.Error(t, err)
}
