package incident

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// requiredColumns are the header names every incident source must provide.
var requiredColumns = []string{
	"incident_id",
	"category",
	"severity",
	"resolution_time_hours",
	"recurrence",
	"root_cause",
}

// LoadCSV reads an incident table from a CSV file. The file must carry a
// header row containing at least the required columns; extra columns are
// ignored. Any failure is reported as an InputError before analysis runs.
func LoadCSV(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Source: path, Err: err}
	}
	defer f.Close()

	table, err := ReadCSV(f)
	if err != nil {
		return nil, &InputError{Source: path, Err: err}
	}
	return table, nil
}

// ReadCSV parses an incident table from CSV content.
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var table Table
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec, err := parseRecord(row, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		table = append(table, rec)
	}

	if len(table) == 0 {
		return nil, fmt.Errorf("no incident records")
	}
	return table, nil
}

// mapColumns resolves the index of each required column in the header.
func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRecord(row []string, cols map[string]int) (Record, error) {
	field := func(name string) string {
		idx := cols[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	rec := Record{
		IncidentID: field("incident_id"),
		Category:   field("category"),
		Severity:   Severity(field("severity")),
		Recurrence: field("recurrence"),
		RootCause:  field("root_cause"),
	}

	if rec.Category == "" {
		return Record{}, fmt.Errorf("incident %s: empty category", rec.IncidentID)
	}
	if !rec.Severity.Valid() {
		return Record{}, &DataQualityError{
			IncidentID: rec.IncidentID,
			Field:      "severity",
			Value:      string(rec.Severity),
			Reason:     "is not one of Critical, High, Medium, Low",
		}
	}

	hours, err := strconv.ParseFloat(field("resolution_time_hours"), 64)
	if err != nil {
		return Record{}, fmt.Errorf("incident %s: invalid resolution_time_hours: %w", rec.IncidentID, err)
	}
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 {
		return Record{}, fmt.Errorf("incident %s: resolution_time_hours must be finite and >= 0, got %v", rec.IncidentID, hours)
	}
	rec.ResolutionHours = hours

	return rec, nil
}
