// Package incident defines the incident data model and table loading.
// Records are read-only once loaded; analysis stages derive new rows and
// never mutate the source table.
package incident

// Severity is an incident severity level drawn from a fixed ordered set.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// severityOrder is the fixed presentation order, most severe first.
var severityOrder = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// SeverityLevels returns the fixed ordered set of severity levels.
func SeverityLevels() []Severity {
	out := make([]Severity, len(severityOrder))
	copy(out, severityOrder)
	return out
}

// Valid reports whether s is a member of the fixed severity set.
func (s Severity) Valid() bool {
	for _, level := range severityOrder {
		if s == level {
			return true
		}
	}
	return false
}

// recurrenceYes is the literal flag value marking a recurring incident.
const recurrenceYes = "Yes"

// Record is a single row of the incident table.
type Record struct {
	IncidentID      string
	Category        string
	Severity        Severity
	ResolutionHours float64
	Recurrence      string
	RootCause       string
}

// IsRecurring reports whether the record is flagged as a recurring incident.
func (r Record) IsRecurring() bool {
	return r.Recurrence == recurrenceYes
}

// Table is a fully materialized, in-memory incident table.
type Table []Record

// Recurring returns the subset of records flagged as recurring.
func (t Table) Recurring() Table {
	var out Table
	for _, rec := range t {
		if rec.IsRecurring() {
			out = append(out, rec)
		}
	}
	return out
}

// RecurrenceRate returns the overall percentage of recurring records.
func (t Table) RecurrenceRate() float64 {
	if len(t) == 0 {
		return 0
	}
	return float64(len(t.Recurring())) / float64(len(t)) * 100
}
