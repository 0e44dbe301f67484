package incident

import "fmt"

// InputError reports a source table that is missing, unreadable, or missing
// required columns. It always aborts before any metric computation.
type InputError struct {
	Source string
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("incident source %q: %v", e.Source, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// DataQualityError reports a record value outside the fixed domain, such as
// a severity not present in the weight table. It is fatal for the run.
type DataQualityError struct {
	IncidentID string
	Field      string
	Value      string
	Reason     string
}

func (e *DataQualityError) Error() string {
	if e.IncidentID != "" {
		return fmt.Sprintf("incident %s: %s %q %s", e.IncidentID, e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s %q %s", e.Field, e.Value, e.Reason)
}
