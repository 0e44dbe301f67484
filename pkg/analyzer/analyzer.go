package analyzer

import (
	"fmt"
	"time"

	"github.com/riskops/riskcheck/pkg/incident"
)

// DefaultPercentile is the default high-risk classification cutoff.
const DefaultPercentile = 75

// Options are the recognized options that alter engine behavior. They are
// passed as parameters, never read from globals.
type Options struct {
	// Percentile is the high-risk cutoff over category risk scores (0-100).
	Percentile float64
	// RootCauseLimit caps the root-cause ranking for display.
	RootCauseLimit int
	// Weights is the severity weight table.
	Weights incident.Weights
}

// DefaultOptions returns the standard engine options.
func DefaultOptions() Options {
	return Options{
		Percentile:     DefaultPercentile,
		RootCauseLimit: DefaultRootCauseLimit,
		Weights:        incident.DefaultWeights(),
	}
}

func (o Options) validate() error {
	if o.Percentile < 0 || o.Percentile > 100 {
		return fmt.Errorf("percentile must be between 0 and 100, got %v", o.Percentile)
	}
	if o.RootCauseLimit <= 0 {
		return fmt.Errorf("root cause limit must be positive, got %d", o.RootCauseLimit)
	}
	return o.Weights.Validate()
}

// Result bundles the immutable outputs of one full analysis run. Each
// derived table is independently retrievable; a re-run produces a fresh
// Result, results are never merged.
type Result struct {
	GeneratedAt           time.Time           `json:"generated_at"`
	TotalIncidents        int                 `json:"total_incidents"`
	OverallRecurrenceRate float64             `json:"overall_recurrence_rate"`
	Aggregation           *Aggregation        `json:"aggregation"`
	Scoring               *ScoringResult      `json:"scoring"`
	Recurrence            *RecurrenceAnalysis `json:"recurrence"`
}

// Run executes the full pipeline: aggregation, risk scoring, and recurrence
// analysis. It makes one pass over the table per stage and fails fast on
// any data-quality problem; it never returns a partial result.
func Run(table incident.Table, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	agg, err := Aggregate(table, opts.Weights)
	if err != nil {
		return nil, err
	}

	scoring, err := Score(agg, opts.Percentile)
	if err != nil {
		return nil, err
	}

	return &Result{
		GeneratedAt:           time.Now(),
		TotalIncidents:        len(table),
		OverallRecurrenceRate: round1(table.RecurrenceRate()),
		Aggregation:           agg,
		Scoring:               scoring,
		Recurrence:            AnalyzeRecurrence(table, opts.RootCauseLimit),
	}, nil
}
