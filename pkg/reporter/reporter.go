// Package reporter renders the executive risk summary from analysis
// results. The engine itself never prints; everything user-facing comes
// through here.
package reporter

import (
	"encoding/json"
	"fmt"

	"github.com/riskops/riskcheck/pkg/analyzer"
)

// Format selects the report output format.
type Format string

const (
	// TextFormat renders a plain-text console report.
	TextFormat Format = "text"
	// MarkdownFormat renders a markdown report.
	MarkdownFormat Format = "markdown"
	// JSONFormat renders the raw result tables as indented JSON.
	JSONFormat Format = "json"
)

// ParseFormat converts a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case TextFormat, MarkdownFormat, JSONFormat:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", name)
	}
}

// Reporter generates executive summary reports.
type Reporter struct {
	format Format
}

// NewReporter creates a reporter for the given format.
func NewReporter(format Format) *Reporter {
	return &Reporter{format: format}
}

// Generate renders the full report for one analysis run.
func (r *Reporter) Generate(result *analyzer.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("nil analysis result")
	}
	switch r.format {
	case JSONFormat:
		return r.generateJSON(result)
	case MarkdownFormat:
		return renderMarkdown(result)
	case TextFormat:
		return renderText(result), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", r.format)
	}
}

// jsonReport is the JSON report envelope.
type jsonReport struct {
	*analyzer.Result
	Recommendations []Recommendation `json:"recommendations"`
}

func (r *Reporter) generateJSON(result *analyzer.Result) ([]byte, error) {
	return json.MarshalIndent(jsonReport{
		Result:          result,
		Recommendations: BuildRecommendations(result),
	}, "", "  ")
}
