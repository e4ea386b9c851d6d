// Package report provides output formatters for Vouch check results
// in JSON and human-readable text formats.
package report

import (
	"encoding/json"
	"io"

	"github.com/unbound-force/vouch/internal/check"
	"github.com/unbound-force/vouch/internal/runner"
)

// Summary carries run-level counts alongside the findings.
type Summary struct {
	Units    int `json:"units"`
	Findings int `json:"findings"`
	Errors   int `json:"errors"`
}

// JSONReport is the top-level JSON output structure.
type JSONReport struct {
	Version  string             `json:"version"`
	Findings []check.Finding    `json:"findings"`
	Errors   []runner.UnitError `json:"errors,omitempty"`
	Summary  Summary            `json:"summary"`
}

// WriteJSON writes a run result as formatted JSON to the writer.
func WriteJSON(w io.Writer, res *runner.Result, version string) error {
	findings := res.Findings
	if findings == nil {
		findings = []check.Finding{}
	}
	report := JSONReport{
		Version:  version,
		Findings: findings,
		Errors:   res.Errors,
		Summary: Summary{
			Units:    res.Units,
			Findings: len(res.Findings),
			Errors:   len(res.Errors),
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
