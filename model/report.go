package model

import (
	"sort"
	"time"
)

// GraphSnapshot is the dependency graph captured in a report: contract
// document identifiers and their adjacency lists. It is exposed whether
// or not cycles were found.
type GraphSnapshot struct {
	// Nodes lists contract document identifiers in sorted order.
	Nodes []string `json:"nodes" yaml:"nodes"`

	// Edges maps a contract to the contracts it depends on.
	Edges map[string][]string `json:"edges" yaml:"edges"`
}

// Summary holds the aggregate counts for one run.
type Summary struct {
	Documents    int `json:"documents" yaml:"documents"`
	Declarations int `json:"declarations" yaml:"declarations"`
	Imports      int `json:"imports" yaml:"imports"`
	Errors       int `json:"errors" yaml:"errors"`
	Warnings     int `json:"warnings" yaml:"warnings"`
}

// Report aggregates one verification run.
type Report struct {
	// RunID uniquely identifies this run.
	RunID string `json:"run_id" yaml:"run_id"`

	// GeneratedAt is when the report was produced. It is the only
	// non-deterministic field; issue content depends solely on input.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Vocabulary is the shared-vocabulary document identifier.
	Vocabulary string `json:"vocabulary" yaml:"vocabulary"`

	// Contracts lists the contract document identifiers.
	Contracts []string `json:"contracts" yaml:"contracts"`

	Summary Summary `json:"summary" yaml:"summary"`

	// Issues holds every finding from every check, errors and warnings
	// interleaved in check order.
	Issues []Issue `json:"issues" yaml:"issues"`

	Graph GraphSnapshot `json:"graph" yaml:"graph"`

	// Passed is true iff the run produced zero error-severity issues.
	Passed bool `json:"passed" yaml:"passed"`
}

// Errors returns the error-severity issues in report order.
func (r *Report) Errors() []Issue {
	return r.bySeverity(SeverityError)
}

// Warnings returns the warning-severity issues in report order.
func (r *Report) Warnings() []Issue {
	return r.bySeverity(SeverityWarning)
}

func (r *Report) bySeverity(sev Severity) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			out = append(out, issue)
		}
	}
	return out
}

// Finalize computes the summary counts and pass/fail outcome from the
// collected issues and sorts the contract list for stable output.
func (r *Report) Finalize(declarations, imports int) {
	sort.Strings(r.Contracts)

	r.Summary.Documents = len(r.Contracts) + 1
	r.Summary.Declarations = declarations
	r.Summary.Imports = imports
	r.Summary.Errors = 0
	r.Summary.Warnings = 0
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityError:
			r.Summary.Errors++
		case SeverityWarning:
			r.Summary.Warnings++
		}
	}
	r.Passed = r.Summary.Errors == 0
}
