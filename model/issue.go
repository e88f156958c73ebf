package model

import "fmt"

// Severity classifies how an issue affects the run outcome. Only
// error-severity issues flip the overall result to FAIL.
type Severity string

const (
	// SeverityError marks an issue that fails the run.
	SeverityError Severity = "error"

	// SeverityWarning marks an advisory issue.
	SeverityWarning Severity = "warning"
)

// Category identifies which check produced an issue.
type Category string

const (
	// CategoryUnresolvedImport means a contract references a name with
	// no visible declaration and no applicable exemption.
	CategoryUnresolvedImport Category = "unresolved-import"

	// CategoryNamingSimilarity means two declared names are close
	// enough to look like a duplicate-by-typo.
	CategoryNamingSimilarity Category = "naming-similarity"

	// CategoryTypeShapeMismatch means two same-named declarations have
	// incompatible shapes.
	CategoryTypeShapeMismatch Category = "type-shape-mismatch"

	// CategoryCircularDependency means contracts form an import cycle.
	CategoryCircularDependency Category = "circular-dependency"
)

// Issue is one diagnostic finding.
type Issue struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Category Category `json:"category" yaml:"category"`

	// Message is the human-readable description.
	Message string `json:"message" yaml:"message"`

	// Document is the identifier of the document the issue is
	// attributed to.
	Document string `json:"document,omitempty" yaml:"document,omitempty"`

	// Line is the 1-based line number, when known (0 = unknown).
	Line int `json:"line,omitempty" yaml:"line,omitempty"`

	// Suggestion is a free-text remediation hint, when available.
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// String renders the issue in "severity [category] document:line message"
// form for logs and error output.
func (i Issue) String() string {
	loc := i.Document
	if i.Line > 0 {
		loc = fmt.Sprintf("%s:%d", i.Document, i.Line)
	}
	if loc == "" {
		return fmt.Sprintf("%s [%s] %s", i.Severity, i.Category, i.Message)
	}
	return fmt.Sprintf("%s [%s] %s: %s", i.Severity, i.Category, loc, i.Message)
}
