package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/contractspec/contractspec/model"
)

// renderText produces the human-readable report: document counts,
// aggregate statistics, the dependency graph as adjacency lines, all
// errors before all warnings, and the final PASS/FAIL line.
func renderText(report *model.Report) []byte {
	var sb strings.Builder

	sb.WriteString("Contract verification report\n")
	fmt.Fprintf(&sb, "Run:       %s\n", report.RunID)
	fmt.Fprintf(&sb, "Generated: %s\n\n", report.GeneratedAt.Format(time.RFC3339))

	fmt.Fprintf(&sb, "Documents:    %d (vocabulary: %s)\n", report.Summary.Documents, report.Vocabulary)
	for _, contract := range report.Contracts {
		fmt.Fprintf(&sb, "  - %s\n", contract)
	}
	fmt.Fprintf(&sb, "Declarations: %d\n", report.Summary.Declarations)
	fmt.Fprintf(&sb, "Imports:      %d\n\n", report.Summary.Imports)

	sb.WriteString("Dependency graph:\n")
	if len(report.Graph.Nodes) == 0 {
		sb.WriteString("  (no contracts)\n")
	}
	for _, node := range report.Graph.Nodes {
		deps := report.Graph.Edges[node]
		if len(deps) == 0 {
			fmt.Fprintf(&sb, "  %s -> (none)\n", node)
			continue
		}
		fmt.Fprintf(&sb, "  %s -> %s\n", node, strings.Join(deps, ", "))
	}
	sb.WriteString("\n")

	writeIssues(&sb, "Errors", report.Errors())
	writeIssues(&sb, "Warnings", report.Warnings())

	if report.Passed {
		sb.WriteString("Result: PASS\n")
	} else {
		fmt.Fprintf(&sb, "Result: FAIL (%d error(s))\n", report.Summary.Errors)
	}

	return []byte(sb.String())
}

func writeIssues(sb *strings.Builder, title string, issues []model.Issue) {
	fmt.Fprintf(sb, "%s (%d):\n", title, len(issues))
	if len(issues) == 0 {
		sb.WriteString("  (none)\n\n")
		return
	}
	for _, issue := range issues {
		loc := issue.Document
		if issue.Line > 0 {
			loc = fmt.Sprintf("%s:%d", issue.Document, issue.Line)
		}
		if loc != "" {
			fmt.Fprintf(sb, "  [%s] %s: %s\n", issue.Category, loc, issue.Message)
		} else {
			fmt.Fprintf(sb, "  [%s] %s\n", issue.Category, issue.Message)
		}
		if issue.Suggestion != "" {
			fmt.Fprintf(sb, "      suggestion: %s\n", issue.Suggestion)
		}
	}
	sb.WriteString("\n")
}
