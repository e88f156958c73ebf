// Package naming finds near-duplicate declared names across a document
// set using normalized edit-distance similarity. Recognized naming
// conventions (create/update pairs, id/ref forms, and so on) are
// suppressed via configuration-driven rules rather than hard-coded
// branching.
package naming

import (
	"fmt"
	"sort"
	"strings"

	"github.com/contractspec/contractspec/config"
	"github.com/contractspec/contractspec/model"
)

// NameRef is one declared name together with where it was first
// declared, for issue attribution.
type NameRef struct {
	Name     string
	Document string
	Line     int
}

// Auditor audits declared names for near-duplicates and orphaned
// reference types.
type Auditor struct {
	pairRules []config.PairRule
	suffixes  []string
}

// New creates an Auditor from the naming configuration. The suffix set
// is expanded with plural forms and sorted longest-first so the most
// specific suffix wins.
func New(cfg config.NamingConfig) *Auditor {
	seen := make(map[string]bool)
	var suffixes []string
	add := func(s string) {
		s = strings.ToLower(s)
		if s != "" && !seen[s] {
			seen[s] = true
			suffixes = append(suffixes, s)
		}
	}
	for _, s := range cfg.StripSuffixes {
		add(s)
		add(pluralize(s))
	}
	sort.Slice(suffixes, func(i, j int) bool {
		if len(suffixes[i]) != len(suffixes[j]) {
			return len(suffixes[i]) > len(suffixes[j])
		}
		return suffixes[i] < suffixes[j]
	})

	return &Auditor{pairRules: cfg.PairRules, suffixes: suffixes}
}

// Audit reports one warning per unordered pair of names whose
// similarity is at or above the threshold and strictly below 1.0,
// excluding pairs matching a recognized naming convention. Exact
// duplicates are a shape-comparison concern, not a similarity one.
func (a *Auditor) Audit(names []NameRef, threshold float64) []model.Issue {
	sorted := make([]NameRef, len(names))
	copy(sorted, names)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var issues []model.Issue
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			x, y := sorted[i], sorted[j]
			sim := Similarity(x.Name, y.Name)
			if sim < threshold || sim >= 1.0 {
				continue
			}
			if a.Suppressed(x.Name, y.Name) {
				continue
			}
			issues = append(issues, model.Issue{
				Severity: model.SeverityWarning,
				Category: model.CategoryNamingSimilarity,
				Message: fmt.Sprintf("%q (%s) and %q (%s) are %.0f%% similar; possible duplicate",
					x.Name, x.Document, y.Name, y.Document, sim*100),
				Document:   x.Document,
				Line:       x.Line,
				Suggestion: "rename one of them or consolidate into a single declaration",
			})
		}
	}
	return issues
}

// Suppressed reports whether a name pair matches a recognized
// legitimate-pairing convention.
func (a *Auditor) Suppressed(x, y string) bool {
	lx := strings.ToLower(x)
	ly := strings.ToLower(y)

	// Simple plural of the same base.
	if lx == ly+"s" || ly == lx+"s" {
		return true
	}

	for _, rule := range a.pairRules {
		if pairMatch(lx, ly, strings.ToLower(rule.A), strings.ToLower(rule.B)) ||
			pairMatch(lx, ly, strings.ToLower(rule.B), strings.ToLower(rule.A)) {
			return true
		}
	}

	// Stripping a recognized suffix from both names yields the same
	// base string.
	bx, okx := a.stripSuffix(lx)
	by, oky := a.stripSuffix(ly)
	if (okx || oky) && bx == by && bx != "" {
		return true
	}
	return false
}

// OrphanedRefs reports one deduplicated warning for each declared name
// ending in a reference suffix whose base name has no full declaration
// anywhere in the document set.
func (a *Auditor) OrphanedRefs(names []NameRef) []model.Issue {
	declared := make(map[string]bool, len(names))
	for _, ref := range names {
		declared[strings.ToLower(ref.Name)] = true
	}

	sorted := make([]NameRef, len(names))
	copy(sorted, names)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	reported := make(map[string]bool)
	var issues []model.Issue
	for _, ref := range sorted {
		lower := strings.ToLower(ref.Name)
		base := ""
		switch {
		case strings.HasSuffix(lower, "reference"):
			base = lower[:len(lower)-len("reference")]
		case strings.HasSuffix(lower, "ref"):
			base = lower[:len(lower)-len("ref")]
		default:
			continue
		}
		if base == "" || declared[base] || reported[lower] {
			continue
		}
		reported[lower] = true
		issues = append(issues, model.Issue{
			Severity: model.SeverityWarning,
			Category: model.CategoryNamingSimilarity,
			Message:  fmt.Sprintf("reference type %q has no corresponding %q declaration", ref.Name, ref.Name[:len(base)]),
			Document: ref.Document,
			Line:     ref.Line,
			Suggestion: fmt.Sprintf("declare %q or rename %q",
				ref.Name[:len(base)], ref.Name),
		})
	}
	return issues
}

// pairMatch reports whether stripping sa from x and sb from y, as
// either a prefix or a suffix, leaves the same base string.
func pairMatch(x, y, sa, sb string) bool {
	if strings.HasPrefix(x, sa) && strings.HasPrefix(y, sb) {
		if x[len(sa):] == y[len(sb):] {
			return true
		}
	}
	if strings.HasSuffix(x, sa) && strings.HasSuffix(y, sb) {
		if x[:len(x)-len(sa)] == y[:len(y)-len(sb)] {
			return true
		}
	}
	return false
}

// stripSuffix removes the longest matching recognized suffix.
func (a *Auditor) stripSuffix(name string) (string, bool) {
	for _, suffix := range a.suffixes {
		if strings.HasSuffix(name, suffix) && len(name) > len(suffix) {
			return name[:len(name)-len(suffix)], true
		}
	}
	return name, false
}

// pluralize returns the simple English plural of a suffix.
func pluralize(s string) string {
	if strings.HasSuffix(s, "s") {
		return s + "es"
	}
	return s + "s"
}
