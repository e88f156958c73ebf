// Package compare checks that same-named declarations from different
// documents agree on shape. The first declaration encountered is the
// baseline; every later declaration of the same name is compared back
// to it.
package compare

import (
	"fmt"
	"strings"

	"github.com/contractspec/contractspec/config"
	"github.com/contractspec/contractspec/model"
)

// Comparator compares declarations for structural compatibility.
type Comparator struct {
	equivalent map[[2]string]bool
}

// New creates a Comparator using the given type-equivalence pairs.
// Pairs are symmetric and compared case-insensitively.
func New(equivalentTypes []config.PairRule) *Comparator {
	equiv := make(map[[2]string]bool, len(equivalentTypes)*2)
	for _, pair := range equivalentTypes {
		a := strings.ToLower(pair.A)
		b := strings.ToLower(pair.B)
		equiv[[2]string{a, b}] = true
		equiv[[2]string{b, a}] = true
	}
	return &Comparator{equivalent: equiv}
}

// Compare reports the per-field issues between a baseline declaration
// and another declaration of the same name. Only structured records are
// field-compared; other kinds produce no issues here.
func (c *Comparator) Compare(baseline, other *model.Declaration) []model.Issue {
	if baseline.Kind != model.KindRecord || other.Kind != model.KindRecord {
		return nil
	}

	var issues []model.Issue
	for _, base := range baseline.Fields {
		found := other.FieldNamed(base.Name)
		if found == nil {
			issues = append(issues, missingField(baseline, other, base.Name))
			continue
		}

		if !c.TypesCompatible(base.Type, found.Type) {
			issues = append(issues, model.Issue{
				Severity: model.SeverityError,
				Category: model.CategoryTypeShapeMismatch,
				Message: fmt.Sprintf("%s.%s: type %q does not match %q from %s:%d",
					baseline.Name, base.Name, found.Type, base.Type, baseline.Document, baseline.Line),
				Document: other.Document,
				Line:     other.Line,
			})
		}

		if base.Optional != found.Optional {
			issues = append(issues, model.Issue{
				Severity: model.SeverityWarning,
				Category: model.CategoryTypeShapeMismatch,
				Message: fmt.Sprintf("%s.%s: optionality differs from %s:%d",
					baseline.Name, base.Name, baseline.Document, baseline.Line),
				Document: other.Document,
				Line:     other.Line,
			})
		}
	}

	// A field present only in the other declaration means the baseline
	// is the one missing it; the error is attributed to whichever
	// declaration lacks the field.
	for _, field := range other.Fields {
		if baseline.FieldNamed(field.Name) == nil {
			issues = append(issues, missingField(other, baseline, field.Name))
		}
	}
	return issues
}

// missingField builds the error for a field declared in have but absent
// from lacking.
func missingField(have, lacking *model.Declaration, fieldName string) model.Issue {
	return model.Issue{
		Severity: model.SeverityError,
		Category: model.CategoryTypeShapeMismatch,
		Message: fmt.Sprintf("%s: missing property %q (declared in %s:%d)",
			have.Name, fieldName, have.Document, have.Line),
		Document:   lacking.Document,
		Line:       lacking.Line,
		Suggestion: fmt.Sprintf("add %q to %s in %s", fieldName, lacking.Name, lacking.Document),
	}
}

// CompareKinds reports the categorical conflict when a document both
// imports a name and locally re-declares it with a kind different from
// the vocabulary's declaration. Kind mismatch is always an error
// regardless of field content.
func (c *Comparator) CompareKinds(vocab, local *model.Declaration) *model.Issue {
	if vocab.Kind == local.Kind {
		return nil
	}
	return &model.Issue{
		Severity: model.SeverityError,
		Category: model.CategoryTypeShapeMismatch,
		Message: fmt.Sprintf("%s: locally declared as %s but the shared vocabulary defines it as %s",
			local.Name, local.Kind, vocab.Kind),
		Document:   local.Document,
		Line:       local.Line,
		Suggestion: fmt.Sprintf("remove the local declaration of %s or rename it", local.Name),
	}
}

// TypesCompatible reports whether two type expressions are considered
// equal: case-insensitive exact match or a recognized equivalent pair.
func (c *Comparator) TypesCompatible(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == lb {
		return true
	}
	return c.equivalent[[2]string{la, lb}]
}
