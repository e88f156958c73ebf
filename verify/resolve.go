package verify

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/contractspec/contractspec/model"
)

// resolver checks that every import resolves to a visible declaration
// or matches a recognized exemption.
type resolver struct {
	// declared maps a name to true when any document in the set
	// declares it. Visibility for resolution is the union of the
	// vocabulary's and every contract's declarations.
	declared map[string]bool

	// external lists module names treated as out-of-scope libraries.
	external []string

	// vocabBase is the vocabulary document's filename without
	// extension, used to tell vocabulary-relative imports apart from
	// unrelated same-directory imports.
	vocabBase string
}

func newResolver(vocab *model.Document, contracts []*model.Document, externalModules []string) *resolver {
	declared := make(map[string]bool)
	for _, decl := range vocab.Declarations {
		declared[decl.Name] = true
	}
	for _, doc := range contracts {
		for _, decl := range doc.Declarations {
			declared[decl.Name] = true
		}
	}

	base := filepath.Base(vocab.ID)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	return &resolver{
		declared:  declared,
		external:  externalModules,
		vocabBase: base,
	}
}

// resolve returns unresolved-import errors for one document's imports.
// Exempt imports are skipped, not flagged.
func (r *resolver) resolve(doc *model.Document) []model.Issue {
	var issues []model.Issue
	for _, imp := range doc.Imports {
		if r.exempt(imp.Module) {
			continue
		}
		if r.declared[imp.Name] {
			continue
		}
		issues = append(issues, model.Issue{
			Severity: model.SeverityError,
			Category: model.CategoryUnresolvedImport,
			Message:  fmt.Sprintf("imported name %q is not declared in any document (from %q)", imp.Name, imp.Module),
			Document: doc.ID,
			Line:     imp.Line,
			Suggestion: fmt.Sprintf("declare %q in the vocabulary document or add %q to the external module allowlist",
				imp.Name, imp.Module),
		})
	}
	return issues
}

// typeNameRe matches candidate type references inside a field type
// expression. Only capitalized identifiers are considered; lowercase
// primitives (string, number, ...) are never declarations.
var typeNameRe = regexp.MustCompile(`\b([A-Z][A-Za-z0-9_]*)\b`)

// builtinTypes are capitalized type names provided by the analyzed
// language itself, never expected to resolve to a declaration.
var builtinTypes = map[string]bool{
	"Date": true, "Array": true, "Record": true, "Map": true, "Set": true,
	"Promise": true, "Partial": true, "Pick": true, "Omit": true,
	"Readonly": true, "Required": true, "Exclude": true, "Extract": true,
}

// checkReferences reports an error for each type name a contract uses
// in a record field without either importing it or declaring it
// locally. The vocabulary declaring the name is not enough; contracts
// must import what they use. One issue per name per document.
func (r *resolver) checkReferences(doc *model.Document) []model.Issue {
	local := make(map[string]bool, len(doc.Declarations))
	for _, decl := range doc.Declarations {
		local[decl.Name] = true
	}
	imported := make(map[string]bool, len(doc.Imports))
	for _, imp := range doc.Imports {
		imported[imp.Name] = true
	}

	type ref struct {
		line  int
		decl  string
		field string
	}
	unresolved := make(map[string]ref)
	for _, decl := range doc.Declarations {
		if decl.Kind != model.KindRecord {
			continue
		}
		for _, field := range decl.Fields {
			for _, m := range typeNameRe.FindAllStringSubmatch(field.Type, -1) {
				name := m[1]
				if builtinTypes[name] || local[name] || imported[name] {
					continue
				}
				if _, seen := unresolved[name]; !seen {
					unresolved[name] = ref{line: decl.Line, decl: decl.Name, field: field.Name}
				}
			}
		}
	}

	names := make([]string, 0, len(unresolved))
	for name := range unresolved {
		names = append(names, name)
	}
	sort.Strings(names)

	var issues []model.Issue
	for _, name := range names {
		use := unresolved[name]
		issues = append(issues, model.Issue{
			Severity: model.SeverityError,
			Category: model.CategoryUnresolvedImport,
			Message: fmt.Sprintf("type %q used by %s.%s is neither imported nor declared locally",
				name, use.decl, use.field),
			Document:   doc.ID,
			Line:       use.line,
			Suggestion: fmt.Sprintf("import %q from the vocabulary document", name),
		})
	}
	return issues
}

// exempt reports whether an import module is out of scope: a known
// external library, or a same-directory relative path that does not
// point at the shared vocabulary.
func (r *resolver) exempt(module string) bool {
	for _, ext := range r.external {
		if module == ext || strings.HasPrefix(module, ext+"/") {
			return true
		}
	}

	if strings.HasPrefix(module, "./") {
		base := path.Base(module)
		base = strings.TrimSuffix(base, path.Ext(base))
		if !strings.EqualFold(base, r.vocabBase) {
			return true
		}
	}
	return false
}
