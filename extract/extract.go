// Package extract scans loosely-structured documents for code-like
// declarations. It is a deliberately narrow pattern matcher, not a
// grammar: the recognized shapes (records, aliases, enumerations,
// constant groups, brace-style imports) are the whole contract surface,
// and anything outside them is structurally invisible. Extraction is
// best-effort and never fails; under-extraction is preferred over a
// crash.
package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/contractspec/contractspec/model"
)

// Result holds everything extracted from one document.
type Result struct {
	Declarations []model.Declaration
	Imports      []model.Import
}

var (
	recordOpenRe = regexp.MustCompile(`^\s*(?:export\s+)?interface\s+([A-Za-z_][A-Za-z0-9_]*)(?:\s+extends\s+[A-Za-z0-9_.,\s<>]+?)?\s*\{`)
	enumOpenRe   = regexp.MustCompile(`^\s*(?:export\s+)?(?:const\s+)?enum\s+([A-Za-z_][A-Za-z0-9_]*)\s*\{`)
	constOpenRe  = regexp.MustCompile(`^\s*(?:export\s+)?const\s+([A-Za-z_][A-Za-z0-9_]*)(?:\s*:\s*[^=]+)?\s*=\s*\{`)
	aliasRe      = regexp.MustCompile(`^\s*(?:export\s+)?type\s+([A-Za-z_][A-Za-z0-9_]*)(?:<[^>]*>)?\s*=\s*(.+?)\s*;?\s*$`)
	importRe     = regexp.MustCompile(`import\s+(?:type\s+)?\{([^}]*)\}\s*from\s*['"]([^'"]+)['"]`)
	fieldRe      = regexp.MustCompile(`^\s*(?:readonly\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*(\?)?\s*:\s*(.+?)\s*;?\s*$`)
	memberRe     = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)`)
	identRe      = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// importJoinLimit bounds how many lines a multi-line import statement
// may span before the extractor gives up on it.
const importJoinLimit = 16

// Extractor extracts declarations and imports from raw document text.
type Extractor struct {
	fenceLangs map[string]bool
	logger     *slog.Logger
}

// New creates an Extractor that scans fenced regions tagged with one of
// the given languages. Documents without recognized fences are scanned
// whole.
func New(fenceLanguages []string, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	langs := make(map[string]bool, len(fenceLanguages))
	for _, lang := range fenceLanguages {
		langs[strings.ToLower(lang)] = true
	}
	return &Extractor{fenceLangs: langs, logger: logger}
}

// Extract scans the document text and returns all recognized
// declarations and imports, each tagged with its original line number.
// Malformed or unrecognized syntax is silently skipped.
func (e *Extractor) Extract(docID, text string) *Result {
	lines := scannableLines(text, e.fenceLangs)
	result := &Result{}

	for i := 0; i < len(lines); i++ {
		line := stripComment(lines[i].text)

		if strings.Contains(line, "import") && strings.Contains(line, "{") {
			if imports, consumed := e.matchImport(docID, lines, i); consumed > 0 {
				result.Imports = append(result.Imports, imports...)
				i += consumed - 1
				continue
			}
		}

		if m := recordOpenRe.FindStringSubmatch(line); m != nil {
			body, next := consumeBlock(lines, i)
			fields := extractFields(m[1], body)
			result.Declarations = append(result.Declarations, model.Declaration{
				Name:     m[1],
				Kind:     model.KindRecord,
				Fields:   fields,
				Document: docID,
				Line:     lines[i].num,
			})
			i = next - 1
			continue
		}

		if m := enumOpenRe.FindStringSubmatch(line); m != nil {
			body, next := consumeBlock(lines, i)
			result.Declarations = append(result.Declarations, model.Declaration{
				Name:     m[1],
				Kind:     model.KindEnum,
				Fields:   extractMembers(body),
				Document: docID,
				Line:     lines[i].num,
			})
			i = next - 1
			continue
		}

		if m := constOpenRe.FindStringSubmatch(line); m != nil {
			_, next := consumeBlock(lines, i)
			result.Declarations = append(result.Declarations, model.Declaration{
				Name:     m[1],
				Kind:     model.KindConstGroup,
				Document: docID,
				Line:     lines[i].num,
			})
			i = next - 1
			continue
		}

		if m := aliasRe.FindStringSubmatch(line); m != nil {
			// An object-literal alias body is not decomposed; consume
			// the block so its interior is not re-scanned.
			if strings.HasSuffix(m[2], "{") {
				_, next := consumeBlock(lines, i)
				i = next - 1
			}
			result.Declarations = append(result.Declarations, model.Declaration{
				Name:     m[1],
				Kind:     model.KindAlias,
				Document: docID,
				Line:     lines[i].num,
			})
			continue
		}
	}

	e.logger.Debug("extracted document",
		slog.String("document", docID),
		slog.Int("declarations", len(result.Declarations)),
		slog.Int("imports", len(result.Imports)))

	return result
}

// matchImport matches a possibly multi-line brace import starting at
// index start. Returns the imports and the number of lines consumed,
// or (nil, 0) when no import matches.
func (e *Extractor) matchImport(docID string, lines []codeLine, start int) ([]model.Import, int) {
	var joined strings.Builder
	for span := 0; span < importJoinLimit && start+span < len(lines); span++ {
		if span > 0 {
			joined.WriteString(" ")
		}
		joined.WriteString(stripComment(lines[start+span].text))

		m := importRe.FindStringSubmatch(joined.String())
		if m == nil {
			continue
		}

		var imports []model.Import
		for _, raw := range strings.Split(m[1], ",") {
			name := strings.TrimSpace(raw)
			if idx := strings.Index(name, " as "); idx >= 0 {
				name = strings.TrimSpace(name[:idx])
			}
			// Stray comment fragments and other non-identifiers are
			// discarded rather than reported.
			if !identRe.MatchString(name) {
				continue
			}
			imports = append(imports, model.Import{
				Name:     name,
				Module:   m[2],
				Document: docID,
				Line:     lines[start].num,
			})
		}
		return imports, span + 1
	}
	return nil, 0
}

// consumeBlock collects the body lines of a brace block whose opening
// line is at index start. Brace depth is tracked so nested braces
// within a field's type expression do not prematurely terminate the
// block. Returns the body (lines strictly inside the block) and the
// index of the first line after the block.
func consumeBlock(lines []codeLine, start int) ([]codeLine, int) {
	depth := braceDelta(lines[start].text)
	if depth <= 0 {
		// Opening and closing brace on the same line, or no brace at
		// all; the body is empty either way.
		return nil, start + 1
	}

	var body []codeLine
	for i := start + 1; i < len(lines); i++ {
		delta := braceDelta(lines[i].text)
		if depth+delta <= 0 {
			return body, i + 1
		}
		body = append(body, lines[i])
		depth += delta
	}
	// Unterminated block: best-effort, treat the remainder as body.
	return body, len(lines)
}

// braceDelta returns opening minus closing braces on a line, ignoring
// braces inside string literals.
func braceDelta(line string) int {
	delta := 0
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '{':
			delta++
		case '}':
			delta--
		}
	}
	return delta
}

// extractFields extracts record fields from body lines. Only lines at
// the top nesting level are considered, and the enclosing block's own
// name is never matched as a field.
func extractFields(blockName string, body []codeLine) []model.Field {
	var fields []model.Field
	depth := 0
	for _, line := range body {
		text := stripComment(line.text)
		atTop := depth == 0
		depth += braceDelta(text)

		if !atTop {
			continue
		}
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "*") {
			continue
		}

		m := fieldRe.FindStringSubmatch(text)
		if m == nil || m[1] == blockName {
			continue
		}
		fields = append(fields, model.Field{
			Name:     m[1],
			Type:     normalizeFieldType(m[3]),
			Optional: m[2] == "?",
		})
	}
	return fields
}

// normalizeFieldType tidies a raw type expression. Multi-line inline
// object types collapse to an opening brace; spell those as an object
// placeholder so comparisons stay stable.
func normalizeFieldType(expr string) string {
	expr = strings.TrimSpace(expr)
	if expr == "{" {
		return "{ ... }"
	}
	return expr
}

// extractMembers extracts enumeration member names, ignoring any
// right-hand-side literal values.
func extractMembers(body []codeLine) []model.Field {
	var members []model.Field
	for _, line := range body {
		text := stripComment(line.text)
		for _, frag := range strings.Split(text, ",") {
			frag = strings.TrimSpace(frag)
			if frag == "" {
				continue
			}
			if idx := strings.Index(frag, "="); idx >= 0 {
				frag = strings.TrimSpace(frag[:idx])
			}
			if m := memberRe.FindStringSubmatch(frag); m != nil && m[1] == frag {
				members = append(members, model.Field{Name: m[1]})
			}
		}
	}
	return members
}

// stripComment removes line comments and single-line block comments.
// Best-effort: a "//" inside a string literal is treated as a comment
// start, which at worst under-extracts.
func stripComment(line string) string {
	if idx := strings.Index(line, "//"); idx >= 0 {
		line = line[:idx]
	}
	for {
		open := strings.Index(line, "/*")
		if open < 0 {
			break
		}
		close := strings.Index(line[open:], "*/")
		if close < 0 {
			line = line[:open]
			break
		}
		line = line[:open] + line[open+close+2:]
	}
	return line
}
