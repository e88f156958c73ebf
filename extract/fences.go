package extract

import "strings"

// codeLine is one line of scannable code together with its 1-based line
// number in the original document, so diagnostics point at the source
// file rather than an offset into extracted code.
type codeLine struct {
	num  int
	text string
}

// scannableLines returns the lines the extractor should scan. When the
// document contains at least one fenced code region with a recognized
// language tag, only the interiors of those regions are returned;
// surrounding prose is structurally skipped. Documents without
// recognized fences are treated as plain code and scanned whole.
func scannableLines(text string, fenceLangs map[string]bool) []codeLine {
	lines := strings.Split(text, "\n")

	fenced := extractFencedLines(lines, fenceLangs)
	if fenced != nil {
		return fenced
	}

	all := make([]codeLine, len(lines))
	for i, line := range lines {
		all[i] = codeLine{num: i + 1, text: line}
	}
	return all
}

// extractFencedLines collects the interiors of recognized fenced
// regions. Returns nil when no recognized fence exists.
func extractFencedLines(lines []string, fenceLangs map[string]bool) []codeLine {
	var out []codeLine
	found := false

	inFence := false
	recognized := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isFenceDelimiter(trimmed) {
			if inFence {
				inFence = false
				recognized = false
				continue
			}
			inFence = true
			recognized = fenceLangs[fenceLanguage(trimmed)]
			if recognized {
				found = true
			}
			continue
		}
		if inFence && recognized {
			out = append(out, codeLine{num: i + 1, text: line})
		}
	}
	// An unclosed fence runs to end of document; the loop above already
	// collected its lines.

	if !found {
		return nil
	}
	if out == nil {
		out = []codeLine{}
	}
	return out
}

// isFenceDelimiter reports whether a trimmed line opens or closes a
// fenced code region.
func isFenceDelimiter(trimmed string) bool {
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

// fenceLanguage extracts the lowercased language tag from a fence
// delimiter line.
func fenceLanguage(trimmed string) string {
	tag := strings.TrimLeft(trimmed, "`~")
	tag = strings.TrimSpace(tag)
	if idx := strings.IndexAny(tag, " \t"); idx >= 0 {
		tag = tag[:idx]
	}
	return strings.ToLower(tag)
}
