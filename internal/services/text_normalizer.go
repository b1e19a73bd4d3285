package services

import "strings"

// minEdgeLines is the smallest number of non-empty lines for which the first
// and last lines are treated as a repeated header/footer.
const minEdgeLines = 6

// CleanText joins page blocks with newlines and collapses every whitespace
// run, line breaks and U+3000 included, into a single space.
func CleanText(blocks []string) string {
	text := strings.Join(blocks, "\n")
	// strings.Fields splits on unicode.IsSpace, which covers U+3000.
	return strings.Join(strings.Fields(text), " ")
}

// StripEdges removes lines equal to the first or last non-empty line when the
// text has at least six non-empty lines. Matching is by exact string, so a
// header repeated on every page is removed everywhere.
func StripEdges(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return text
	}
	if len(lines) < minEdgeLines {
		return strings.Join(lines, "\n")
	}

	first, last := lines[0], lines[len(lines)-1]
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != first && line != last {
			filtered = append(filtered, line)
		}
	}
	if len(filtered) == 0 {
		return strings.Join(lines, "\n")
	}
	return strings.Join(filtered, "\n")
}

// normalizeBlocks is the single normalization path for both text sources:
// edge stripping on the line structure, then whitespace collapse.
func normalizeBlocks(blocks []string, stripEdges bool) string {
	if !stripEdges {
		return CleanText(blocks)
	}
	return CleanText([]string{StripEdges(strings.Join(blocks, "\n"))})
}
