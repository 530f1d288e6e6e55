// Package diff parses unified-diff output into structured hunks for the
// hunk-to-commit attribution engine.
package diff

import "strings"

// Hunk is a contiguous change region in a unified diff, with pre-image file
// coordinates and a body of context/added/deleted lines. It is immutable
// once produced by Parse.
type Hunk struct {
	// File is the path this hunk applies to, with any leading a/ or b/
	// prefix stripped.
	File string

	// Start is the 1-based line number in the pre-image where the hunk
	// begins.
	Start int

	// Count is the number of pre-image lines the hunk covers. Defaults
	// to 1 when the header omits it.
	Count int

	// Header is the original "@@ ... @@" header line, preserved
	// byte-for-byte (without a trailing newline) for re-emission.
	Header string

	// Lines is the ordered sequence of raw diff body lines. Each begins
	// with one of ' ' (context), '+' (addition), '-' (deletion), or '\'
	// (no-newline marker). Trailing newlines are preserved as read,
	// except possibly on the final line of the stream.
	Lines []string
}

// BodyLineCount returns the number of non-addition body lines, i.e. the
// lines that occupy the pre-image. No-newline marker lines are excluded, as
// they annotate the preceding line rather than occupying a line of their
// own.
func (h *Hunk) BodyLineCount() int {
	n := 0

	for _, line := range h.Lines {
		if line == "" {
			continue
		}

		switch line[0] {
		case ' ', '-':
			n++
		}
	}

	return n
}

// trimmedLine strips trailing carriage-return and newline characters from a
// raw line, leaving the rest of the line as is.
func trimmedLine(line string) string {
	return strings.TrimRight(line, "\r\n")
}
