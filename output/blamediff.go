// Package output renders the attribution driver's verbose reporting, in the
// teacher's fixed-width, no-color, io.Writer-targeted style (see
// output/text.go in the retrieval pack): plain Fprintf to a writer, no
// terminal detection, since this output is meant to be read or piped, not
// decorated.
package output

import (
	"fmt"
	"io"
	"strings"
)

// BlameDiffRow is one row of the -vv tabular blame-diff report: the commit
// blame attributes to a pre-image line, and the corresponding text on both
// sides of the change.
type BlameDiffRow struct {
	SHA      string
	LineNum  int
	HeadText string
	WorkText string
}

// WriteBlameDiff renders rows per spec section 6: an 8-char sha, a 4-char
// line number, a 30-char HEAD text column, and a 30-char working-tree text
// column, with tabs rendered as "^I" and trailing whitespace stripped.
func WriteBlameDiff(w io.Writer, rows []BlameDiffRow) {
	for _, r := range rows {
		fmt.Fprintf(w, "%s\n", formatBlameDiffRow(r))
	}
}

func formatBlameDiffRow(r BlameDiffRow) string {
	sha := truncate(r.SHA, 8)
	line := fmt.Sprintf("%4d", r.LineNum)
	if len(line) > 4 {
		line = line[:4]
	}

	row := fmt.Sprintf(
		"%-8s %4s %-30s %-30s",
		sha, line, truncate(r.HeadText, 30), truncate(r.WorkText, 30),
	)

	row = strings.ReplaceAll(row, "\t", "^I")

	return strings.TrimRight(row, " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n]
}
