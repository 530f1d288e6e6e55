// Package patch builds synthetic unified-diff streams from grouped hunks so
// the fixup committer can feed them to the version-control tool's
// apply-to-index-only operation.
package patch

import (
	"bytes"

	"github.com/bwoodley/git-fixup/diff"
)

// Generate builds a synthetic unified-diff stream from hunks. Per spec
// section 4.6, each hunk gets its own minimal file header
// ("--- a/<file>\n+++ b/<file>\n") followed by its preserved header and
// body, even when consecutive hunks share a file; git apply tolerates the
// repetition.
func Generate(hunks []*diff.Hunk) []byte {
	var buf bytes.Buffer

	for _, h := range hunks {
		buf.WriteString("--- a/" + h.File + "\n")
		buf.WriteString("+++ b/" + h.File + "\n")
		buf.WriteString(h.Header)
		buf.WriteString("\n")

		for _, line := range h.Lines {
			buf.WriteString(line)
		}
	}

	return buf.Bytes()
}
