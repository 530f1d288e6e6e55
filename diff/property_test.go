package diff_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bwoodley/git-fixup/diff"
	"pgregory.net/rapid"
)

// genHunkBody builds a random, well-formed hunk body (a mix of context and
// change lines) and returns its text along with the expected pre-image line
// count (context + deletions).
func genHunkBody(t *rapid.T) (string, int) {
	n := rapid.IntRange(1, 12).Draw(t, "n")

	var sb strings.Builder

	preCount := 0

	for i := 0; i < n; i++ {
		switch rapid.IntRange(0, 2).Draw(t, fmt.Sprintf("kind%d", i)) {
		case 0:
			fmt.Fprintf(&sb, " context%d\n", i)
			preCount++
		case 1:
			fmt.Fprintf(&sb, "-removed%d\n", i)
			preCount++
		case 2:
			fmt.Fprintf(&sb, "+added%d\n", i)
		}
	}

	return sb.String(), preCount
}

// TestParseProperty_BodyLineCountMatchesCount verifies invariant 1 from the
// spec: the number of non-'+' body lines equals Count.
func TestParseProperty_BodyLineCountMatchesCount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		body, preCount := genHunkBody(t)
		start := rapid.IntRange(1, 500).Draw(t, "start")

		input := fmt.Sprintf(
			"--- a/f.txt\n+++ b/f.txt\n@@ -%d,%d +%d,%d @@\n%s",
			start, preCount, start, preCount, body,
		)

		hunks, err := diff.Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("parse error: %v", err)
		}

		if preCount == 0 {
			// A hunk with no pre-image lines is a pure insertion; some
			// generators produce an all-additions body, which is still
			// valid input.
			if len(hunks) == 0 {
				return
			}
		}

		if len(hunks) != 1 {
			t.Fatalf("expected 1 hunk, got %d", len(hunks))
		}

		h := hunks[0]
		if h.Count != preCount {
			t.Fatalf("header count %d != generated pre-count %d", h.Count, preCount)
		}

		if h.BodyLineCount() != preCount {
			t.Fatalf("BodyLineCount() = %d, want %d", h.BodyLineCount(), preCount)
		}
	})
}

// TestParseProperty_FileHasNoABPrefix verifies invariant 2: File never
// retains a leading a/ or b/.
func TestParseProperty_FileHasNoABPrefix(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[a-z]{1,8}(/[a-z]{1,8}){0,2}\.go`).Draw(t, "name")
		body, preCount := genHunkBody(t)
		start := rapid.IntRange(1, 100).Draw(t, "start")

		input := fmt.Sprintf(
			"--- a/%s\n+++ b/%s\n@@ -%d,%d +%d,%d @@\n%s",
			name, name, start, preCount, start, preCount, body,
		)

		hunks, err := diff.Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("parse error: %v", err)
		}

		for _, h := range hunks {
			if strings.HasPrefix(h.File, "a/") || strings.HasPrefix(h.File, "b/") {
				t.Fatalf("File %q retains a/ or b/ prefix", h.File)
			}
		}
	})
}
