package attribution_test

import (
	"strings"
	"testing"

	"github.com/bwoodley/git-fixup/attribution"
	"github.com/bwoodley/git-fixup/blame"
	"github.com/bwoodley/git-fixup/diff"
	"github.com/bwoodley/git-fixup/topic"
	"github.com/stretchr/testify/require"
)

func TestAttribute_S1_UnambiguousContext(t *testing.T) {
	subjects := topic.CommitSubjects{"A": "a", "B": "b"}
	bl := blame.Blame{
		1: {SHA: "A", Text: "line1"},
		2: {SHA: "A", Text: "line2"},
		3: {SHA: "A", Text: "line3"},
	}
	hunk := &diff.Hunk{
		Start: 1,
		Lines: []string{" line1\n", "+added\n", " line3\n"},
	}

	d := attribution.Attribute(hunk, bl, subjects, attribution.Context)

	require.True(t, d.Assigned)
	require.Equal(t, "A", d.Target)
}

func TestAttribute_S2_AmbiguousContextAdjacentResolves(t *testing.T) {
	subjects := topic.CommitSubjects{"A": "a", "B": "b"}
	bl := blame.Blame{
		1: {SHA: "A", Text: "line1"},
		2: {SHA: "B", Text: "line2"},
		3: {SHA: "B", Text: "line3"},
	}
	hunk := &diff.Hunk{
		Start: 1,
		Lines: []string{"+added\n", " line2\n", " line3\n"},
	}

	d := attribution.Attribute(hunk, bl, subjects, attribution.Context)

	require.True(t, d.Assigned)
	require.Equal(t, "A", d.Target)
}

func TestAttribute_ContextIgnoresUpstreamSurroundingTopic(t *testing.T) {
	subjects := topic.CommitSubjects{"A": "a"}
	bl := blame.Blame{
		1: {SHA: "^upstream", Text: "line1"},
		2: {SHA: "A", Text: "line2"},
		3: {SHA: "^upstream", Text: "line3"},
	}
	hunk := &diff.Hunk{
		Start: 1,
		Lines: []string{" line1\n", "+added\n", " line3\n"},
	}

	d := attribution.Attribute(hunk, bl, subjects, attribution.Context)

	require.True(t, d.Assigned)
	require.Equal(t, "A", d.Target)
}

func TestAttribute_S3_UpstreamAdjacency(t *testing.T) {
	subjects := topic.CommitSubjects{"A": "a"}
	bl := blame.Blame{
		1: {SHA: "A", Text: "line1"},
		2: {SHA: "^upstream", Text: "line2"},
		3: {SHA: "^upstream", Text: "line3"},
	}
	hunk := &diff.Hunk{
		Start: 1,
		Lines: []string{" line1\n", "+added\n", " line3\n"},
	}

	d := attribution.Attribute(hunk, bl, subjects, attribution.Adjacent)

	require.False(t, d.Assigned)
	require.Equal(t, "changes lines blamed on upstream", d.Reason)
}

func TestAttribute_S4_SurroundedRequirement(t *testing.T) {
	subjects := topic.CommitSubjects{"A": "a", "B": "b"}
	hunk := &diff.Hunk{
		Start: 1,
		Lines: []string{" line1\n", "+added\n", " line2\n"},
	}

	blSame := blame.Blame{
		1: {SHA: "A", Text: "line1"},
		2: {SHA: "A", Text: "line2"},
	}

	d := attribution.Attribute(hunk, blSame, subjects, attribution.Surrounded)
	require.True(t, d.Assigned)
	require.Equal(t, "A", d.Target)

	blMixed := blame.Blame{
		1: {SHA: "A", Text: "line1"},
		2: {SHA: "B", Text: "line2"},
	}

	d = attribution.Attribute(hunk, blMixed, subjects, attribution.Surrounded)
	require.False(t, d.Assigned)
}

func TestAttribute_S5_AliasCollapsing(t *testing.T) {
	subjects := topic.CommitSubjects{
		"X": "feat: foo",
		"Y": "fixup! feat: foo",
	}
	aliases, err := topic.ResolveAliases(subjects)
	require.NoError(t, err)

	// The blame feed reports the alias sha directly; Fetch is responsible
	// for rewriting it to canonical form before the engine ever sees it.
	rawSHA := "Y"
	canonical := aliases.Canonical(rawSHA)
	require.Equal(t, "X", canonical)

	bl := blame.Blame{
		1: {SHA: canonical, Text: "line1"},
		2: {SHA: canonical, Text: "line2"},
	}
	hunk := &diff.Hunk{
		Start: 1,
		Lines: []string{" line1\n", "+added\n", " line2\n"},
	}

	d := attribution.Attribute(hunk, bl, subjects, attribution.Context)

	require.True(t, d.Assigned)
	require.Equal(t, "X", d.Target)
}

func TestAttribute_S6_CreationIgnoredByParser(t *testing.T) {
	patch := "diff --git a/new.txt b/new.txt\n" +
		"new file mode 100644\n" +
		"--- /dev/null\n" +
		"+++ b/new.txt\n" +
		"@@ -0,0 +1,2 @@\n" +
		"+line one\n" +
		"+line two\n"

	hunks, err := diff.Parse(strings.NewReader(patch))
	require.NoError(t, err)
	require.Empty(t, hunks, "a creation hunk must be discarded by the parser, not reach attribution")
}
