package blame_test

import (
	"context"
	"testing"

	"github.com/bwoodley/git-fixup/blame"
	"github.com/bwoodley/git-fixup/testutil"
	"github.com/bwoodley/git-fixup/topic"
	"github.com/stretchr/testify/require"
)

func TestFetch_ZeroCountIsEmptyWithoutSubprocess(t *testing.T) {
	called := false
	exec := &testutil.FakeExecutor{
		BlameRangeFunc: func(context.Context, string, string, int, int) (string, error) {
			called = true

			return "", nil
		},
	}

	bl, err := blame.Fetch(context.Background(), exec, "HEAD", "f.txt", 5, 0, nil)
	require.NoError(t, err)
	require.Empty(t, bl)
	require.False(t, called)
}

func TestFetch_ParsesPorcelainAndRewritesAliases(t *testing.T) {
	porcelain := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa 3 3 2\n" +
		"author Someone\n" +
		"\tline three\n" +
		"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb 4 4\n" +
		"\tline four\n"

	exec := &testutil.FakeExecutor{
		BlameRangeFunc: func(_ context.Context, rev, file string, start, count int) (string, error) {
			require.Equal(t, "HEAD", rev)
			require.Equal(t, "f.txt", file)
			require.Equal(t, 3, start)
			require.Equal(t, 2, count)

			return porcelain, nil
		},
	}

	aliases := topic.AliasMap{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa": "canonical"}

	bl, err := blame.Fetch(context.Background(), exec, "HEAD", "f.txt", 3, 2, aliases)
	require.NoError(t, err)
	require.Equal(t, "canonical", bl[3].SHA)
	require.Equal(t, "line three", bl[3].Text)
	require.Equal(t, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", bl[4].SHA)
	require.Equal(t, "line four", bl[4].Text)
}

func TestFetch_KeysByFinalLineNotOrigLine(t *testing.T) {
	// The commit that introduced this line held it at orig-line 9; it now
	// sits at final-line 3 in the blamed revision (HEAD). The hunk's
	// pre-image indices are HEAD line numbers, so the map must be keyed
	// by 3, not 9.
	porcelain := "cccccccccccccccccccccccccccccccccccccccc 9 3 1\n" +
		"author Someone\n" +
		"\tline three\n"

	exec := &testutil.FakeExecutor{
		BlameRangeFunc: func(context.Context, string, string, int, int) (string, error) {
			return porcelain, nil
		},
	}

	bl, err := blame.Fetch(context.Background(), exec, "HEAD", "f.txt", 3, 1, nil)
	require.NoError(t, err)
	require.Equal(t, "cccccccccccccccccccccccccccccccccccccccc", bl[3].SHA)
	require.Equal(t, "line three", bl[3].Text)
	_, ok := bl[9]
	require.False(t, ok, "must not key by orig-line")
}

func TestFetch_PropagatesSubprocessError(t *testing.T) {
	exec := &testutil.FakeExecutor{
		BlameRangeFunc: func(context.Context, string, string, int, int) (string, error) {
			return "", context.DeadlineExceeded
		},
	}

	_, err := blame.Fetch(context.Background(), exec, "HEAD", "f.txt", 1, 1, nil)
	require.Error(t, err)
}
