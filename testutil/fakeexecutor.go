package testutil

import (
	"context"
	"io"
)

// FakeExecutor is an in-memory stand-in for git.Executor, letting the
// attribution engine and its callers be exercised without a real
// subprocess. Per spec section 9's design note, the version-control
// subprocess boundary is the one impure collaborator; everything behind it
// is tested against fakes like this one. Each field defaults to a harmless
// response when left nil: a zero value, except ResolveRev, which returns its
// rev argument unchanged.
type FakeExecutor struct {
	EnumerateTopicCommitsFunc func(ctx context.Context, rev string) (map[string]string, error)
	TopicCommitOrderFunc      func(ctx context.Context, rev string) ([]string, error)
	StagedDiffFunc            func(ctx context.Context, contextLines int) (string, error)
	BlameRangeFunc            func(ctx context.Context, rev, file string, start, count int) (string, error)
	ApplyToIndexFunc          func(ctx context.Context, patch []byte) error
	CommitFixupFunc           func(ctx context.Context, targetSHA string) error
	ResolveRevFunc            func(ctx context.Context, rev string) (string, error)
	RepoRootFunc              func(ctx context.Context) (string, error)
	ReadTreeIntoIndexFunc     func(ctx context.Context, rev, indexPath string) error

	// Applied and Committed record every call for assertions, in order.
	Applied   [][]byte
	Committed []string
}

func (f *FakeExecutor) EnumerateTopicCommits(
	ctx context.Context, rev string,
) (map[string]string, error) {
	if f.EnumerateTopicCommitsFunc != nil {
		return f.EnumerateTopicCommitsFunc(ctx, rev)
	}

	return map[string]string{}, nil
}

func (f *FakeExecutor) TopicCommitOrder(
	ctx context.Context, rev string,
) ([]string, error) {
	if f.TopicCommitOrderFunc != nil {
		return f.TopicCommitOrderFunc(ctx, rev)
	}

	return nil, nil
}

func (f *FakeExecutor) StagedDiff(ctx context.Context, contextLines int) (string, error) {
	if f.StagedDiffFunc != nil {
		return f.StagedDiffFunc(ctx, contextLines)
	}

	return "", nil
}

func (f *FakeExecutor) BlameRange(
	ctx context.Context, rev, file string, start, count int,
) (string, error) {
	if f.BlameRangeFunc != nil {
		return f.BlameRangeFunc(ctx, rev, file, start, count)
	}

	return "", nil
}

func (f *FakeExecutor) ApplyToIndex(ctx context.Context, patch io.Reader) error {
	data, err := io.ReadAll(patch)
	if err != nil {
		return err
	}

	f.Applied = append(f.Applied, data)

	if f.ApplyToIndexFunc != nil {
		return f.ApplyToIndexFunc(ctx, data)
	}

	return nil
}

func (f *FakeExecutor) CommitFixup(ctx context.Context, targetSHA string) error {
	f.Committed = append(f.Committed, targetSHA)

	if f.CommitFixupFunc != nil {
		return f.CommitFixupFunc(ctx, targetSHA)
	}

	return nil
}

func (f *FakeExecutor) ResolveRev(ctx context.Context, rev string) (string, error) {
	if f.ResolveRevFunc != nil {
		return f.ResolveRevFunc(ctx, rev)
	}

	return rev, nil
}

func (f *FakeExecutor) RepoRoot(ctx context.Context) (string, error) {
	if f.RepoRootFunc != nil {
		return f.RepoRootFunc(ctx)
	}

	return "", nil
}

func (f *FakeExecutor) ReadTreeIntoIndex(ctx context.Context, rev, indexPath string) error {
	if f.ReadTreeIntoIndexFunc != nil {
		return f.ReadTreeIntoIndexFunc(ctx, rev, indexPath)
	}

	return nil
}
