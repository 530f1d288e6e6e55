// Package git abstracts the version-control subprocess contract the
// attribution engine is built against, so the engine can be exercised
// against in-memory fakes in tests.
package git

import (
	"context"
	"io"
)

// Executor is the single impure collaborator for the whole engine: every
// interaction with the underlying version-control tool goes through it.
type Executor interface {
	// EnumerateTopicCommits lists non-merge commits reachable from HEAD
	// but not from rev, returning a map from full commit sha to subject
	// line.
	EnumerateTopicCommits(ctx context.Context, rev string) (map[string]string, error)

	// TopicCommitOrder lists the same commits as EnumerateTopicCommits,
	// oldest first, for callers that need to reorder rather than just
	// look up a subject.
	TopicCommitOrder(ctx context.Context, rev string) ([]string, error)

	// StagedDiff returns the unified diff of the index against HEAD,
	// ignoring submodules, with the given context line count.
	StagedDiff(ctx context.Context, contextLines int) (string, error)

	// BlameRange returns porcelain-format blame output for rev, limited
	// to the given file and 1-based inclusive-exclusive line range
	// [start, start+count).
	BlameRange(ctx context.Context, rev, file string, start, count int) (string, error)

	// ApplyToIndex applies a unified-diff patch to the index only,
	// tolerating zero-context hunks.
	ApplyToIndex(ctx context.Context, patch io.Reader) error

	// CommitFixup creates a commit whose message is "fixup! <targetSHA>"
	// from whatever is currently staged.
	CommitFixup(ctx context.Context, targetSHA string) error

	// ResolveRev resolves a revision expression to a full commit sha.
	ResolveRev(ctx context.Context, rev string) (string, error)

	// RepoRoot returns the repository's top-level working directory.
	RepoRoot(ctx context.Context) (string, error)

	// ReadTreeIntoIndex populates indexPath with rev's tree, without
	// touching the repository's real index.
	ReadTreeIntoIndex(ctx context.Context, rev, indexPath string) error
}
