// Package topic inspects the topic range R..HEAD and resolves fixup/squash
// aliases within it to their canonical targets.
package topic

import (
	"context"
	"fmt"

	"github.com/bwoodley/git-fixup/git"
)

// CommitSubjects maps a 40-hex commit identifier to its subject, covering
// exactly the topic range R..HEAD (excluding merges). A commit is "topic"
// iff it appears as a key here.
type CommitSubjects map[string]string

// IsTopic reports whether sha is a commit in the topic range.
func (s CommitSubjects) IsTopic(sha string) bool {
	_, ok := s[sha]

	return ok
}

// Fetch enumerates the topic commits reachable from HEAD but not from rev.
func Fetch(ctx context.Context, exec git.Executor, rev string) (CommitSubjects, error) {
	subjects, err := exec.EnumerateTopicCommits(ctx, rev)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch topic commits: %w", err)
	}

	return CommitSubjects(subjects), nil
}
