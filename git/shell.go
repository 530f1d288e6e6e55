package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// ShellExecutor implements Executor by shelling out to the git binary.
type ShellExecutor struct {
	// WorkDir is the working directory for git commands. If empty, uses
	// the current directory.
	WorkDir string

	// IndexFile, if set, is passed to git via GIT_INDEX_FILE so the
	// command operates against a private index rather than the
	// repository's real one.
	IndexFile string
}

// NewShellExecutor creates a new ShellExecutor rooted at workDir.
func NewShellExecutor(workDir string) *ShellExecutor {
	return &ShellExecutor{WorkDir: workDir}
}

// run executes a git command and returns stdout.
func (e *ShellExecutor) run(
	ctx context.Context, stdin io.Reader, args ...string,
) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if e.WorkDir != "" {
		cmd.Dir = e.WorkDir
	}

	if e.IndexFile != "" {
		cmd.Env = append(cmd.Environ(), "GIT_INDEX_FILE="+e.IndexFile)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Stdin = stdin

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf(
			"git %s failed: %w: %s",
			strings.Join(args, " "), err, stderr.String(),
		)
	}

	return stdout.String(), nil
}

// EnumerateTopicCommits lists non-merge commits in rev..HEAD as sha:subject.
func (e *ShellExecutor) EnumerateTopicCommits(
	ctx context.Context, rev string,
) (map[string]string, error) {
	output, err := e.run(
		ctx, nil,
		"log", "--no-merges", "--format=%H:%s", rev+"..HEAD",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate topic commits: %w", err)
	}

	subjects := make(map[string]string)

	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}

		sha, subject, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		subjects[sha] = subject
	}

	return subjects, nil
}

// TopicCommitOrder lists non-merge commits in rev..HEAD oldest first.
func (e *ShellExecutor) TopicCommitOrder(
	ctx context.Context, rev string,
) ([]string, error) {
	output, err := e.run(
		ctx, nil,
		"log", "--no-merges", "--reverse", "--format=%H", rev+"..HEAD",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list topic commit order: %w", err)
	}

	var shas []string

	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}

		shas = append(shas, line)
	}

	return shas, nil
}

// StagedDiff returns the unified diff of the index against HEAD.
func (e *ShellExecutor) StagedDiff(
	ctx context.Context, contextLines int,
) (string, error) {
	output, err := e.run(
		ctx, nil,
		"diff", "--cached", "--no-color", "--ignore-submodules",
		"-U"+strconv.Itoa(contextLines),
	)
	if err != nil {
		return "", fmt.Errorf("failed to read staged diff: %w", err)
	}

	return output, nil
}

// BlameRange returns porcelain blame output for file at rev, limited to the
// pre-image line range [start, start+count).
func (e *ShellExecutor) BlameRange(
	ctx context.Context, rev, file string, start, count int,
) (string, error) {
	lineRange := fmt.Sprintf("%d,+%d", start, count)

	output, err := e.run(
		ctx, nil,
		"blame", "--porcelain", "-L", lineRange, rev, "--", file,
	)
	if err != nil {
		return "", fmt.Errorf("failed to blame %s: %w", file, err)
	}

	return output, nil
}

// ApplyToIndex applies a unified-diff patch to the index only.
func (e *ShellExecutor) ApplyToIndex(
	ctx context.Context, patch io.Reader,
) error {
	_, err := e.run(
		ctx, patch, "apply", "--cached", "--unidiff-zero", "-",
	)
	if err != nil {
		return fmt.Errorf("failed to apply patch to index: %w", err)
	}

	return nil
}

// CommitFixup creates a commit with message "fixup! <targetSHA>" from
// whatever is currently staged.
func (e *ShellExecutor) CommitFixup(ctx context.Context, targetSHA string) error {
	message := "fixup! " + targetSHA

	_, err := e.run(ctx, nil, "commit", "--no-verify", "-m", message)
	if err != nil {
		return fmt.Errorf("failed to create fixup commit for %s: %w", targetSHA, err)
	}

	return nil
}

// ResolveRev resolves a revision expression to a full commit sha.
func (e *ShellExecutor) ResolveRev(ctx context.Context, rev string) (string, error) {
	output, err := e.run(ctx, nil, "rev-parse", "--verify", rev)
	if err != nil {
		return "", fmt.Errorf("failed to resolve revision %q: %w", rev, err)
	}

	return strings.TrimSpace(output), nil
}

// RepoRoot returns the repository's top-level working directory.
func (e *ShellExecutor) RepoRoot(ctx context.Context) (string, error) {
	output, err := e.run(ctx, nil, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("failed to determine repository root: %w", err)
	}

	return strings.TrimSpace(output), nil
}

// ReadTreeIntoIndex populates indexPath with rev's tree.
func (e *ShellExecutor) ReadTreeIntoIndex(
	ctx context.Context, rev, indexPath string,
) error {
	cmd := exec.CommandContext(ctx, "git", "read-tree", rev)
	if e.WorkDir != "" {
		cmd.Dir = e.WorkDir
	}

	cmd.Env = append(cmd.Environ(), "GIT_INDEX_FILE="+indexPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf(
			"failed to read tree %s into index: %w: %s",
			rev, err, stderr.String(),
		)
	}

	return nil
}

// Compile-time check that ShellExecutor implements Executor.
var _ Executor = (*ShellExecutor)(nil)
