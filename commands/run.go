package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bwoodley/git-fixup/attribution"
	"github.com/bwoodley/git-fixup/blame"
	"github.com/bwoodley/git-fixup/diff"
	"github.com/bwoodley/git-fixup/fixup"
	"github.com/bwoodley/git-fixup/git"
	"github.com/bwoodley/git-fixup/output"
	"github.com/bwoodley/git-fixup/topic"
)

// RunOptions captures the flags that drive one invocation of the
// attribution engine, per spec section 6's CLI surface.
type RunOptions struct {
	Revision  string
	Context   int
	Strict    int
	Verbosity int
}

// validate checks the user/config errors spec section 7 calls out: negative
// context or strictness, and strictness > 0 requiring context > 0 (ADJACENT
// and SURROUNDED need at least one line of context to have neighbors to
// look at).
func (o RunOptions) validate() error {
	if o.Context < 0 {
		return fmt.Errorf("context must be >= 0, got %d", o.Context)
	}

	if o.Strict < 0 {
		return fmt.Errorf("strict must be >= 0, got %d", o.Strict)
	}

	if o.Strict > 0 && o.Context == 0 {
		return fmt.Errorf("strict > 0 requires context > 0")
	}

	return nil
}

// runFixup implements the Driver (spec section 4.7): it resolves the
// revision, fetches the staged diff and topic-range metadata, attributes
// every hunk, and emits one fixup commit per target against a private
// index so the user's own staging area is left untouched.
func runFixup(ctx context.Context, w io.Writer, cfg Config, opts RunOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	readExec := git.NewShellExecutor(cfg.WorkDir)

	targetSHA, err := readExec.ResolveRev(ctx, opts.Revision)
	if err != nil {
		return fmt.Errorf("resolving revision %q: %w", opts.Revision, err)
	}

	repoRoot, err := readExec.RepoRoot(ctx)
	if err != nil {
		return fmt.Errorf("determining repository root: %w", err)
	}

	readExec = git.NewShellExecutor(repoRoot)

	stagedDiff, err := readExec.StagedDiff(ctx, opts.Context)
	if err != nil {
		return fmt.Errorf("reading staged diff: %w", err)
	}

	hunks, err := diff.Parse(strings.NewReader(stagedDiff))
	if err != nil {
		return fmt.Errorf("parsing staged diff: %w", err)
	}

	subjects, err := topic.Fetch(ctx, readExec, targetSHA)
	if err != nil {
		return err
	}

	aliases, err := topic.ResolveAliases(subjects)
	if err != nil {
		return fmt.Errorf("resolving fixup aliases: %w", err)
	}

	strictness := attribution.Strictness(opts.Strict)

	decisions := make([]attribution.Decision, len(hunks))

	for i, h := range hunks {
		bl, err := blame.Fetch(ctx, readExec, "HEAD", h.File, h.Start, h.Count, aliases)
		if err != nil {
			return err
		}

		d := attribution.Attribute(h, bl, subjects, strictness)
		decisions[i] = d

		reportDecision(w, opts.Verbosity, h, bl, d)
	}

	groups := fixup.Group(hunks, decisions)
	if len(groups) == 0 {
		return nil
	}

	commitExec, cleanup, err := privateIndexExecutor(ctx, repoRoot, readExec)
	if err != nil {
		return err
	}
	defer cleanup()

	return fixup.Commit(ctx, commitExec, groups)
}

// privateIndexExecutor redirects the version-control index to a fresh
// temporary file initialized from HEAD's tree, so committing fixups never
// touches the user's real staging area (spec sections 4.7 and 5).
func privateIndexExecutor(
	ctx context.Context, repoRoot string, readExec *git.ShellExecutor,
) (*git.ShellExecutor, func(), error) {
	tmp, err := os.CreateTemp("", "git-fixup-index-*")
	if err != nil {
		return nil, nil, fmt.Errorf("creating private index: %w", err)
	}

	indexPath := tmp.Name()
	tmp.Close()

	cleanup := func() { os.Remove(indexPath) }

	if err := readExec.ReadTreeIntoIndex(ctx, "HEAD", indexPath); err != nil {
		cleanup()

		return nil, nil, err
	}

	commitExec := git.NewShellExecutor(repoRoot)
	commitExec.IndexFile = indexPath

	return commitExec, cleanup, nil
}

// reportDecision writes the per-hunk verbose report. Level 1 prints the
// assignment decision; level 2 additionally prints the tabular blame-diff.
func reportDecision(
	w io.Writer, verbosity int, h *diff.Hunk, bl blame.Blame, d attribution.Decision,
) {
	if verbosity < 1 {
		return
	}

	if d.Assigned {
		fmt.Fprintf(w, "%s:%d: assigned to %s\n", h.File, h.Start, d.Target)
	} else {
		fmt.Fprintf(w, "%s:%d: unassigned (%s)\n", h.File, h.Start, d.Reason)
	}

	if verbosity < 2 {
		return
	}

	output.WriteBlameDiff(w, blameDiffRows(h, bl))
}

// blameDiffRows builds one BlameDiffRow per body line (no-newline markers
// excluded) whose pre-image index has a blame entry, pairing that entry's
// HEAD text with the body line's own text. An addition row carries the blame
// of the pre-image line that follows the insertion point.
func blameDiffRows(h *diff.Hunk, bl blame.Blame) []output.BlameDiffRow {
	idx := attribution.BuildBlameIndex(h)

	var rows []output.BlameDiffRow

	for i, line := range h.Lines {
		if line == "" || line[0] == '\\' {
			continue
		}

		lineNum := idx[i]
		text := strings.TrimRight(line[1:], "\r\n")

		l, ok := bl[lineNum]
		if !ok {
			continue
		}

		rows = append(rows, output.BlameDiffRow{
			SHA:      l.SHA,
			LineNum:  lineNum,
			HeadText: l.Text,
			WorkText: text,
		})
	}

	return rows
}

