// Package fixup implements the Fixup Committer: it groups attributed hunks
// by target commit and feeds each group back to the version-control tool as
// a synthetic fixup commit.
package fixup

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bwoodley/git-fixup/attribution"
	"github.com/bwoodley/git-fixup/diff"
	"github.com/bwoodley/git-fixup/git"
	"github.com/bwoodley/git-fixup/patch"
)

// Groups maps a target commit sha to the ordered hunks attributed to it.
type Groups map[string][]*diff.Hunk

// Group collects hunks by their attributed target, preserving the order in
// which the diff parser produced them within each group. Hunks the
// attribution engine left unassigned are silently dropped; the caller is
// responsible for logging that decision at the appropriate verbosity.
func Group(hunks []*diff.Hunk, decisions []attribution.Decision) Groups {
	groups := make(Groups)

	for i, hunk := range hunks {
		d := decisions[i]
		if !d.Assigned {
			continue
		}

		groups[d.Target] = append(groups[d.Target], hunk)
	}

	return groups
}

// Commit creates one fixup commit per group. For each (target, hunks) pair
// it stages the hunks via the version-control tool's zero-context-tolerant
// apply-to-index operation, then commits with a "fixup! <target>" message.
// Iteration order over groups is unspecified (spec section 5): each group
// produces an independent commit that a later autosquash rebase reorders.
func Commit(ctx context.Context, exec git.Executor, groups Groups) error {
	for target, hunks := range groups {
		stream := patch.Generate(hunks)

		if err := exec.ApplyToIndex(ctx, bytes.NewReader(stream)); err != nil {
			return fmt.Errorf("applying fixup hunks for %s: %w", target, err)
		}

		if err := exec.CommitFixup(ctx, target); err != nil {
			return fmt.Errorf("committing fixup for %s: %w", target, err)
		}
	}

	return nil
}
