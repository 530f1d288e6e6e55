package rebase_test

import (
	"testing"

	"github.com/bwoodley/git-fixup/rebase"
	"github.com/bwoodley/git-fixup/topic"
	"github.com/stretchr/testify/require"
)

func TestBuildPlan_NoFixupsIsAllPicks(t *testing.T) {
	order := []string{"a", "b", "c"}
	subjects := topic.CommitSubjects{"a": "one", "b": "two", "c": "three"}

	plan := rebase.BuildPlan(order, subjects, topic.AliasMap{})

	require.Equal(t, "pick a one\npick b two\npick c three\n", plan.String())
}

func TestBuildPlan_FixupMovesNextToTarget(t *testing.T) {
	// Commit order as returned by log: X, then unrelated Y, then its fixup Z.
	order := []string{"x", "y", "z"}
	subjects := topic.CommitSubjects{
		"x": "feat: widget",
		"y": "feat: gadget",
		"z": "fixup! feat: widget",
	}
	aliases := topic.AliasMap{"z": "x"}

	plan := rebase.BuildPlan(order, subjects, aliases)

	require.Equal(t, []rebase.PlanEntry{
		{Action: rebase.ActionPick, SHA: "x", Subject: "feat: widget"},
		{Action: rebase.ActionFixup, SHA: "z", Subject: "fixup! feat: widget"},
		{Action: rebase.ActionPick, SHA: "y", Subject: "feat: gadget"},
	}, plan.Entries)
}

func TestBuildPlan_SquashActionPreserved(t *testing.T) {
	order := []string{"x", "z"}
	subjects := topic.CommitSubjects{
		"x": "feat: widget",
		"z": "squash! feat: widget",
	}
	aliases := topic.AliasMap{"z": "x"}

	plan := rebase.BuildPlan(order, subjects, aliases)

	require.Equal(t, rebase.ActionSquash, plan.Entries[1].Action)
}

func TestBuildPlan_MultipleFixupsForSameTargetStayInOrder(t *testing.T) {
	order := []string{"x", "z1", "z2"}
	subjects := topic.CommitSubjects{
		"x":  "feat: widget",
		"z1": "fixup! feat: widget",
		"z2": "fixup! feat: widget",
	}
	aliases := topic.AliasMap{"z1": "x", "z2": "x"}

	plan := rebase.BuildPlan(order, subjects, aliases)

	var shas []string
	for _, e := range plan.Entries {
		shas = append(shas, e.SHA)
	}

	require.Equal(t, []string{"x", "z1", "z2"}, shas)
}
