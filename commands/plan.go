package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/bwoodley/git-fixup/git"
	"github.com/bwoodley/git-fixup/rebase"
	"github.com/bwoodley/git-fixup/topic"
	"github.com/spf13/cobra"
)

// NewPlanCmd creates the "plan" subcommand: a strictly read-only preview of
// the pick/fixup/squash ordering `git rebase -i --autosquash` would produce
// for R..HEAD, without ever invoking rebase (spec section 9.1).
func NewPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [revision]",
		Short: "Preview the autosquash ordering for the topic range, without rebasing",
		Long: `plan lists the topic commits in R..HEAD, resolves any fixup!/squash!
aliases among them, and prints the pick/fixup/squash ordering that
'git rebase -i --autosquash R' would produce. It never touches the
repository: no rebase is started and no commits are created.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rev := "@{upstream}"
			if len(args) == 1 {
				rev = args[0]
			}

			cfg := getConfig(cmd.Context())

			return runPlan(cmd.Context(), cmd.OutOrStdout(), cfg, rev)
		},
	}

	return cmd
}

func runPlan(ctx context.Context, w io.Writer, cfg Config, rev string) error {
	exec := git.NewShellExecutor(cfg.WorkDir)

	targetSHA, err := exec.ResolveRev(ctx, rev)
	if err != nil {
		return fmt.Errorf("resolving revision %q: %w", rev, err)
	}

	subjects, err := topic.Fetch(ctx, exec, targetSHA)
	if err != nil {
		return err
	}

	aliases, err := topic.ResolveAliases(subjects)
	if err != nil {
		return fmt.Errorf("resolving fixup aliases: %w", err)
	}

	order, err := exec.TopicCommitOrder(ctx, targetSHA)
	if err != nil {
		return fmt.Errorf("listing topic commit order: %w", err)
	}

	plan := rebase.BuildPlan(order, subjects, aliases)

	_, err = io.WriteString(w, plan.String())

	return err
}
