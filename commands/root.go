// Package commands wires the attribution engine and its collaborators into
// a cobra CLI, grounded in the teacher's commands.NewRootCmd shape: a
// persistent --dir flag threaded through context, a version subcommand, and
// RunE functions that write to cmd.OutOrStdout() rather than a global
// logger.
package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// configKey is the context key for runtime config.
type configKey struct{}

// Config holds runtime configuration shared by the root command and its
// subcommands.
type Config struct {
	// WorkDir is the directory to run as if git had been started in,
	// mirroring git's own -C flag.
	WorkDir string
}

// getConfig retrieves config from context, or returns defaults.
func getConfig(ctx context.Context) Config {
	if cfg, ok := ctx.Value(configKey{}).(Config); ok {
		return cfg
	}

	return Config{}
}

// NewRootCmd creates the git-fixup root command. It takes a single
// positional revision argument (defaulting to "@{upstream}") and is the
// tool's only verb; "plan" is the sole supplemental subcommand (spec
// section 9.1).
func NewRootCmd() *cobra.Command {
	var (
		workDir      string
		verbosity    int
		contextLines int
		strict       int
	)

	cmd := &cobra.Command{
		Use:     "git-fixup [revision]",
		Short:   "Attribute staged hunks to the topic commits they fix up",
		Version: Version,
		Long: `git-fixup inspects the currently staged changes and, for each
hunk, decides which commit on the current topic branch it most plausibly
fixes up. It then creates one synthetic "fixup!" commit per target so that
a later 'git rebase -i --autosquash' folds everything back into place.

The positional revision argument is the upstream boundary R; the topic
range considered is R..HEAD. It defaults to @{upstream} when omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rev := "@{upstream}"
			if len(args) == 1 {
				rev = args[0]
			}

			cfg := getConfig(cmd.Context())

			return runFixup(cmd.Context(), cmd.OutOrStdout(), cfg, RunOptions{
				Revision:  rev,
				Context:   contextLines,
				Strict:    strict,
				Verbosity: verbosity,
			})
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg := Config{WorkDir: workDir}
			ctx := ctxWithConfig(cmd.Context(), cfg)
			cmd.SetContext(ctx)
		},
	}

	cmd.PersistentFlags().StringVarP(
		&workDir, "dir", "C", "",
		"run as if git-fixup was started in this directory",
	)
	cmd.Flags().IntVarP(
		&contextLines, "context", "c", 3,
		"number of context lines to request in the staged diff",
	)
	cmd.Flags().IntVarP(
		&strict, "strict", "s", 0,
		"attribution strictness: 0=context, 1=adjacent, 2=surrounded",
	)
	cmd.Flags().CountVarP(
		&verbosity, "verbose", "v",
		"increase verbosity (repeatable, up to twice)",
	)

	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewPlanCmd())

	return cmd
}

func ctxWithConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
