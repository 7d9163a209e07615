package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentrules/hookctl/pkg/console"
	"github.com/agentrules/hookctl/pkg/gitctx"
	"github.com/agentrules/hookctl/pkg/hooks/action"
	"github.com/agentrules/hookctl/pkg/hooks/config"
	"github.com/agentrules/hookctl/pkg/hooks/event"
	"github.com/agentrules/hookctl/pkg/hooks/runner"
	"github.com/agentrules/hookctl/pkg/logger"
)

var runLog = logger.New("cli:run")

func newRunCommand() *cobra.Command {
	var noGit bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate one lifecycle event read from stdin",
		Long: `run reads a single JSON event payload from stdin, matches it against the
merged rule base, executes the matched rules' actions in priority order,
and writes the resulting decision as JSON to stdout.

Exit code 0 means continue; exit code 2 means a rule blocked the action
and the reason is in the decision's "reason" field.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectRoot, _ := cmd.Flags().GetString("project-root")
			verbose, _ := cmd.Flags().GetBool("verbose")

			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			ev, err := event.FromWireJSON(raw)
			if err != nil {
				return fmt.Errorf("parse event: %w", err)
			}

			r := runner.NewRunner()
			r.Loader = &config.Loader{}
			r.Registry = action.NewRegistry()
			if !noGit {
				r.Repo = gitctx.Provider{}
			}

			ctx, cancel := runner.WithDeadline(cmd.Context())
			defer cancel()

			dec, err := r.Run(ctx, projectRoot, ev)
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}

			if verbose {
				fmt.Fprint(cmd.ErrOrStderr(), console.RenderResult(dec.RuleResults, dec.BlockReason, dec.Warnings))
			}

			out, err := json.Marshal(dec.ToWire())
			if err != nil {
				return fmt.Errorf("encode decision: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			runLog.Printf("decision: continue=%v block=%v", dec.Continue, dec.Block)
			os.Exit(dec.ExitCode())
			return nil
		},
	}

	cmd.Flags().BoolVar(&noGit, "no-git", false, "skip attaching VCS context even inside a git repository")
	return cmd
}
