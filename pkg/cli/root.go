// Package cli implements the hookctl command-line surface: a cobra root
// command with a "run" subcommand that reads one lifecycle event from
// stdin, executes the rule engine against it, and writes the host-facing
// decision to stdout.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentrules/hookctl/pkg/constants"
)

var versionInfo = "dev"

// SetVersionInfo records the build-time version string for the version
// command and --version flag.
func SetVersionInfo(v string) {
	versionInfo = v
}

// NewRootCommand assembles the full hookctl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     constants.AppName,
		Short:   "Governs what an AI coding agent's tool calls are allowed to do",
		Version: versionInfo,
		Long: `hookctl evaluates an agent session's lifecycle events against a layered
set of declarative rules and reports a block/warn/allow decision.

Common tasks:
  hookctl run < event.json        # evaluate one event read from stdin
  hookctl validate                # check the merged rule base for errors
  hookctl rules                   # print the merged, ordered rule base`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	root.PersistentFlags().String("project-root", "", "project root to resolve config from (default: autodetect)")
	root.PersistentFlags().BoolP("verbose", "v", false, "print a per-rule diagnostic breakdown to stderr")
	root.SetVersionTemplate(fmt.Sprintf("%s version {{.Version}}\n", constants.AppName))

	root.AddCommand(newRunCommand())
	root.AddCommand(newValidateCommand())
	root.AddCommand(newRulesCommand())

	return root
}
