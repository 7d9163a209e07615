package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentrules/hookctl/pkg/hooks/config"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the merged rule base and report any errors",
		Long: `validate runs the same config discovery and merge pass "run" uses,
without evaluating any event, and reports how many rules were loaded,
the resolved log level, and one line per rule with its status, priority
and source file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectRoot, _ := cmd.Flags().GetString("project-root")

			loader := &config.Loader{}
			cfg, err := loader.Load(projectRoot)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d rule(s) loaded (log_level=%s)\n", len(cfg.Rules), cfg.Settings.LogLevel)
			for _, r := range cfg.Rules {
				status := "enabled"
				if !r.Enabled {
					status = "disabled"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %-30s %-8s priority=%s source=%s\n", r.ID, status, r.Priority, r.SourceFile)
			}
			return nil
		},
	}
}
