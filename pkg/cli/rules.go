package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentrules/hookctl/pkg/hooks/config"
)

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the merged, ordered rule base as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectRoot, _ := cmd.Flags().GetString("project-root")

			loader := &config.Loader{}
			cfg, err := loader.Load(projectRoot)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			type ruleView struct {
				ID         string   `json:"id"`
				Events     []string `json:"events"`
				Priority   string   `json:"priority"`
				Enabled    bool     `json:"enabled"`
				Condition  string   `json:"condition,omitempty"`
				Terminal   bool     `json:"terminal"`
				SourceFile string   `json:"source_file"`
			}

			views := make([]ruleView, 0, len(cfg.Rules))
			for _, r := range cfg.Rules {
				events := make([]string, 0, len(r.Events))
				for k := range r.Events {
					events = append(events, string(k))
				}
				views = append(views, ruleView{
					ID:         r.ID,
					Events:     events,
					Priority:   string(r.Priority),
					Enabled:    r.Enabled,
					Condition:  r.Condition,
					Terminal:   r.Terminal,
					SourceFile: r.SourceFile,
				})
			}

			out, err := json.MarshalIndent(views, "", "  ")
			if err != nil {
				return fmt.Errorf("encode rules: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
