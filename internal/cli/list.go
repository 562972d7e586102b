package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"storecheck/internal/scenario"
)

// ScenarioInfo describes one registered scenario for list output.
type ScenarioInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List registered scenarios",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := make([]ScenarioInfo, 0)
			for _, sc := range scenario.Registry() {
				infos = append(infos, ScenarioInfo{Name: sc.Name, Description: sc.Description})
			}

			if rootOpts.Format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(CLIResponse{Status: "ok", Data: infos})
			}

			w := cmd.OutOrStdout()
			for _, info := range infos {
				fmt.Fprintf(w, "%-32s %s\n", info.Name, info.Description)
			}
			return nil
		},
	}
}
