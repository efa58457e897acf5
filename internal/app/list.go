package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brewdoctor/internal/diagnose"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered checks in run order",
	Long: `List every registered diagnostic check in the order 'brewdoctor check'
runs them. Checks disabled in config.yaml are marked.`,
	RunE: runList,
}

func init() {
	RootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	disabled := make(map[string]bool, len(cfg.DisabledChecks))
	for _, name := range cfg.DisabledChecks {
		disabled[name] = true
	}

	for i, check := range diagnose.Registry() {
		marker := ""
		if disabled[check.Name] {
			marker = "  (disabled)"
		}
		fmt.Printf("%2d. %s%s\n", i+1, check.Name, marker)
	}
	return nil
}
