package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brewdoctor/internal/output"
)

var checkNoRecord bool

var checkCmd = &cobra.Command{
	Use:     "check",
	Aliases: []string{"doctor"},
	Short:   "Run all diagnostic checks",
	Long: `Run every registered diagnostic check against your Homebrew
installation and print the advisories found.

Checks run in a fixed order and never modify anything. A clean pass
prints "Your system is ready to brew."; otherwise each advisory is
listed with the check that produced it, and the command exits with
status 1.

Individual checks can be disabled and stray-file whitelists extended
via config.yaml in the brewdoctor config directory.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkNoRecord, "no-record", false, "do not record this run in history")
	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outcome := runPass(cfg, false)

	fmt.Print(output.RenderReport(outcome.Results))

	if !checkNoRecord {
		if err := recordPass(outcome); err != nil {
			fmt.Fprintf(os.Stderr, "Note: run not recorded: %v\n", err)
		}
	}

	if len(outcome.Results) > 0 {
		os.Exit(1)
	}
	return nil
}
