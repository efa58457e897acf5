package app

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brewdoctor/internal/diagnose"
	"github.com/blackwell-systems/brewdoctor/internal/output"
	"github.com/blackwell-systems/brewdoctor/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show past diagnostic runs",
	Long: `Show past diagnostic runs recorded by 'brewdoctor check'.

Without arguments, lists recent runs newest first. With a run ID,
replays that run's advisories.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "number of runs to show")
	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, err := getDBPath()
	if err != nil {
		return err
	}

	st, err := store.New(path)
	if err != nil {
		return err
	}
	defer st.Close()

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}
		return showRun(st, id)
	}

	runs, err := st.ListRuns(historyLimit)
	if err != nil {
		if errors.Is(err, store.ErrNotInitialized) {
			fmt.Print(output.RenderRunTable(nil))
			return nil
		}
		return err
	}
	fmt.Print(output.RenderRunTable(runs))
	return nil
}

// showRun replays one recorded run's advisories in report form.
func showRun(st *store.Store, id int64) error {
	run, err := st.GetRun(id)
	if err != nil {
		if errors.Is(err, store.ErrNotInitialized) {
			fmt.Print(output.RenderRunTable(nil))
			return nil
		}
		return err
	}

	advisories, err := st.Advisories(id)
	if err != nil {
		return err
	}

	fmt.Printf("Run %d — %s, %d checks in %s\n\n",
		run.ID,
		run.StartedAt.Format(time.RFC1123),
		run.ChecksRun,
		run.Duration.Round(time.Millisecond))

	results := make([]diagnose.Result, 0, len(advisories))
	for _, a := range advisories {
		results = append(results, diagnose.Result{Name: a.Check, Message: a.Message})
	}
	fmt.Print(output.RenderReport(results))
	return nil
}
