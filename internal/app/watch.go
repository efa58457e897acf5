package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brewdoctor/internal/brew"
	"github.com/blackwell-systems/brewdoctor/internal/output"
	"github.com/blackwell-systems/brewdoctor/internal/watcher"
)

var (
	watchDaemon      bool
	watchDaemonChild bool
	watchStop        bool
	watchDebounce    time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run diagnostics when the Cellar changes",
	Long: `Watch the Homebrew Cellar and Caskroom for changes and re-run the
diagnostic pass after each install, upgrade, or removal settles.

Runs in the foreground by default; use --daemon to detach. Each pass is
recorded in the run history.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run in the background")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop the background watcher")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period before a re-run")
	watchCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "")
	watchCmd.Flags().MarkHidden("daemon-child")
	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	pidFile, err := getDefaultPIDFile()
	if err != nil {
		return err
	}

	if watchStop {
		if err := watcher.StopDaemon(pidFile); err != nil {
			return err
		}
		os.Remove(pidFile)
		fmt.Println("Watch daemon stopped.")
		return nil
	}

	if watchDaemon {
		logFile, err := getDefaultLogFile()
		if err != nil {
			return err
		}
		if err := watcher.StartDaemon(pidFile, logFile); err != nil {
			return err
		}
		fmt.Printf("Watch daemon started (log: %s).\n", logFile)
		fmt.Println("Stop it with 'brewdoctor watch --stop'.")
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	loadCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	prefix, err := brew.Prefix(loadCtx)
	cancel()
	if err != nil {
		prefix = defaultPrefix()
	}

	paths := []string{
		filepath.Join(prefix, "Cellar"),
		filepath.Join(prefix, "Caskroom"),
	}

	pass := func() {
		outcome := runPass(cfg, true)
		fmt.Printf("[%s] %d checks, %d advisories\n",
			time.Now().Format("15:04:05"), outcome.Checks, len(outcome.Results))
		if len(outcome.Results) > 0 {
			fmt.Print(output.RenderReport(outcome.Results))
		}
		if err := recordPass(outcome); err != nil {
			fmt.Fprintf(os.Stderr, "Note: run not recorded: %v\n", err)
		}
	}

	w, err := watcher.New(paths, watchDebounce, pass)
	if err != nil {
		return err
	}

	fmt.Printf("Watching %s for changes.\n", strings.Join(w.Paths(), ", "))

	// Baseline pass so the log starts with the current state.
	pass()
	w.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if watchDaemonChild {
		os.Remove(pidFile)
	}
	return w.Stop()
}
