package app

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/blackwell-systems/brewdoctor/internal/brew"
	"github.com/blackwell-systems/brewdoctor/internal/config"
	"github.com/blackwell-systems/brewdoctor/internal/diagnose"
	"github.com/blackwell-systems/brewdoctor/internal/output"
	"github.com/blackwell-systems/brewdoctor/internal/store"
	"github.com/blackwell-systems/brewdoctor/internal/volume"
)

// passOutcome captures one completed diagnostic pass for rendering and
// recording.
type passOutcome struct {
	Results  []diagnose.Result
	Checks   int
	Started  time.Time
	Duration time.Duration
}

// loadConfig reads the user config from the standard directory.
func loadConfig() (*config.Config, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config directory: %w", err)
	}
	return config.Load(dir)
}

// runPass executes one full diagnostic pass: prefix and metadata
// resolution, check filtering, and execution. Failures to reach brew
// degrade the pass (affected checks skip themselves) rather than
// aborting it. quiet suppresses the progress spinners for watch mode.
func runPass(cfg *config.Config, quiet bool) *passOutcome {
	timeout := cfg.Timeout()

	loadCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	prefix, err := brew.Prefix(loadCtx)
	if err != nil {
		prefix = defaultPrefix()
		fmt.Fprintf(os.Stderr, "Note: brew --prefix failed (%v), assuming %s\n", err, prefix)
	}

	var spin *output.Spinner
	if !quiet {
		spin = output.NewSpinner("Loading formula metadata")
		spin.Start()
	}
	var meta brew.Metadata
	catalogue, err := brew.LoadInstalled(loadCtx)
	if !quiet {
		spin.Stop()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Note: could not load installed formulae (%v); dependency checks will be skipped\n", err)
	} else {
		meta = catalogue
	}

	ctx := diagnose.NewContext(prefix, meta, volume.New(timeout))
	ctx.Timeout = timeout
	ctx.AllowPatterns = cfg.AllowPatterns

	checks := diagnose.Filter(diagnose.Registry(), cfg.DisabledChecks)

	started := time.Now()
	if !quiet {
		spin = output.NewSpinner("Running diagnostics")
		spin.Start()
	}
	results := diagnose.RunAll(checks, ctx)
	if !quiet {
		spin.Stop()
	}

	return &passOutcome{
		Results:  results,
		Checks:   len(checks),
		Started:  started,
		Duration: time.Since(started),
	}
}

// recordPass persists a pass in the run-history database.
func recordPass(o *passOutcome) error {
	path, err := getDBPath()
	if err != nil {
		return err
	}

	st, err := store.New(path)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.CreateSchema(); err != nil {
		return err
	}
	_, err = st.RecordRun(o.Started, o.Duration, o.Checks, o.Results)
	return err
}

// defaultPrefix is the conventional Homebrew prefix for this platform,
// used when brew itself cannot be asked.
func defaultPrefix() string {
	if runtime.GOOS == "darwin" && runtime.GOARCH == "arm64" {
		return "/opt/homebrew"
	}
	return "/usr/local"
}
