// Package diagnose orchestrates brewdoctor's advisory checks: an ordered
// registry of independent checks run sequentially over one shared
// per-run context.
package diagnose

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/blackwell-systems/brewdoctor/internal/brew"
	"github.com/blackwell-systems/brewdoctor/internal/volume"
)

// DefaultTimeout bounds each external probe a check makes.
const DefaultTimeout = 15 * time.Second

// Check is one advisory unit. Run returns the advisory text, or "" when
// the check found nothing worth reporting.
type Check struct {
	Name string
	Run  func(*Context) (string, error)
}

// Result is one non-empty advisory produced by a run. Results keep the
// order their checks were registered in.
type Result struct {
	Name    string
	Message string
}

// Context carries run-scoped state shared by the checks. Cross-check
// state lives in named fields rather than ambient globals, so the
// ordering contract between a writing check and its readers is visible
// here; the registry must order writers ahead of readers.
type Context struct {
	// Prefix is the Homebrew installation prefix, e.g. /opt/homebrew.
	Prefix string
	// Meta is the installed-formula catalogue, nil when brew itself was
	// unavailable. Checks that need it must degrade to "no advisory".
	Meta brew.Metadata
	// Volumes resolves paths to mounted volumes.
	Volumes *volume.Resolver
	// Timeout bounds each external probe made through Command.
	Timeout time.Duration
	// Getenv looks up environment variables; swapped out by tests.
	Getenv func(string) string
	// AllowPatterns are user-configured additions to the stray-file
	// whitelists.
	AllowPatterns []string

	// PATH observations recorded by check_brew_bin_in_path and consumed
	// by the PATH checks that run after it.
	SawBrewBin          bool
	BrewBinBeforeSystem bool
}

// NewContext creates a run context with defaults filled in.
func NewContext(prefix string, meta brew.Metadata, volumes *volume.Resolver) *Context {
	return &Context{
		Prefix:  prefix,
		Meta:    meta,
		Volumes: volumes,
		Timeout: DefaultTimeout,
		Getenv:  os.Getenv,
	}
}

// Command runs an external probe with the run's timeout applied. A hung
// tool surfaces as an error on the calling check, not a stalled run.
func (c *Context) Command(name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%s timed out after %s", name, c.Timeout)
	}
	return out, err
}

// RunAll executes checks strictly in slice order over the shared context.
// Order is part of the contract: some checks record context fields that
// later checks read. A check that errors or panics becomes a generic
// advisory naming it, and the run continues; one bad check never aborts
// the pass. The returned results hold only non-empty advisories, in
// execution order.
func RunAll(checks []Check, ctx *Context) []Result {
	var results []Result
	for _, check := range checks {
		msg, err := runOne(check, ctx)
		if err != nil {
			results = append(results, Result{
				Name:    check.Name,
				Message: fmt.Sprintf("The check %s did not complete:\n  %v", check.Name, err),
			})
			continue
		}
		if msg != "" {
			results = append(results, Result{Name: check.Name, Message: msg})
		}
	}
	return results
}

// runOne isolates a single check, converting panics into errors.
func runOne(check Check, ctx *Context) (msg string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return check.Run(ctx)
}
