// Package volume maps filesystem paths to the physical volume they live
// on, using the OS mount table as reported by df.
package volume

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// NotFound is the sentinel index returned when a path cannot be mapped to
// a mounted volume. Callers must treat it as "unknown", not as "a
// different volume".
const NotFound = -1

// DefaultTimeout bounds each df invocation so a hung mount (e.g. a dead
// network filesystem) cannot stall the whole diagnostic pass.
const DefaultTimeout = 10 * time.Second

// Mount is one mounted filesystem as reported by df.
type Mount struct {
	Device string
	Path   string
}

// dfLine matches one POSIX df statistics line:
// <device> <blocks> <used> <avail> <pct>% <mountpoint>
// Only the mountpoint is consumed; mountpoints containing spaces are kept
// whole.
var dfLine = regexp.MustCompile(`^(\S.*?)\s+\d+\s+\d+\s+\d+\s+\d{1,3}%\s+(/.*)$`)

// Resolver answers which volume a path belongs to. Volume identity is
// positional: two paths are on the same volume iff they resolve to the
// same index within tables captured in one resolution pass.
type Resolver struct {
	timeout time.Duration

	// runDF is swapped out by tests.
	runDF func(ctx context.Context, args ...string) ([]byte, error)
}

// New creates a Resolver whose df invocations are bounded by timeout. A
// non-positive timeout falls back to DefaultTimeout.
func New(timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Resolver{
		timeout: timeout,
		runDF: func(ctx context.Context, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, "df", append([]string{"-P"}, args...)...).Output()
		},
	}
}

// Mounts captures the current mount table in df order. The returned slice
// is a snapshot: indexes are stable within it but not across captures. A
// failing df yields an empty table.
func (r *Resolver) Mounts(ctx context.Context) []Mount {
	out, err := r.df(ctx)
	if err != nil {
		return nil
	}
	return parseMounts(out)
}

// WhichVolume returns the index of the volume containing path within a
// freshly captured mount table, or NotFound. The path is resolved by a
// scoped df query, then located by mountpoint in the full table; a path
// unmounted between the two queries also yields NotFound.
func (r *Resolver) WhichVolume(ctx context.Context, path string) int {
	mountpoint, ok := r.mountpointOf(ctx, path)
	if !ok {
		return NotFound
	}
	for i, m := range r.Mounts(ctx) {
		if m.Path == mountpoint {
			return i
		}
	}
	return NotFound
}

// mountpointOf runs the scoped df query for path and returns its
// mountpoint. df prints exactly one statistics line for an existing path.
func (r *Resolver) mountpointOf(ctx context.Context, path string) (string, bool) {
	out, err := r.df(ctx, path)
	if err != nil {
		return "", false
	}
	mounts := parseMounts(out)
	if len(mounts) == 0 {
		return "", false
	}
	return mounts[0].Path, true
}

func (r *Resolver) df(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.runDF(ctx, args...)
}

// parseMounts extracts one Mount per statistics line, preserving df's
// reporting order. Header and non-matching lines are skipped.
func parseMounts(out []byte) []Mount {
	var mounts []Mount
	for _, line := range strings.Split(string(out), "\n") {
		m := dfLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		mounts = append(mounts, Mount{Device: m[1], Path: m[2]})
	}
	return mounts
}
