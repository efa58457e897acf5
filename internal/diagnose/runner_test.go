package diagnose

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRunAllPreservesRegistrationOrder(t *testing.T) {
	checks := []Check{
		{Name: "third_registered_first", Run: func(*Context) (string, error) { return "c", nil }},
		{Name: "alpha", Run: func(*Context) (string, error) { return "a", nil }},
		{Name: "beta", Run: func(*Context) (string, error) { return "b", nil }},
	}

	results := RunAll(checks, NewContext("/opt/homebrew", nil, nil))

	want := []string{"third_registered_first", "alpha", "beta"}
	if len(results) != len(want) {
		t.Fatalf("RunAll() returned %d results, want %d", len(results), len(want))
	}
	for i, name := range want {
		if results[i].Name != name {
			t.Errorf("results[%d].Name = %q, want %q", i, results[i].Name, name)
		}
	}
}

func TestRunAllSkipsEmptyMessages(t *testing.T) {
	checks := []Check{
		{Name: "quiet", Run: func(*Context) (string, error) { return "", nil }},
		{Name: "loud", Run: func(*Context) (string, error) { return "warning text", nil }},
	}

	results := RunAll(checks, NewContext("/opt/homebrew", nil, nil))
	if len(results) != 1 {
		t.Fatalf("RunAll() returned %d results, want 1", len(results))
	}
	if results[0].Name != "loud" {
		t.Errorf("results[0].Name = %q, want loud", results[0].Name)
	}
}

func TestRunAllCleanRunIsEmpty(t *testing.T) {
	checks := []Check{
		{Name: "a", Run: func(*Context) (string, error) { return "", nil }},
		{Name: "b", Run: func(*Context) (string, error) { return "", nil }},
	}
	if results := RunAll(checks, NewContext("/opt/homebrew", nil, nil)); len(results) != 0 {
		t.Errorf("RunAll() = %v, want empty for a clean run", results)
	}
}

func TestRunAllIsolatesFailures(t *testing.T) {
	var ranAfterFailure bool
	checks := []Check{
		{Name: "fails", Run: func(*Context) (string, error) { return "", errors.New("boom") }},
		{Name: "panics", Run: func(*Context) (string, error) { panic("kaboom") }},
		{Name: "survivor", Run: func(*Context) (string, error) {
			ranAfterFailure = true
			return "still here", nil
		}},
	}

	results := RunAll(checks, NewContext("/opt/homebrew", nil, nil))

	if !ranAfterFailure {
		t.Fatal("a failing check aborted the run")
	}
	if len(results) != 3 {
		t.Fatalf("RunAll() returned %d results, want 3", len(results))
	}
	if !strings.Contains(results[0].Message, "fails") || !strings.Contains(results[0].Message, "boom") {
		t.Errorf("failure advisory %q should name the check and the error", results[0].Message)
	}
	if !strings.Contains(results[1].Message, "panics") || !strings.Contains(results[1].Message, "kaboom") {
		t.Errorf("panic advisory %q should name the check and the panic value", results[1].Message)
	}
	if results[2].Message != "still here" {
		t.Errorf("results[2].Message = %q, want %q", results[2].Message, "still here")
	}
}

// TestRunAllContextCoupling covers the ordering contract: check 1 records
// a PATH observation, check 2 suppresses its warning because of it, check
// 3 always fails. The result holds only check 3's generic failure entry.
func TestRunAllContextCoupling(t *testing.T) {
	checks := []Check{
		{Name: "observer", Run: func(ctx *Context) (string, error) {
			ctx.SawBrewBin = true
			return "", nil
		}},
		{Name: "reader", Run: func(ctx *Context) (string, error) {
			if !ctx.SawBrewBin {
				return "brew bin not in PATH", nil
			}
			return "", nil
		}},
		{Name: "broken", Run: func(*Context) (string, error) {
			return "", errors.New("always fails")
		}},
	}

	results := RunAll(checks, NewContext("/opt/homebrew", nil, nil))

	if len(results) != 1 {
		t.Fatalf("RunAll() returned %d results, want 1 (reader suppressed, broken reported)", len(results))
	}
	if results[0].Name != "broken" {
		t.Errorf("results[0].Name = %q, want broken", results[0].Name)
	}
}

func TestCommandTimesOut(t *testing.T) {
	ctx := NewContext("/opt/homebrew", nil, nil)
	ctx.Timeout = 50 * time.Millisecond

	_, err := ctx.Command("sleep", "5")
	if err == nil {
		t.Fatal("Command() should fail when the probe exceeds the timeout")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("Command() error = %v, want a timeout error", err)
	}
}

func TestCommandRuns(t *testing.T) {
	ctx := NewContext("/opt/homebrew", nil, nil)
	out, err := ctx.Command("echo", "ok")
	if err != nil {
		t.Fatalf("Command(echo) error = %v", err)
	}
	if strings.TrimSpace(string(out)) != "ok" {
		t.Errorf("Command(echo) = %q, want ok", out)
	}
}
