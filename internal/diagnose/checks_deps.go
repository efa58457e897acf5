package diagnose

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blackwell-systems/brewdoctor/internal/deps"
)

// checkMissingDependencies reports installed formulae whose effective
// runtime dependencies have no installed version. Skipped when formula
// metadata could not be loaded.
func checkMissingDependencies(ctx *Context) (string, error) {
	if ctx.Meta == nil {
		return "", nil
	}

	missing := deps.New(ctx.Meta).ComputeMissing()
	if len(missing) == 0 {
		return "", nil
	}

	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("Some installed formulae are missing dependencies.\n")
	sb.WriteString("You should `brew install` the missing dependencies:\n\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "  %s: %s\n", name, strings.Join(missing[name], " "))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
