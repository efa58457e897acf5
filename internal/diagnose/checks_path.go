package diagnose

import (
	"fmt"
	"os"
	"path/filepath"
)

// checkBrewBinInPath scans PATH once and records where the Homebrew bin
// directory sits relative to /usr/bin. The two PATH checks that run after
// it consume the recorded observations instead of rescanning.
func checkBrewBinInPath(ctx *Context) (string, error) {
	brewBin := filepath.Join(ctx.Prefix, "bin")
	dirs := filepath.SplitList(ctx.Getenv("PATH"))

	brewIdx, systemIdx := -1, -1
	for i, dir := range dirs {
		switch filepath.Clean(dir) {
		case brewBin:
			if brewIdx == -1 {
				brewIdx = i
			}
		case "/usr/bin":
			if systemIdx == -1 {
				systemIdx = i
			}
		}
	}

	ctx.SawBrewBin = brewIdx != -1
	ctx.BrewBinBeforeSystem = brewIdx != -1 && (systemIdx == -1 || brewIdx < systemIdx)

	if brewIdx == -1 {
		return fmt.Sprintf("%s is not in your PATH.\nBrewed binaries will not be found until you amend your shell profile:\n  export PATH=%q:$PATH", brewBin, brewBin), nil
	}
	return "", nil
}

// checkSystemBinOrder warns when /usr/bin shadows the Homebrew bin
// directory. Reads the observations checkBrewBinInPath recorded earlier
// in the same run.
func checkSystemBinOrder(ctx *Context) (string, error) {
	if !ctx.SawBrewBin || ctx.BrewBinBeforeSystem {
		return "", nil
	}
	brewBin := filepath.Join(ctx.Prefix, "bin")
	return fmt.Sprintf("/usr/bin occurs before %s in your PATH.\nThis means that system-provided programs will be used instead of those\nprovided by Homebrew, which can cause brewed builds to fail in subtle ways.\nMove %s earlier in your PATH.", brewBin, brewBin), nil
}

// checkSbinInPath warns when the prefix's sbin directory has contents but
// is absent from PATH. It scans PATH itself; unlike checkSystemBinOrder
// it does not depend on the recorded observations.
func checkSbinInPath(ctx *Context) (string, error) {
	sbin := filepath.Join(ctx.Prefix, "sbin")
	entries, err := os.ReadDir(sbin)
	if err != nil || len(entries) == 0 {
		return "", nil
	}

	for _, dir := range filepath.SplitList(ctx.Getenv("PATH")) {
		if filepath.Clean(dir) == sbin {
			return "", nil
		}
	}

	return fmt.Sprintf("%s is not in your PATH but contains %d program(s).\nConsider amending your shell profile:\n  export PATH=%q:$PATH", sbin, len(entries), sbin), nil
}
