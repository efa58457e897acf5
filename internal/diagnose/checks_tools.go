package diagnose

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Formulae fetched from version control need at least this git.
const (
	minGitMajor = 2
	minGitMinor = 14
)

// checkGitInstalled probes for git. Homebrew can operate without it, but
// taps and HEAD installs will fail.
func checkGitInstalled(ctx *Context) (string, error) {
	if _, err := ctx.Command("git", "--version"); err != nil {
		return "Git could not be found in your PATH.\nHomebrew uses Git for taps and for version-controlled formulae.\nInstall it with:\n  brew install git", nil
	}
	return "", nil
}

// checkGitVersion warns about a git too old for shallow-clone fetches.
// Quietly passes when git is absent; checkGitInstalled already covers
// that case.
func checkGitVersion(ctx *Context) (string, error) {
	out, err := ctx.Command("git", "--version")
	if err != nil {
		return "", nil
	}

	major, minor, ok := parseGitVersion(string(out))
	if !ok {
		return "", nil
	}
	if major > minGitMajor || (major == minGitMajor && minor >= minGitMinor) {
		return "", nil
	}
	return fmt.Sprintf("An outdated version of Git was detected in your PATH.\nGit %d.%d or newer is required for Homebrew.\nPlease upgrade:\n  brew install git", minGitMajor, minGitMinor), nil
}

// parseGitVersion extracts major.minor from "git version 2.43.0" style
// output.
func parseGitVersion(out string) (major, minor int, ok bool) {
	fields := strings.Fields(out)
	if len(fields) < 3 {
		return 0, 0, false
	}
	parts := strings.Split(fields[2], ".")
	if len(parts) < 2 {
		return 0, 0, false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return major, minor, true
}

// checkBrokenSymlinks reports dangling symlinks in the prefix bin
// directory, usually left behind by a keg removed outside brew.
func checkBrokenSymlinks(ctx *Context) (string, error) {
	binDir := filepath.Join(ctx.Prefix, "bin")
	entries, err := os.ReadDir(binDir)
	if err != nil {
		return "", nil
	}

	var broken []string
	for _, entry := range entries {
		if entry.Type()&os.ModeSymlink == 0 {
			continue
		}
		full := filepath.Join(binDir, entry.Name())
		if _, err := os.Stat(full); err != nil {
			broken = append(broken, full)
		}
	}

	if len(broken) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("Broken symlinks were found. Remove them with `brew cleanup`:\n")
	for _, link := range broken {
		fmt.Fprintf(&sb, "  %s\n", link)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
