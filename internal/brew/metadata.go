package brew

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// brewInfoOutput represents the structure of `brew info --json=v2` output.
type brewInfoOutput struct {
	Formulae []brewFormulaInfo `json:"formulae"`
}

// brewFormulaInfo represents one formula in JSON output.
type brewFormulaInfo struct {
	Name                    string                 `json:"name"`
	FullName                string                 `json:"full_name"`
	KegOnly                 bool                   `json:"keg_only"`
	Dependencies            []string               `json:"dependencies"`
	BuildDependencies       []string               `json:"build_dependencies"`
	OptionalDependencies    []string               `json:"optional_dependencies"`
	RecommendedDependencies []string               `json:"recommended_dependencies"`
	Installed               []brewInstalledVersion `json:"installed"`
}

// brewInstalledVersion represents one installed keg of a formula.
type brewInstalledVersion struct {
	Version     string   `json:"version"`
	UsedOptions []string `json:"used_options"`
}

// Prefix returns the Homebrew installation prefix.
func Prefix(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "brew", "--prefix")
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("brew --prefix failed: %w (stderr: %s)", err, string(exitErr.Stderr))
		}
		return "", fmt.Errorf("brew --prefix failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// LoadInstalled shells out to brew and builds a Catalogue of all installed
// formulae, including dependency edges by kind and each keg's build-options
// record.
func LoadInstalled(ctx context.Context) (*Catalogue, error) {
	prefix, err := Prefix(ctx)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "brew", "info", "--json=v2", "--installed")
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("brew info failed: %w (stderr: %s)", err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("brew info failed: %w", err)
	}

	formulae, err := parseInfo(output, prefix)
	if err != nil {
		return nil, err
	}
	return NewCatalogue(formulae), nil
}

// parseInfo decodes `brew info --json=v2` output into formulae. The prefix
// is used to reconstruct rack paths for installed kegs.
func parseInfo(data []byte, prefix string) ([]*Formula, error) {
	var info brewInfoOutput
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse brew info output: %w", err)
	}

	formulae := make([]*Formula, 0, len(info.Formulae))
	for _, fi := range info.Formulae {
		f := &Formula{
			Name:    fi.Name,
			KegOnly: fi.KegOnly,
		}

		for _, iv := range fi.Installed {
			f.Racks = append(f.Racks, filepath.Join(prefix, "Cellar", fi.Name, iv.Version))
			f.Tab.UsedOptions = append(f.Tab.UsedOptions, iv.UsedOptions...)
		}

		// The runtime dependency list repeats recommended dependencies,
		// and a name can appear as both a build and a runtime dependency.
		// Assign kinds most-specific first, runtime before build, and skip
		// duplicates so each edge keeps the strongest kind.
		seen := make(map[string]bool)
		addEdges := func(names []string, kind DepKind) {
			for _, name := range names {
				if seen[name] {
					continue
				}
				seen[name] = true
				f.Deps = append(f.Deps, DependencyEdge{Name: name, Kind: kind})
			}
		}
		addEdges(fi.RecommendedDependencies, DepRecommended)
		addEdges(fi.OptionalDependencies, DepOptional)
		addEdges(fi.Dependencies, DepRequired)
		addEdges(fi.BuildDependencies, DepBuild)

		formulae = append(formulae, f)
	}

	return formulae, nil
}
