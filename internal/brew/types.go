package brew

import "strings"

// DepKind classifies a declared dependency edge. It is a closed set:
// every switch over it must handle all four kinds.
type DepKind int

const (
	DepRequired DepKind = iota
	DepBuild
	DepOptional
	DepRecommended
)

// String returns the Homebrew spelling of the kind.
func (k DepKind) String() string {
	switch k {
	case DepRequired:
		return "required"
	case DepBuild:
		return "build"
	case DepOptional:
		return "optional"
	case DepRecommended:
		return "recommended"
	}
	return "unknown"
}

// DependencyEdge is one declared dependency of a formula.
type DependencyEdge struct {
	Name string
	Kind DepKind
}

// Tab is the persisted build-options record of an installed formula.
// It answers whether an optional or recommended dependency was selected
// when the keg was built.
type Tab struct {
	UsedOptions []string
}

// With reports whether the build selected the named dependency. Only
// "--with-<name>" (or "with-<name>") options select a dependency; other
// options that happen to share its name, like "--HEAD" for a dependency
// named HEAD, do not.
func (t Tab) With(name string) bool {
	for _, opt := range t.UsedOptions {
		if strings.TrimPrefix(opt, "--") == "with-"+name {
			return true
		}
	}
	return false
}

// Formula is one installable unit: a name, its declared dependency
// edges, and zero or more installed version prefixes (its rack).
type Formula struct {
	Name    string
	Racks   []string // installed version prefixes under Cellar/<name>/
	KegOnly bool
	Deps    []DependencyEdge
	Tab     Tab
}

// Installed reports whether at least one version prefix exists.
func (f *Formula) Installed() bool {
	return len(f.Racks) > 0
}

// Metadata is the read-only view of the formula catalogue the diagnostic
// core consumes.
type Metadata interface {
	// Installed returns every formula with at least one installed keg.
	Installed() []*Formula
	// Lookup resolves a dependency reference to a known formula.
	Lookup(name string) (*Formula, bool)
}
