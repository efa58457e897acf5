// Package deps computes which declared dependencies of installed formulae
// are effectively missing, honoring per-kind pruning rules.
package deps

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/blackwell-systems/brewdoctor/internal/brew"
)

// Action is the traversal-control decision for one dependency edge.
type Action int

const (
	// Descend follows the edge and visits its subtree.
	Descend Action = iota
	// SkipSubtree ignores the edge entirely.
	SkipSubtree
)

// Prune decides whether the walker follows an edge. It is a pure function
// of the edge kind and the dependent's build-options record: build edges
// are never relevant at runtime, optional and recommended edges count only
// when the dependent's keg was built with them, required edges always
// count.
func Prune(edge brew.DependencyEdge, tab brew.Tab) Action {
	switch edge.Kind {
	case brew.DepRequired:
		return Descend
	case brew.DepBuild:
		return SkipSubtree
	case brew.DepOptional, brew.DepRecommended:
		if tab.With(edge.Name) {
			return Descend
		}
		return SkipSubtree
	}
	// DepKind is closed; an unknown kind means corrupted metadata, which
	// is safest to ignore.
	return SkipSubtree
}

// memoSize bounds the per-run traversal cache. Real installations rarely
// exceed a few hundred formulae.
const memoSize = 1024

// Analyzer walks each installed formula's pruned dependency graph and
// reports dependencies with no installed satisfying version. It is
// read-only over the metadata it is given.
type Analyzer struct {
	meta brew.Metadata
	memo *lru.Cache[string, []string]
}

// New creates an Analyzer over the given metadata view. Per-formula
// traversal results are memoized for the lifetime of the Analyzer, so one
// Analyzer should not outlive the metadata snapshot it was built from.
func New(meta brew.Metadata) *Analyzer {
	memo, _ := lru.New[string, []string](memoSize)
	return &Analyzer{meta: meta, memo: memo}
}

// MissingFor returns the missing effective dependencies of f, sorted by
// name. A dependency is missing when its reference does not resolve to a
// known formula, or when it resolves to one with no installed version
// prefix.
func (a *Analyzer) MissingFor(f *brew.Formula) []string {
	if cached, ok := a.memo.Get(f.Name); ok {
		return cached
	}

	visited := map[string]bool{f.Name: true}
	missing := make(map[string]bool)
	a.walk(f, visited, missing)

	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	sort.Strings(names)

	a.memo.Add(f.Name, names)
	return names
}

// walk descends f's edges, applying the prune decision before each one.
// Pruned subtrees are never visited.
func (a *Analyzer) walk(f *brew.Formula, visited, missing map[string]bool) {
	for _, edge := range f.Deps {
		if Prune(edge, f.Tab) == SkipSubtree {
			continue
		}
		if visited[edge.Name] {
			continue
		}
		visited[edge.Name] = true

		dep, ok := a.meta.Lookup(edge.Name)
		if !ok {
			// An unresolved reference is exactly the failure this
			// analyzer exists to surface.
			missing[edge.Name] = true
			continue
		}
		if !dep.Installed() {
			missing[edge.Name] = true
		}
		a.walk(dep, visited, missing)
	}
}

// ComputeMissing runs MissingFor over every installed formula and returns
// a map from formula name to its missing-dependency set. Formulae with
// nothing missing are omitted.
func (a *Analyzer) ComputeMissing() map[string][]string {
	result := make(map[string][]string)
	for _, f := range a.meta.Installed() {
		if missing := a.MissingFor(f); len(missing) > 0 {
			result[f.Name] = missing
		}
	}
	return result
}
