package brew

import "sort"

// Catalogue implements Metadata over a fixed set of formulae.
type Catalogue struct {
	byName    map[string]*Formula
	installed []*Formula
}

// NewCatalogue builds a Catalogue from the given formulae. Formulae are
// indexed by name; the installed list preserves name order for
// deterministic iteration.
func NewCatalogue(formulae []*Formula) *Catalogue {
	c := &Catalogue{
		byName: make(map[string]*Formula, len(formulae)),
	}
	for _, f := range formulae {
		c.byName[f.Name] = f
	}
	for _, f := range formulae {
		if f.Installed() {
			c.installed = append(c.installed, f)
		}
	}
	sort.Slice(c.installed, func(i, j int) bool {
		return c.installed[i].Name < c.installed[j].Name
	})
	return c
}

// Installed returns every formula with at least one installed keg.
func (c *Catalogue) Installed() []*Formula {
	return c.installed
}

// Lookup resolves a formula by name.
func (c *Catalogue) Lookup(name string) (*Formula, bool) {
	f, ok := c.byName[name]
	return f, ok
}
