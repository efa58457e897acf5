package brew

import "testing"

func TestTabWith(t *testing.T) {
	tab := Tab{UsedOptions: []string{"--with-libressl", "with-pcre2", "--HEAD", "--universal"}}

	tests := []struct {
		name string
		want bool
	}{
		{"libressl", true},
		{"pcre2", true},
		{"openssl", false},
		// Non-with options never select a dependency, even when one
		// shares their name.
		{"HEAD", false},
		{"universal", false},
	}

	for _, tt := range tests {
		if got := tab.With(tt.name); got != tt.want {
			t.Errorf("With(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTabWithEmpty(t *testing.T) {
	var tab Tab
	if tab.With("anything") {
		t.Error("empty tab should select nothing")
	}
}

func TestDepKindString(t *testing.T) {
	tests := []struct {
		kind DepKind
		want string
	}{
		{DepRequired, "required"},
		{DepBuild, "build"},
		{DepOptional, "optional"},
		{DepRecommended, "recommended"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("DepKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestFormulaInstalled(t *testing.T) {
	installed := &Formula{Name: "git", Racks: []string{"/opt/homebrew/Cellar/git/2.43.0"}}
	if !installed.Installed() {
		t.Error("formula with a rack should report installed")
	}

	empty := &Formula{Name: "ghost"}
	if empty.Installed() {
		t.Error("formula without racks should not report installed")
	}
}

func TestCatalogueLookupAndInstalled(t *testing.T) {
	formulae := []*Formula{
		{Name: "node", Racks: []string{"/opt/homebrew/Cellar/node/20.10.0"}},
		{Name: "git", Racks: []string{"/opt/homebrew/Cellar/git/2.43.0"}},
		{Name: "ghost"},
	}

	c := NewCatalogue(formulae)

	if _, ok := c.Lookup("git"); !ok {
		t.Error("Lookup(git) should succeed")
	}
	if _, ok := c.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}

	// Uninstalled formulae are resolvable but excluded from Installed().
	installed := c.Installed()
	if len(installed) != 2 {
		t.Fatalf("Installed() returned %d formulae, want 2", len(installed))
	}
	if installed[0].Name != "git" || installed[1].Name != "node" {
		t.Errorf("Installed() order = [%s %s], want [git node]", installed[0].Name, installed[1].Name)
	}
}
