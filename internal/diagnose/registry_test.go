package diagnose

import "testing"

// The first PATH check records context observations that the next two
// consume; the registry must keep the writer ahead of its readers.
func TestRegistryOrdersPathObserverFirst(t *testing.T) {
	checks := Registry()
	if len(checks) < 3 {
		t.Fatalf("Registry() returned %d checks, want at least 3", len(checks))
	}

	want := []string{"check_brew_bin_in_path", "check_system_bin_order", "check_sbin_in_path"}
	for i, name := range want {
		if checks[i].Name != name {
			t.Errorf("checks[%d].Name = %q, want %q", i, checks[i].Name, name)
		}
	}
}

func TestRegistryNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, check := range Registry() {
		if seen[check.Name] {
			t.Errorf("duplicate check name %q", check.Name)
		}
		seen[check.Name] = true
		if check.Run == nil {
			t.Errorf("check %q has no Run function", check.Name)
		}
	}
}

func TestFilterKeepsOrder(t *testing.T) {
	checks := []Check{
		{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"},
	}

	kept := Filter(checks, []string{"b", "d"})

	want := []string{"a", "c"}
	if len(kept) != len(want) {
		t.Fatalf("Filter() kept %d checks, want %d", len(kept), len(want))
	}
	for i, name := range want {
		if kept[i].Name != name {
			t.Errorf("kept[%d].Name = %q, want %q", i, kept[i].Name, name)
		}
	}
}

func TestFilterNoDisabled(t *testing.T) {
	checks := []Check{{Name: "a"}, {Name: "b"}}
	if kept := Filter(checks, nil); len(kept) != 2 {
		t.Errorf("Filter() with no disabled list kept %d checks, want 2", len(kept))
	}
}
