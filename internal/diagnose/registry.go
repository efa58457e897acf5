package diagnose

// Registry returns the built-in checks in their fixed run order. The
// order is part of the contract: check_brew_bin_in_path records PATH
// observations that check_system_bin_order and check_sbin_in_path read,
// so the list must not be reordered or run in parallel.
func Registry() []Check {
	return []Check{
		{Name: "check_brew_bin_in_path", Run: checkBrewBinInPath},
		{Name: "check_system_bin_order", Run: checkSystemBinOrder},
		{Name: "check_sbin_in_path", Run: checkSbinInPath},
		{Name: "check_for_stray_dylibs", Run: checkStrayDylibs},
		{Name: "check_for_stray_static_libs", Run: checkStrayStaticLibs},
		{Name: "check_for_stray_headers", Run: checkStrayHeaders},
		{Name: "check_for_stray_pcs", Run: checkStrayPCFiles},
		{Name: "check_for_broken_symlinks", Run: checkBrokenSymlinks},
		{Name: "check_missing_dependencies", Run: checkMissingDependencies},
		{Name: "check_cellar_volume", Run: checkCellarVolume},
		{Name: "check_tmpdir", Run: checkTmpdirEnv},
		{Name: "check_git_installed", Run: checkGitInstalled},
		{Name: "check_git_version", Run: checkGitVersion},
	}
}

// Filter removes disabled checks without disturbing the run order.
func Filter(checks []Check, disabled []string) []Check {
	if len(disabled) == 0 {
		return checks
	}
	off := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		off[name] = true
	}

	kept := make([]Check, 0, len(checks))
	for _, check := range checks {
		if !off[check.Name] {
			kept = append(kept, check)
		}
	}
	return kept
}
