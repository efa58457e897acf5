package diagnose

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/brewdoctor/internal/scanner"
)

// Known-harmless files commonly dropped into the prefix by installers
// outside Homebrew's control (FUSE variants, Tcl/Tk, NTFS drivers).
var (
	strayDylibAllow = []string{
		"libfuse.2.dylib",
		"libfuse_ino64.2.dylib",
		"libmacfuse_i32.2.dylib",
		"libmacfuse_i64.2.dylib",
		"libosxfuse_i32.2.dylib",
		"libosxfuse_i64.2.dylib",
		"libosxfuse.2.dylib",
		"libtcl8.6.dylib",
		"libtk8.6.dylib",
		"libntfs-3g.*.dylib",
		"libntfs.*.dylib",
		"libublio.*.dylib",
	}

	strayStaticLibAllow = []string{
		"libntfs-3g.a",
		"libntfs.a",
		"libublio.a",
		"libsecurity_agent_client.a",
		"libsecurity_agent_server.a",
	}

	strayHeaderAllow = []string{
		"fuse.h",
		"fuse/**",
		"macfuse/**",
		"osxfuse/**",
		"ntfs/**",
		"ntfs-3g/**",
	}

	strayPCAllow = []string{
		"fuse.pc",
		"macfuse.pc",
		"osxfuse.pc",
		"libntfs-3g.pc",
		"libublio.pc",
	}
)

// strayAdvisory formats the shared advisory shape for the stray-file
// checks: what was found, why it matters, and the offending paths.
func strayAdvisory(kind, dir string, files []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Unbrewed %s were found in %s.\n", kind, dir)
	sb.WriteString("If you didn't put them there on purpose they could cause problems when\nbuilding Homebrew formulae, and may need to be deleted.\n\n")
	fmt.Fprintf(&sb, "Unexpected %s:\n", kind)
	for _, f := range files {
		fmt.Fprintf(&sb, "  %s\n", f)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func runStrayCheck(ctx *Context, subdir, pattern, kind string, allow []string) (string, error) {
	dir := filepath.Join(ctx.Prefix, subdir)
	files, err := scanner.StrayFiles(dir, pattern, append(allow, ctx.AllowPatterns...))
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", nil
	}
	return strayAdvisory(kind, dir, files), nil
}

func checkStrayDylibs(ctx *Context) (string, error) {
	return runStrayCheck(ctx, "lib", "*.dylib", "dylibs", strayDylibAllow)
}

func checkStrayStaticLibs(ctx *Context) (string, error) {
	return runStrayCheck(ctx, "lib", "*.a", "static libraries", strayStaticLibAllow)
}

func checkStrayHeaders(ctx *Context) (string, error) {
	return runStrayCheck(ctx, "include", "**/*.h", "header files", strayHeaderAllow)
}

func checkStrayPCFiles(ctx *Context) (string, error) {
	return runStrayCheck(ctx, filepath.Join("lib", "pkgconfig"), "*.pc", ".pc files", strayPCAllow)
}
