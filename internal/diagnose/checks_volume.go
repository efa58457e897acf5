package diagnose

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/brewdoctor/internal/volume"
)

// checkCellarVolume warns when the Cellar and the temporary directory
// live on different volumes. Installs stage downloads in the temporary
// directory and move them into the Cellar; across volumes that move is a
// copy, which is slower and not atomic. An unknown volume on either side
// means "skip", never "different".
func checkCellarVolume(ctx *Context) (string, error) {
	if ctx.Volumes == nil {
		return "", nil
	}

	cellar := filepath.Join(ctx.Prefix, "Cellar")
	tmp := os.TempDir()

	bg := context.Background()
	cellarVol := ctx.Volumes.WhichVolume(bg, cellar)
	tmpVol := ctx.Volumes.WhichVolume(bg, tmp)
	if cellarVol == volume.NotFound || tmpVol == volume.NotFound {
		return "", nil
	}

	if cellarVol != tmpVol {
		return fmt.Sprintf("Your Cellar (%s) and TEMP (%s) are on different volumes.\nDownloads staged in TEMP cannot be moved atomically into the Cellar,\nso installs will be slower and may leave partial kegs if interrupted.\nSet HOMEBREW_TEMP to a directory on the same volume as your Cellar.", cellar, tmp), nil
	}
	return "", nil
}

// checkTmpdirEnv warns when TMPDIR points at a directory that does not
// exist; builds that honor it will fail at unpack time.
func checkTmpdirEnv(ctx *Context) (string, error) {
	tmpdir := ctx.Getenv("TMPDIR")
	if tmpdir == "" {
		return "", nil
	}
	info, err := os.Stat(tmpdir)
	if err == nil && info.IsDir() {
		return "", nil
	}
	return fmt.Sprintf("TMPDIR is set to %q but that is not an existing directory.\nUnset TMPDIR or point it at a real directory.", tmpdir), nil
}
