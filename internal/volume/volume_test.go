package volume

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

const fullTable = `Filesystem    512-blocks      Used Available Capacity  Mounted on
/dev/disk3s1s1 965595304  21334240 330004024     7%    /
devfs                391       391         0   100%    /dev
/dev/disk3s5   965595304 609084112 330004024    65%    /System/Volumes/Data
map auto_home          0         0         0   100%    /System/Volumes/Data/home
/dev/disk5s1   976101344 612400192 363701152    63%    /Volumes/data
`

// fakeDF returns the full table for unscoped queries and a per-path
// single-line table for scoped ones.
func fakeDF(scoped map[string]string) func(context.Context, ...string) ([]byte, error) {
	return func(_ context.Context, args ...string) ([]byte, error) {
		if len(args) == 0 {
			return []byte(fullTable), nil
		}
		line, ok := scoped[args[0]]
		if !ok {
			return nil, errors.New("df: no such file or directory")
		}
		return []byte("Filesystem 512-blocks Used Available Capacity Mounted on\n" + line + "\n"), nil
	}
}

func newTestResolver(scoped map[string]string) *Resolver {
	r := New(time.Second)
	r.runDF = fakeDF(scoped)
	return r
}

func TestParseMounts(t *testing.T) {
	mounts := parseMounts([]byte(fullTable))

	wantPaths := []string{"/", "/dev", "/System/Volumes/Data", "/System/Volumes/Data/home", "/Volumes/data"}
	if len(mounts) != len(wantPaths) {
		t.Fatalf("parseMounts() returned %d mounts, want %d", len(mounts), len(wantPaths))
	}
	for i, want := range wantPaths {
		if mounts[i].Path != want {
			t.Errorf("mounts[%d].Path = %q, want %q", i, mounts[i].Path, want)
		}
	}

	// The header line must not survive parsing, and devices with spaces
	// must keep their mountpoint intact.
	if mounts[3].Device != "map auto_home" {
		t.Errorf("mounts[3].Device = %q, want %q", mounts[3].Device, "map auto_home")
	}
}

func TestParseMountsSpacesInMountpoint(t *testing.T) {
	out := "/dev/disk6s1 1000 500 500 50% /Volumes/My Backup Disk\n"
	mounts := parseMounts([]byte(out))
	if len(mounts) != 1 {
		t.Fatalf("parseMounts() returned %d mounts, want 1", len(mounts))
	}
	if mounts[0].Path != "/Volumes/My Backup Disk" {
		t.Errorf("Path = %q, want %q", mounts[0].Path, "/Volumes/My Backup Disk")
	}
}

func TestWhichVolume(t *testing.T) {
	r := newTestResolver(map[string]string{
		"/Volumes/data/x": "/dev/disk5s1   976101344 612400192 363701152    63%    /Volumes/data",
		"/tmp/x":          "/dev/disk3s1s1 965595304  21334240 330004024     7%    /",
	})

	if got := r.WhichVolume(context.Background(), "/Volumes/data/x"); got != 4 {
		t.Errorf("WhichVolume(/Volumes/data/x) = %d, want 4", got)
	}
	if got := r.WhichVolume(context.Background(), "/tmp/x"); got != 0 {
		t.Errorf("WhichVolume(/tmp/x) = %d, want 0", got)
	}
}

func TestWhichVolumeSamePass(t *testing.T) {
	scopedLine := "/dev/disk5s1   976101344 612400192 363701152    63%    /Volumes/data"
	r := newTestResolver(map[string]string{
		"/Volumes/data/a": scopedLine,
		"/Volumes/data/b": scopedLine,
	})

	a := r.WhichVolume(context.Background(), "/Volumes/data/a")
	b := r.WhichVolume(context.Background(), "/Volumes/data/b")
	if a == NotFound || a != b {
		t.Errorf("paths under one mount resolved to %d and %d, want equal non-sentinel indices", a, b)
	}
}

func TestWhichVolumeNonexistentPath(t *testing.T) {
	r := newTestResolver(map[string]string{})
	if got := r.WhichVolume(context.Background(), "/no/such/path"); got != NotFound {
		t.Errorf("WhichVolume(nonexistent) = %d, want NotFound", got)
	}
}

func TestWhichVolumeUnmountedBetweenQueries(t *testing.T) {
	// The scoped query answers, but the mountpoint is absent from the
	// full table (volume ejected between the two calls).
	r := newTestResolver(map[string]string{
		"/Volumes/gone/x": "/dev/disk9s1 1000 500 500 50% /Volumes/gone",
	})
	if got := r.WhichVolume(context.Background(), "/Volumes/gone/x"); got != NotFound {
		t.Errorf("WhichVolume(unmounted) = %d, want NotFound", got)
	}
}

func TestMountsDFUnavailable(t *testing.T) {
	r := New(time.Second)
	r.runDF = func(context.Context, ...string) ([]byte, error) {
		return nil, errors.New("exec: \"df\": executable file not found in $PATH")
	}
	if got := r.Mounts(context.Background()); len(got) != 0 {
		t.Errorf("Mounts() with df unavailable = %v, want empty", got)
	}
	if got := r.WhichVolume(context.Background(), "/"); got != NotFound {
		t.Errorf("WhichVolume() with df unavailable = %d, want NotFound", got)
	}
}

func TestWhichVolumeTimeout(t *testing.T) {
	r := New(10 * time.Millisecond)
	r.runDF = func(ctx context.Context, args ...string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if got := r.WhichVolume(context.Background(), "/tmp"); got != NotFound {
		t.Errorf("WhichVolume() after timeout = %d, want NotFound", got)
	}
}

func TestParseMountsSkipsHeaderOnly(t *testing.T) {
	out := "Filesystem 512-blocks Used Available Capacity Mounted on\n"
	if mounts := parseMounts([]byte(out)); len(mounts) != 0 {
		t.Errorf("parseMounts(header only) = %v, want empty", mounts)
	}
	if !strings.HasPrefix(fullTable, "Filesystem") {
		t.Fatal("fixture must start with a df header")
	}
}
