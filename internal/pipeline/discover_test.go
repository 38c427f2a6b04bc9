package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/heic2jpg/internal/config"
)

func TestDiscover_DirectoryScan(t *testing.T) {
	dir := t.TempDir()
	writeHeic(t, dir, "b.heic", "")
	writeHeic(t, dir, "a.HEIC", "")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeHeic(t, sub, "nested.heic", "")

	d := Discover([]string{dir}, config.InputExt)
	if len(d.Files) != 2 {
		t.Fatalf("got %d files %v, want 2", len(d.Files), d.Files)
	}
	if filepath.Base(d.Files[0]) != "a.HEIC" || filepath.Base(d.Files[1]) != "b.heic" {
		t.Errorf("unexpected order or contents: %v", d.Files)
	}
	if len(d.Missing) != 0 || len(d.NotInput) != 0 {
		t.Errorf("unexpected missing=%v notInput=%v", d.Missing, d.NotInput)
	}
}

func TestDiscover_DedupDirAndFile(t *testing.T) {
	dir := t.TempDir()
	a := writeHeic(t, dir, "a.heic", "")
	writeHeic(t, dir, "b.heic", "")

	d := Discover([]string{dir, a, dir}, config.InputExt)
	if len(d.Files) != 2 {
		t.Errorf("got %d files %v, want 2 after dedup", len(d.Files), d.Files)
	}
}

func TestDiscover_MissingAndNotInput(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "readme.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := Discover([]string{filepath.Join(dir, "gone.heic"), txt}, config.InputExt)
	if len(d.Files) != 0 {
		t.Errorf("unexpected files: %v", d.Files)
	}
	if len(d.Missing) != 1 || filepath.Base(d.Missing[0]) != "gone.heic" {
		t.Errorf("missing = %v", d.Missing)
	}
	if len(d.NotInput) != 1 || d.NotInput[0] != txt {
		t.Errorf("notInput = %v", d.NotInput)
	}
}

func TestDiscover_NoPathsScansCwd(t *testing.T) {
	dir := t.TempDir()
	writeHeic(t, dir, "a.heic", "")
	t.Chdir(dir)

	d := Discover(nil, config.InputExt)
	if len(d.Files) != 1 || filepath.Base(d.Files[0]) != "a.heic" {
		t.Errorf("files = %v, want a.heic from cwd", d.Files)
	}
}

func TestDiscover_UnreadableDirReported(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	root := t.TempDir()
	good := filepath.Join(root, "good")
	bad := filepath.Join(root, "bad")
	for _, d := range []string{good, bad} {
		if err := os.Mkdir(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	writeHeic(t, good, "a.heic", "")
	if err := os.Chmod(bad, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(bad, 0o755) })

	d := Discover([]string{good, bad}, config.InputExt)
	if len(d.Unreadable) != 1 || d.Unreadable[0] != bad {
		t.Errorf("Unreadable = %v, want [%s]", d.Unreadable, bad)
	}
	if len(d.Files) != 1 {
		t.Errorf("readable directory should still be scanned: %v", d.Files)
	}
}
