package font

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryLoadDirectoryAndLookup(t *testing.T) {
	dir := t.TempDir()
	src := `0x41:
    X
`
	if err := os.WriteFile(filepath.Join(dir, "IBM VGA.yaff"), []byte(src), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	r := NewRegistry()
	if err := r.LoadDirectory(dir); err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	f, ok := r.Lookup("IBM VGA")
	if !ok {
		t.Fatalf("expected to find font registered under its filename stem")
	}
	if f.Len() != 1 {
		t.Fatalf("expected 1 glyph, got %d", f.Len())
	}
}

func TestRegistrySkipsUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "not-a-font.txt"), []byte("garbage"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	r := NewRegistry()
	if err := r.LoadDirectory(dir); err != nil {
		t.Fatalf("LoadDirectory should not fail on an unrecognized file: %v", err)
	}
	if len(r.Names()) != 0 {
		t.Fatalf("expected no fonts registered, got %v", r.Names())
	}
}
