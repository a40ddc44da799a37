package methods

import (
	"os"
	"path/filepath"
	"testing"
)

func TestZipFolderToAndUnpack(t *testing.T) {
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "sub"), os.ModePerm); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "font.css"), []byte("a{}"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(src, "sub", "图标.svg"), []byte("<svg/>"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out := filepath.Join(t.TempDir(), "out.zip")
	if err := ZipFolderTo(src, out); err != nil {
		t.Fatalf("zip: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "unpacked")
	if err := Unpack(out, dest); err != nil {
		t.Fatalf("unpack: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "font.css"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "a{}" {
		t.Fatalf("unexpected content %q", got)
	}
	if _, err := os.ReadFile(filepath.Join(dest, "sub", "图标.svg")); err != nil {
		t.Fatalf("nested file missing: %v", err)
	}
}

func TestUnpackRejectsUnknownFormat(t *testing.T) {
	src := filepath.Join(t.TempDir(), "icons.tar")
	if err := os.WriteFile(src, []byte("tar"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Unpack(src, t.TempDir()); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
