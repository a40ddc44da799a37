package services

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iconhive/IconHive/models"
)

func writeTestZip(t *testing.T, dir string, files map[string]string) string {
	t.Helper()
	archivePath := filepath.Join(dir, "icons.zip")
	f, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	defer f.Close()
	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("create entry: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("write entry: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return archivePath
}

func TestUploadIconPack(t *testing.T) {
	svc := newTestIconService(t)
	dir := t.TempDir()
	archivePath := writeTestZip(t, dir, map[string]string{
		"icons/首页.svg":    sampleSVG,
		"icons/close.svg": sampleSVG,
		"readme.txt":      "not an icon",
	})

	count, err := svc.UploadIconPack(archivePath, 5)
	if err != nil {
		t.Fatalf("upload pack: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	var icons []models.Icon
	if err := svc.DB.Order("name").Find(&icons).Error; err != nil {
		t.Fatalf("load icons: %v", err)
	}
	if len(icons) != 2 {
		t.Fatalf("expected 2 icons, got %d", len(icons))
	}
	for _, icon := range icons {
		if icon.Status != models.IconStatusUploaded || icon.Uploader != 5 {
			t.Fatalf("unexpected icon %+v", icon)
		}
		if icon.Path == "" {
			t.Fatalf("icon %q missing path", icon.Name)
		}
	}
}

func TestUploadIconPackWithoutSVG(t *testing.T) {
	svc := newTestIconService(t)
	dir := t.TempDir()
	archivePath := writeTestZip(t, dir, map[string]string{
		"readme.txt": "nothing here",
	})

	_, err := svc.UploadIconPack(archivePath, 5)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
