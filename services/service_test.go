package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/iconhive/IconHive/fontbuilder"
	"github.com/iconhive/IconHive/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "iconhive_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.Icon{},
		&models.Repo{},
		&models.Project{},
		&models.RepoVersion{},
		&models.ProjectVersion{},
		&models.User{},
		&models.Log{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestIconService(t *testing.T) *IconService {
	t.Helper()
	return &IconService{
		DB:      openTestDB(t),
		Builder: fontbuilder.NewSVGBuilder(),
	}
}

// fakeBuilder 记录调用情况，不做真实编译
type fakeBuilder struct {
	calls   int
	glyphs  []fontbuilder.Glyph
	lastOpt fontbuilder.Options
}

func (b *fakeBuilder) Build(icons []fontbuilder.Glyph, opt fontbuilder.Options) ([]fontbuilder.Glyph, error) {
	b.calls++
	b.glyphs = icons
	b.lastOpt = opt
	if opt.WriteFiles {
		if err := os.MkdirAll(opt.Dest, os.ModePerm); err != nil {
			return nil, err
		}
	}
	return icons, nil
}

func uploadFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("icon", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	return form.File["icon"][0]
}

const sampleSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1024 1024"><path d="M512 0L1024 512L512 1024L0 512Z"/></svg>`

func countLogs(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Log{}).Count(&n).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	return n
}
