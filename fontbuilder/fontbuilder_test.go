package fontbuilder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const twoPathSVG = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1024 1024">
  <path d="M0 0L10 10"/>
  <g><path d="M20 20L30 30"/></g>
</svg>`

func TestExtractPathMergesPaths(t *testing.T) {
	d, err := ExtractPath([]byte(twoPathSVG))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if d != "M0 0L10 10 M20 20L30 30" {
		t.Fatalf("unexpected path data %q", d)
	}
}

func TestExtractPathRejectsEmptySVG(t *testing.T) {
	if _, err := ExtractPath([]byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)); err == nil {
		t.Fatalf("expected error for svg without paths")
	}
}

func TestBuildAssignsCodepoints(t *testing.T) {
	builder := NewSVGBuilder()
	glyphs := []Glyph{
		{Name: "a", Buffer: []byte(twoPathSVG)},
		{Name: "b", D: "M1 1", Codepoint: 0xE700},
		{Name: "c", Buffer: []byte(twoPathSVG)},
	}

	out, err := builder.Build(glyphs, Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if out[0].D == "" || out[2].D == "" {
		t.Fatalf("paths not extracted: %+v", out)
	}
	// 已有码位保留，新码位从已分配的最大值之后递增
	if out[1].Codepoint != 0xE700 {
		t.Fatalf("existing codepoint must be kept, got %x", out[1].Codepoint)
	}
	if out[0].Codepoint != 0xE701 || out[2].Codepoint != 0xE702 {
		t.Fatalf("unexpected codepoints %x %x", out[0].Codepoint, out[2].Codepoint)
	}
}

func TestBuildWritesFontFiles(t *testing.T) {
	builder := NewSVGBuilder()
	dest := filepath.Join(t.TempDir(), "out")
	glyphs := []Glyph{{Name: "home", D: "M0 0L10 10", Codepoint: 0xE600}}

	if _, err := builder.Build(glyphs, Options{WriteFiles: true, Dest: dest, FontName: "myfont"}); err != nil {
		t.Fatalf("build: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dest, "myfont.svg"))
	if err != nil {
		t.Fatalf("read svg font: %v", err)
	}
	if !strings.Contains(string(svg), `glyph-name="home"`) || !strings.Contains(string(svg), "&#xe600;") {
		t.Fatalf("svg font missing glyph: %s", svg)
	}

	css, err := os.ReadFile(filepath.Join(dest, "myfont.css"))
	if err != nil {
		t.Fatalf("read css: %v", err)
	}
	if !strings.Contains(string(css), ".icon-home:before") || !strings.Contains(string(css), `"\e600"`) {
		t.Fatalf("css missing rule: %s", css)
	}

	if _, err := os.Stat(filepath.Join(dest, "myfont.json")); err != nil {
		t.Fatalf("manifest missing: %v", err)
	}
}

func TestBuildRequiresDest(t *testing.T) {
	builder := NewSVGBuilder()
	if _, err := builder.Build([]Glyph{{Name: "a", D: "M0 0"}}, Options{WriteFiles: true}); err == nil {
		t.Fatalf("expected error when dest missing")
	}
}
