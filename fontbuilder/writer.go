package fontbuilder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// writeFontFiles 在目标目录落盘字体资产：
// <fontName>.svg SVG 字体、<fontName>.css 样式表、<fontName>.json 字形清单
func writeFontFiles(glyphs []Glyph, opt Options) error {
	if err := os.MkdirAll(opt.Dest, os.ModePerm); err != nil {
		return err
	}

	svg := buildSVGFont(glyphs, opt.FontName)
	if err := os.WriteFile(filepath.Join(opt.Dest, opt.FontName+".svg"), svg, 0644); err != nil {
		return err
	}

	css := buildCSS(glyphs, opt.FontName)
	if err := os.WriteFile(filepath.Join(opt.Dest, opt.FontName+".css"), css, 0644); err != nil {
		return err
	}

	manifest, err := json.MarshalIndent(map[string]interface{}{
		"fontName": opt.FontName,
		"glyphs":   glyphs,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(opt.Dest, opt.FontName+".json"), manifest, 0644)
}

func buildSVGFont(glyphs []Glyph, fontName string) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" standalone="no"?>` + "\n")
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg">` + "\n<defs>\n")
	fmt.Fprintf(&buf, `<font id="%s" horiz-adv-x="1024">`+"\n", escapeAttr(fontName))
	fmt.Fprintf(&buf, `<font-face font-family="%s" units-per-em="1024" ascent="896" descent="-128"/>`+"\n", escapeAttr(fontName))
	buf.WriteString("<missing-glyph/>\n")
	for _, g := range glyphs {
		fmt.Fprintf(&buf, `<glyph glyph-name="%s" unicode="&#x%x;" d="%s"/>`+"\n",
			escapeAttr(g.Name), g.Codepoint, escapeAttr(g.D))
	}
	buf.WriteString("</font>\n</defs>\n</svg>\n")
	return buf.Bytes()
}

func buildCSS(glyphs []Glyph, fontName string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "@font-face {\n  font-family: \"%s\";\n  src: url(\"%s.svg#%s\") format(\"svg\");\n}\n\n",
		fontName, fontName, fontName)
	fmt.Fprintf(&buf, ".%s {\n  font-family: \"%s\" !important;\n  font-style: normal;\n  -webkit-font-smoothing: antialiased;\n}\n\n",
		fontName, fontName)
	for _, g := range glyphs {
		fmt.Fprintf(&buf, ".icon-%s:before {\n  content: \"\\%x\";\n}\n\n", g.Name, g.Codepoint)
	}
	return buf.Bytes()
}

var attrReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeAttr(s string) string {
	return attrReplacer.Replace(s)
}
