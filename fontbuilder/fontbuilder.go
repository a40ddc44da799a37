package fontbuilder

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Glyph 单个字形的输入输出载体
// 输入时携带 Buffer（SVG 原文）或 D（已有的路径数据），输出时 D 一定被填充
type Glyph struct {
	Name      string `json:"name"`
	Buffer    []byte `json:"-" gorm:"-"`
	Codepoint int    `json:"codepoint"`
	D         string `json:"d"`
}

// Options 编译选项
// WriteFiles 为 false 时只返回字形数据，不落盘
type Options struct {
	WriteFiles bool
	Dest       string
	FontName   string
}

type Builder interface {
	Build(icons []Glyph, opt Options) ([]Glyph, error)
}

// SVGBuilder 把 SVG 字形编译为 SVG 字体 + 样式表 + 清单文件
type SVGBuilder struct{}

func NewSVGBuilder() *SVGBuilder {
	return &SVGBuilder{}
}

// 自定义图标的私有区起始码位，与常见 iconfont 平台一致
const codepointBase = 0xE600

func (b *SVGBuilder) Build(icons []Glyph, opt Options) ([]Glyph, error) {
	next := codepointBase
	for _, g := range icons {
		if g.Codepoint >= next {
			next = g.Codepoint + 1
		}
	}

	out := make([]Glyph, 0, len(icons))
	for _, g := range icons {
		if g.D == "" {
			if len(g.Buffer) == 0 {
				return nil, fmt.Errorf("图标 %s 缺少 SVG 数据", g.Name)
			}
			d, err := ExtractPath(g.Buffer)
			if err != nil {
				return nil, fmt.Errorf("解析图标 %s 失败: %w", g.Name, err)
			}
			g.D = d
		}
		if g.Codepoint == 0 {
			g.Codepoint = next
			next++
		}
		g.Buffer = nil
		out = append(out, g)
	}

	if opt.WriteFiles {
		if opt.Dest == "" {
			return nil, errors.New("未指定字体输出目录")
		}
		if opt.FontName == "" {
			opt.FontName = "iconfont"
		}
		if err := writeFontFiles(out, opt); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// ExtractPath 从 SVG 文档中提取路径数据，多个 path 合并为一条
func ExtractPath(buf []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(buf))
	decoder.Strict = false
	// 不校验外部 DTD，部分绘图软件导出的 SVG 带有声明
	decoder.Entity = xml.HTMLEntity

	var parts []string
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "path" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local == "d" && strings.TrimSpace(attr.Value) != "" {
				parts = append(parts, strings.TrimSpace(attr.Value))
			}
		}
	}
	if len(parts) == 0 {
		return "", errors.New("SVG 中没有可用的 path 元素")
	}
	return strings.Join(parts, " "), nil
}
