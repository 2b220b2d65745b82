// Package dsl 解析字段描述文件。
//
// 描述文件声明档案的字段分组，以及每个字段的标签、宽度与排版属性：
//
//	registry Archive v1 {
//	  section basic "基础信息" {
//	    field name "姓名:" width 25 required
//	    field currentAddress "现居住地:" width 100 full-width max-length 30
//	  }
//	}
//
// 字段之间以换行或分号分隔；支持 //、# 与 /* */ 注释。
package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)%?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[;{}]`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
		participle.UseLookahead(2),
	)
)

// Document 是描述文件的根节点。
type Document struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Name     string         `parser:"Newline* 'registry' @Ident"`
	Version  string         `parser:"@Ident"`
	Sections []*Section     `parser:"'{' Newline* ( @@ Newline* )* '}' Newline*"`
}

// Section 对应一个字段分组，字段按声明顺序保存。
type Section struct {
	Pos    lexer.Position `parser:"" json:"-"`
	ID     string         `parser:"'section' @Ident"`
	Title  Text           `parser:"@String"`
	Fields []*Field       `parser:"'{' ( Newline | ';' )* ( @@ ( Newline | ';' )* )* '}'"`
}

// Field 声明单个字段。
type Field struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"'field' @Ident"`
	Label Text           `parser:"@String"`
	Attrs []*Attr        `parser:"@@*"`
}

// Attr 是字段的一个属性，每次只有一个成员被设置。
type Attr struct {
	Pos       lexer.Position `parser:"" json:"-"`
	Width     *Percent       `parser:"  'width' @Number" json:"width,omitempty"`
	Kind      *string        `parser:"| 'kind' @Ident" json:"kind,omitempty"`
	MaxLength *int           `parser:"| 'max-length' @Number" json:"maxLength,omitempty"`
	Required  bool           `parser:"| @'required'" json:"required,omitempty"`
	FullWidth bool           `parser:"| @'full-width'" json:"fullWidth,omitempty"`
}

// Text 是去掉引号、处理过转义的字符串字面量。
type Text string

// Capture implements participle.Capture.
func (t *Text) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("dsl: 字符串缺少取值")
	}
	s, err := strconv.Unquote(values[0])
	if err != nil {
		return fmt.Errorf("dsl: 字符串 %s 无效: %w", values[0], err)
	}
	*t = Text(s)
	return nil
}

// Percent 是宽度百分比，可以写成 25 或 25%。
type Percent float64

// Capture implements participle.Capture.
func (p *Percent) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("dsl: 宽度缺少取值")
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(values[0], "%"), 64)
	if err != nil {
		return fmt.Errorf("dsl: 宽度 %q 无效: %w", values[0], err)
	}
	*p = Percent(v)
	return nil
}

// Parse 从 io.Reader 解析描述文件。
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString 解析字符串形式的描述文件。
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
