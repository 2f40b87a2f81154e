// Package document builds the renderer-neutral content of the offer and
// contract PDFs.
package document

import (
	"fmt"
	"strings"
)

type Variant string

const (
	VariantOffer            Variant = "offer"
	VariantContract         Variant = "contract"
	VariantApprovalContract Variant = "approval_contract"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
	AlignJustify
)

type Color struct{ R, G, B int }

var (
	Black     = Color{0, 0, 0}
	White     = Color{255, 255, 255}
	Red       = Color{200, 0, 0}
	Grey      = Color{0x6e, 0x6e, 0x6e}
	LightGrey = Color{211, 211, 211}
)

// Run is a span of text sharing one style.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Color     *Color
}

// Block is one element of the document flow.
type Block interface{ isBlock() }

type Heading struct {
	Text      string
	Size      float64
	Align     Align
	Underline bool
}

type Paragraph struct {
	Runs  []Run
	Align Align
	Size  float64
}

// Band is a full-width filled bar holding a single line of text.
type Band struct {
	Text       string
	Background Color
	Foreground Color
	Align      Align
}

type Cell struct {
	Text string
	Bold bool
}

// Table widths are relative weights scaled to the printable width.
type Table struct {
	Widths     []float64
	Header     []Cell
	Rows       [][]Cell
	Grid       bool
	HeaderFill Color
	Align      Align
	Size       float64
}

// KeyValue renders borderless "KEY : value" lines.
type KeyValue struct {
	Rows [][2]string
}

type List struct {
	Bullet string
	Items  [][]Run
}

// Signature is a two-column signing area; Image, when set, sits under Right.
type Signature struct {
	Left  []string
	Right []string
	Image *Image
}

type Image struct {
	Name  string
	Data  []byte
	Width float64 // mm, 0 means full page width
	Align Align
}

type Spacer struct{ Height float64 }

type PageBreak struct{}

func (Heading) isBlock()   {}
func (Paragraph) isBlock() {}
func (Band) isBlock()      {}
func (Table) isBlock()     {}
func (KeyValue) isBlock()  {}
func (List) isBlock()      {}
func (Signature) isBlock() {}
func (Image) isBlock()     {}
func (Spacer) isBlock()    {}
func (PageBreak) isBlock() {}

type Document struct {
	Variant  Variant
	Title    string
	FileName string
	Blocks   []Block
	// Footer is drawn at the bottom of every page.
	Footer   *Image
	Warnings []string
}

func (d *Document) add(blocks ...Block) {
	d.Blocks = append(d.Blocks, blocks...)
}

func (d *Document) warnf(format string, args ...any) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}

// Text concatenates every piece of text in the flow, one block per line.
// Used for previews and assertions.
func (d *Document) Text() string {
	var sb strings.Builder
	line := func(s string) {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}
	runs := func(rs []Run) string {
		var b strings.Builder
		for _, r := range rs {
			b.WriteString(r.Text)
		}
		return b.String()
	}
	cells := func(cs []Cell) string {
		parts := make([]string, len(cs))
		for i, c := range cs {
			parts[i] = c.Text
		}
		return strings.Join(parts, " | ")
	}
	for _, b := range d.Blocks {
		switch v := b.(type) {
		case Heading:
			line(v.Text)
		case Paragraph:
			line(runs(v.Runs))
		case Band:
			line(v.Text)
		case Table:
			if len(v.Header) > 0 {
				line(cells(v.Header))
			}
			for _, r := range v.Rows {
				line(cells(r))
			}
		case KeyValue:
			for _, r := range v.Rows {
				line(r[0] + " " + r[1])
			}
		case List:
			for _, it := range v.Items {
				line(v.Bullet + runs(it))
			}
		case Signature:
			line(strings.Join(v.Left, " ") + " / " + strings.Join(v.Right, " "))
		}
	}
	return sb.String()
}

// rich splits s on "**" markers, alternating plain and bold runs.
func rich(s string) []Run {
	parts := strings.Split(s, "**")
	out := make([]Run, 0, len(parts))
	for i, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, Run{Text: p, Bold: i%2 == 1})
	}
	return out
}

func para(s string) Paragraph { return Paragraph{Runs: rich(s), Align: AlignJustify} }

func bold(s string) Paragraph {
	return Paragraph{Runs: []Run{{Text: s, Bold: true}}, Align: AlignJustify}
}

func articleTitle(s string) Paragraph {
	return Paragraph{Runs: []Run{{Text: s, Bold: true, Underline: true}}, Align: AlignJustify}
}

func cells(b bool, texts ...string) []Cell {
	out := make([]Cell, len(texts))
	for i, t := range texts {
		out[i] = Cell{Text: t, Bold: b}
	}
	return out
}

func bullets(bullet string, items ...string) List {
	l := List{Bullet: bullet}
	for _, it := range items {
		l.Items = append(l.Items, rich(it))
	}
	return l
}
