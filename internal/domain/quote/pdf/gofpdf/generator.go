package gofpdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"leadway/caution_backend/internal/domain/quote/document"
)

const (
	fontFamily     = "DejaVu"
	coreFamily     = "Helvetica"
	defaultSize    = 10.0
	minBottom      = 20.0
	cellPadding    = 1.0
	ptToLineHeight = 0.45
)

// fontFiles maps gofpdf styles to DejaVu files; a missing italic variant falls
// back to the upright file of the same weight.
var fontFiles = []struct {
	style, file, fallback string
}{
	{"", "DejaVuSans.ttf", ""},
	{"B", "DejaVuSans-Bold.ttf", ""},
	{"I", "DejaVuSans-Oblique.ttf", "DejaVuSans.ttf"},
	{"BI", "DejaVuSans-BoldOblique.ttf", "DejaVuSans-Bold.ttf"},
}

type Generator struct {
	fontsDir string
	log      *slog.Logger
}

// New returns a generator using the DejaVu fonts in fontsDir when present and
// the core Helvetica font (cp1252) otherwise.
func New(fontsDir string, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{fontsDir: fontsDir, log: log}
}

func (g *Generator) Generate(doc *document.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetMargins(14, 10, 14)

	r := &renderer{pdf: pdf, log: g.log.With("document", doc.FileName)}
	r.setupFonts(g.fontsDir)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}

	bottom := minBottom
	if doc.Footer != nil && r.register(*doc.Footer) {
		footer := *doc.Footer
		pageW, pageH := pdf.GetPageSize()
		h := r.heightFor(footer.Name, pageW)
		if h+5 > bottom {
			bottom = h + 5
		}
		pdf.SetFooterFunc(func() {
			pdf.ImageOptions(footer.Name, 0, pageH-h, pageW, h, false, imageOptions(footer.Name), 0, "")
		})
	}
	pdf.SetAutoPageBreak(true, bottom)
	pdf.AddPage()

	for _, b := range doc.Blocks {
		r.block(b)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("render %T: %w", b, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		r.log.Error("pdf output failed", "err", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

type renderer struct {
	pdf    *gofpdf.Fpdf
	log    *slog.Logger
	family string
	tr     func(string) string
	images map[string]bool
}

func (r *renderer) setupFonts(dir string) {
	if dir != "" {
		if _, err := os.Stat(filepath.Join(dir, fontFiles[0].file)); err == nil {
			for _, f := range fontFiles {
				path := filepath.Join(dir, f.file)
				if _, err := os.Stat(path); err != nil && f.fallback != "" {
					path = filepath.Join(dir, f.fallback)
				}
				r.pdf.AddUTF8Font(fontFamily, f.style, path)
			}
			r.family = fontFamily
			r.tr = func(s string) string { return s }
			return
		}
		r.log.Warn("fonts not found, using core font", "dir", dir)
	}
	r.family = coreFamily
	r.tr = r.pdf.UnicodeTranslatorFromDescriptor("")
}

func lineHeight(size float64) float64 { return size * ptToLineHeight }

func alignStr(a document.Align) string {
	switch a {
	case document.AlignCenter:
		return "C"
	case document.AlignRight:
		return "R"
	case document.AlignJustify:
		return "J"
	}
	return "L"
}

func style(bold, italic, underline bool) string {
	s := ""
	if bold {
		s += "B"
	}
	if italic {
		s += "I"
	}
	if underline {
		s += "U"
	}
	return s
}

func (r *renderer) font(st string, size float64) {
	r.pdf.SetFont(r.family, st, size)
}

func (r *renderer) textColor(c document.Color) { r.pdf.SetTextColor(c.R, c.G, c.B) }

func (r *renderer) printable() (left, width float64) {
	pageW, _ := r.pdf.GetPageSize()
	l, _, right, _ := r.pdf.GetMargins()
	return l, pageW - l - right
}

// ensure starts a new page unless h millimetres fit above the bottom margin.
func (r *renderer) ensure(h float64) {
	_, pageH := r.pdf.GetPageSize()
	_, bottom := r.pdf.GetAutoPageBreak()
	if r.pdf.GetY()+h > pageH-bottom {
		r.pdf.AddPage()
	}
}

func (r *renderer) block(b document.Block) {
	switch v := b.(type) {
	case document.Heading:
		size := v.Size
		if size == 0 {
			size = 12
		}
		r.font(style(true, false, v.Underline), size)
		r.textColor(document.Black)
		r.pdf.MultiCell(0, lineHeight(size), r.tr(v.Text), "", alignStr(v.Align), false)
		r.pdf.Ln(1)
	case document.Paragraph:
		r.runs(v.Runs, v.Align, v.Size, "")
	case document.List:
		for _, it := range v.Items {
			r.runs(it, document.AlignLeft, 0, v.Bullet)
		}
	case document.Band:
		r.band(v)
	case document.Table:
		r.table(v)
	case document.KeyValue:
		r.keyValue(v)
	case document.Signature:
		r.signature(v)
	case document.Image:
		r.image(v)
	case document.Spacer:
		r.pdf.Ln(v.Height)
	case document.PageBreak:
		r.pdf.AddPage()
	default:
		r.log.Warn("unsupported block", "type", fmt.Sprintf("%T", b))
	}
}

func uniform(runs []document.Run) bool {
	for _, run := range runs[1:] {
		if run.Bold != runs[0].Bold || run.Italic != runs[0].Italic ||
			run.Underline != runs[0].Underline || run.Color != runs[0].Color {
			return false
		}
	}
	return true
}

// runs prints styled text. Mixed styles flow left-aligned with Write; uniform
// or centred text goes through MultiCell to honour alignment.
func (r *renderer) runs(runs []document.Run, align document.Align, size float64, prefix string) {
	if len(runs) == 0 {
		return
	}
	if size == 0 {
		size = defaultSize
	}
	lh := lineHeight(size)
	left, _ := r.printable()
	r.pdf.SetX(left)

	if uniform(runs) || align == document.AlignCenter || align == document.AlignRight {
		var sb strings.Builder
		sb.WriteString(prefix)
		for _, run := range runs {
			sb.WriteString(run.Text)
		}
		first := runs[0]
		r.font(style(first.Bold, first.Italic, first.Underline), size)
		if first.Color != nil {
			r.textColor(*first.Color)
		}
		r.pdf.MultiCell(0, lh, r.tr(sb.String()), "", alignStr(align), false)
		r.textColor(document.Black)
		return
	}

	if prefix != "" {
		r.font("", size)
		r.pdf.Write(lh, r.tr(prefix))
	}
	for _, run := range runs {
		r.font(style(run.Bold, run.Italic, run.Underline), size)
		if run.Color != nil {
			r.textColor(*run.Color)
		}
		r.pdf.Write(lh, r.tr(run.Text))
		r.textColor(document.Black)
	}
	r.pdf.Ln(lh)
}

func (r *renderer) band(b document.Band) {
	r.ensure(8)
	r.font("B", 10)
	r.pdf.SetFillColor(b.Background.R, b.Background.G, b.Background.B)
	r.textColor(b.Foreground)
	r.pdf.CellFormat(0, 8, r.tr(" "+b.Text), "", 1, alignStr(b.Align), true, 0, "")
	r.textColor(document.Black)
}

// wrap splits text into lines no wider than w in the current font.
func (r *renderer) wrap(text string, w float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, word := range words[1:] {
			next := cur + " " + word
			if r.pdf.GetStringWidth(r.tr(next)) <= w {
				cur = next
				continue
			}
			lines = append(lines, cur)
			cur = word
		}
		lines = append(lines, cur)
	}
	return lines
}

func (r *renderer) table(t document.Table) {
	size := t.Size
	if size == 0 {
		size = defaultSize
	}
	left, width := r.printable()
	var total float64
	for _, w := range t.Widths {
		total += w
	}
	widths := make([]float64, len(t.Widths))
	for i, w := range t.Widths {
		widths[i] = w / total * width
	}

	if len(t.Header) > 0 {
		var fill *document.Color
		if t.HeaderFill != (document.Color{}) {
			fill = &t.HeaderFill
		}
		r.row(t.Header, widths, left, size, t.Align, t.Grid, fill)
	}
	for _, row := range t.Rows {
		r.row(row, widths, left, size, t.Align, t.Grid, nil)
	}
	r.pdf.SetX(left)
}

func (r *renderer) row(cells []document.Cell, widths []float64, left, size float64, align document.Align, grid bool, fill *document.Color) {
	lh := lineHeight(size)
	wrapped := make([][]string, len(cells))
	maxLines := 1
	for i, c := range cells {
		if i >= len(widths) {
			break
		}
		r.font(style(c.Bold, false, false), size)
		wrapped[i] = r.wrap(c.Text, widths[i]-2*cellPadding)
		if len(wrapped[i]) > maxLines {
			maxLines = len(wrapped[i])
		}
	}
	h := float64(maxLines)*lh + 2*cellPadding
	r.ensure(h)

	y := r.pdf.GetY()
	x := left
	a := alignStr(align)
	if a == "J" {
		a = "L"
	}
	for i, c := range cells {
		if i >= len(widths) {
			break
		}
		w := widths[i]
		if fill != nil {
			r.pdf.SetFillColor(fill.R, fill.G, fill.B)
			r.pdf.Rect(x, y, w, h, "F")
		}
		if grid {
			r.pdf.Rect(x, y, w, h, "D")
		}
		r.font(style(c.Bold, false, false), size)
		top := y + (h-float64(len(wrapped[i]))*lh)/2
		for j, line := range wrapped[i] {
			r.pdf.SetXY(x+cellPadding, top+float64(j)*lh)
			r.pdf.CellFormat(w-2*cellPadding, lh, r.tr(line), "", 0, a, false, 0, "")
		}
		x += w
	}
	r.pdf.SetXY(left, y+h)
}

func (r *renderer) keyValue(kv document.KeyValue) {
	left, width := r.printable()
	keyW := width * 150 / 530
	lh := lineHeight(defaultSize)
	r.font("", defaultSize)
	for _, row := range kv.Rows {
		r.ensure(lh)
		r.pdf.SetX(left)
		r.pdf.CellFormat(keyW, lh+1, r.tr(row[0]), "", 0, "L", false, 0, "")
		r.pdf.MultiCell(0, lh+1, r.tr(row[1]), "", "L", false)
	}
}

func (r *renderer) signature(s document.Signature) {
	left, width := r.printable()
	lw := width * 280 / 500
	rw := width - lw
	lh := lineHeight(defaultSize)

	imgH := 0.0
	if s.Image != nil && r.register(*s.Image) {
		imgH = r.heightFor(s.Image.Name, s.Image.Width)
	}
	lines := max(len(s.Left), len(s.Right))
	r.ensure(float64(lines+1)*lh + imgH)

	y := r.pdf.GetY()
	r.font("B", defaultSize)
	for i, l := range s.Left {
		r.pdf.SetXY(left, y+float64(i)*lh)
		r.pdf.CellFormat(lw, lh, r.tr(l), "", 0, "C", false, 0, "")
	}
	for i, l := range s.Right {
		r.pdf.SetXY(left+lw, y+float64(i)*lh)
		r.pdf.CellFormat(rw, lh, r.tr(l), "", 0, "C", false, 0, "")
	}
	y += float64(lines+1) * lh
	if imgH > 0 {
		x := left + lw + (rw-s.Image.Width)/2
		r.pdf.ImageOptions(s.Image.Name, x, y, s.Image.Width, imgH, false, imageOptions(s.Image.Name), 0, "")
		y += imgH
	}
	r.pdf.SetXY(left, y+2)
}

func (r *renderer) image(img document.Image) {
	if !r.register(img) {
		return
	}
	left, width := r.printable()
	w := img.Width
	if w == 0 || w > width {
		w = width
	}
	h := r.heightFor(img.Name, w)
	r.ensure(h)

	x := left
	switch img.Align {
	case document.AlignCenter:
		x = left + (width-w)/2
	case document.AlignRight:
		x = left + width - w
	}
	y := r.pdf.GetY()
	r.pdf.ImageOptions(img.Name, x, y, w, h, false, imageOptions(img.Name), 0, "")
	r.pdf.SetY(y + h)
}

// register loads img into the PDF once. Undecodable images are skipped with a
// warning since gofpdf errors are sticky.
func (r *renderer) register(img document.Image) bool {
	if r.images == nil {
		r.images = map[string]bool{}
	}
	if ok, seen := r.images[img.Name]; seen {
		return ok
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(img.Data)); err != nil {
		r.log.Warn("skipping undecodable image", "image", img.Name, "err", err)
		r.images[img.Name] = false
		return false
	}
	r.pdf.RegisterImageOptionsReader(img.Name, imageOptions(img.Name), bytes.NewReader(img.Data))
	ok := r.pdf.Ok()
	r.images[img.Name] = ok
	return ok
}

func (r *renderer) heightFor(name string, w float64) float64 {
	info := r.pdf.GetImageInfo(name)
	if info == nil || info.Width() == 0 {
		return 0
	}
	return w * info.Height() / info.Width()
}

func imageOptions(name string) gofpdf.ImageOptions {
	t := strings.ToUpper(strings.TrimPrefix(filepath.Ext(name), "."))
	if t == "JPEG" {
		t = "JPG"
	}
	return gofpdf.ImageOptions{ImageType: t}
}
