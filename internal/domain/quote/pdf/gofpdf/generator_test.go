package gofpdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadway/caution_backend/internal/domain/quote"
	"leadway/caution_backend/internal/domain/quote/document"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestGenerate_AllBlocks(t *testing.T) {
	logo := pngBytes(t, 40, 20)
	red := document.Red
	doc := &document.Document{
		Title:    "Test",
		FileName: "test.pdf",
		Footer:   &document.Image{Name: "footer.png", Data: pngBytes(t, 100, 10)},
		Blocks: []document.Block{
			document.Image{Name: "logo.png", Data: logo, Width: 40, Align: document.AlignRight},
			document.Band{Text: "OFFRE D'ASSURANCE CAUTION DE BONNE EXÉCUTION", Background: document.Black, Foreground: document.White, Align: document.AlignCenter},
			document.Heading{Text: "Détails", Size: 12, Underline: true},
			document.Paragraph{Runs: []document.Run{{Text: "Texte "}, {Text: "gras", Bold: true}, {Text: " rouge", Color: &red}}},
			document.Paragraph{Align: document.AlignRight, Runs: []document.Run{{Text: "Fait à Abidjan\n"}, {Text: "POUR LA COMPAGNIE", Bold: true}}},
			document.Table{
				Widths:     []float64{1, 2},
				Header:     []document.Cell{{Text: "Clé", Bold: true}, {Text: "Valeur", Bold: true}},
				Rows:       [][]document.Cell{{{Text: "Objet"}, {Text: "Un texte assez long pour être coupé sur plusieurs lignes dans une cellule étroite du tableau"}}},
				Grid:       true,
				HeaderFill: document.LightGrey,
			},
			document.KeyValue{Rows: [][2]string{{"CODE", ": 2000"}}},
			document.List{Bullet: "• ", Items: [][]document.Run{{{Text: "Premier"}}, {{Text: "Second "}, {Text: "gras", Bold: true}}}},
			document.Spacer{Height: 5},
			document.Signature{Left: []string{"LE SOUSCRIPTEUR"}, Right: []string{"POUR L'ASSUREUR"}, Image: &document.Image{Name: "signature.png", Data: logo, Width: 50}},
			document.PageBreak{},
			document.Heading{Text: "Page 2"},
		},
	}

	out, err := New("", nil).Generate(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerate_SkipsUndecodableImages(t *testing.T) {
	doc := &document.Document{
		Title:  "Broken",
		Footer: &document.Image{Name: "footer.png", Data: []byte("not a png")},
		Blocks: []document.Block{
			document.Image{Name: "logo.png", Data: []byte("nope"), Width: 40},
			document.Heading{Text: "Still rendered"},
		},
	}

	out, err := New("", nil).Generate(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerate_MissingFontsDirFallsBack(t *testing.T) {
	doc := &document.Document{Title: "x", Blocks: []document.Block{document.Heading{Text: "Échéance"}}}
	out, err := New(t.TempDir(), nil).Generate(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerate_AssembledContracts(t *testing.T) {
	now := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	assets := document.FSAssets{FS: fstest.MapFS{
		document.LogoAsset:      {Data: pngBytes(t, 60, 30)},
		document.SignatureAsset: {Data: pngBytes(t, 30, 25)},
		document.FooterAsset:    {Data: pngBytes(t, 200, 20)},
	}}
	asm := document.NewAssembler(assets, document.DefaultIssuer()).WithClock(func() time.Time { return now })
	gen := New("", nil)

	for _, coverage := range []quote.Coverage{quote.CoverageGoodExecution, quote.CoverageApprovalBond} {
		q, items, err := quote.Build(quote.Form{
			Insured:        "SOCIETE BATIR SARL",
			Coverage:       coverage,
			BondedAmount:   25_000_000,
			RatePercent:    1,
			ApprovalDetail: "DOUANE",
			Sureties:       "Dépôt à terme",
		}, now)
		require.NoError(t, err)
		p := quote.NewPolicy(1, "3240-80012345625", now)

		for _, doc := range []*document.Document{asm.Offer(q, items), asm.ContractFor(q, p)} {
			require.Empty(t, doc.Warnings)
			out, err := gen.Generate(doc)
			require.NoError(t, err, doc.FileName)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), doc.FileName)
		}
	}
}
