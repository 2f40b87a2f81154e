package document

import (
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"leadway/caution_backend/internal/domain/quote"
)

var testNow = time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)

func allAssets() fstest.MapFS {
	return fstest.MapFS{
		LogoAsset:      {Data: []byte("logo")},
		SignatureAsset: {Data: []byte("sig")},
		FooterAsset:    {Data: []byte("footer")},
	}
}

func newTestAssembler(fsys fstest.MapFS) *Assembler {
	return NewAssembler(FSAssets{FS: fsys}, DefaultIssuer()).WithClock(func() time.Time { return testNow })
}

func testQuote(t *testing.T, coverage quote.Coverage, mutate func(*quote.Form)) *quote.Quote {
	t.Helper()
	f := quote.Form{
		Insured:              "SOCIETE BATIR SARL",
		InsuredAddress:       "01 BP 100 Abidjan 01",
		ContractingAuthority: "AGEROUTE",
		MarketObject:         "Réhabilitation de la voirie",
		Coverage:             coverage,
		Duration:             365,
		BondedAmount:         10_000_000,
		RatePercent:          0.1,
		Sureties:             "Dépôt de 10%\nCaution des dirigeants",
	}
	if mutate != nil {
		mutate(&f)
	}
	q, _, err := quote.Build(f, testNow)
	require.NoError(t, err)
	q.ID = 7
	return q
}

func hasBlock[T Block](doc *Document) bool {
	for _, b := range doc.Blocks {
		if _, ok := b.(T); ok {
			return true
		}
	}
	return false
}

func TestOffer_Content(t *testing.T) {
	q := testQuote(t, quote.CoverageGoodExecution, nil)
	items := []quote.LineItem{
		{Number: "1", Amount: 4_000_000, Description: "Voirie"},
		{Number: "2", Amount: 6_000_000, Description: "Assainissement"},
	}

	doc := newTestAssembler(allAssets()).Offer(q, items)
	text := doc.Text()

	assert.Equal(t, VariantOffer, doc.Variant)
	assert.Equal(t, "Cotation_SOCIETE_BATIR_SARL.pdf", doc.FileName)
	assert.Empty(t, doc.Warnings)
	require.NotNil(t, doc.Footer)
	assert.Equal(t, FooterAsset, doc.Footer.Name)

	assert.Contains(t, text, "OFFRE D'ASSURANCE CAUTION DE BONNE EXÉCUTION")
	assert.Contains(t, text, "demande de cotation du 5 mars 2026")
	assert.Contains(t, text, "Date de dépôt du dossier | Selon contrat")
	assert.Contains(t, text, "Durée de la garantie | 365 jours")
	assert.Contains(t, text, "10 000 F CFA | 5 000 F CFA | 0 F CFA | 2 175 F CFA | 17 175 F CFA")
	assert.Contains(t, text, "Sûretés et mesures cumulatives :")
	assert.Contains(t, text, "Fait à Abidjan, le 5 mars 2026")
	assert.Contains(t, text, "Leadway Assurance IARD")
	assert.Contains(t, text, "DÉTAILS DES LOTS")
	assert.Contains(t, text, "2 | 6 000 000 F CFA | Assainissement")
	assert.True(t, hasBlock[PageBreak](doc))
}

func TestOffer_WithoutLotsOrSureties(t *testing.T) {
	q := testQuote(t, quote.CoverageSubmission, nil)

	doc := newTestAssembler(allAssets()).Offer(q, nil)
	text := doc.Text()

	assert.NotContains(t, text, "Sûretés")
	assert.NotContains(t, text, "DÉTAILS DES LOTS")
	assert.False(t, hasBlock[PageBreak](doc))
	assert.Contains(t, text, "Date de dépôt du dossier | 5 mars 2026")
}

func TestOffer_MissingAssetsAreWarnings(t *testing.T) {
	q := testQuote(t, quote.CoverageGoodExecution, nil)

	doc := newTestAssembler(fstest.MapFS{}).Offer(q, nil)

	assert.Nil(t, doc.Footer)
	assert.False(t, hasBlock[Image](doc))
	require.Len(t, doc.Warnings, 2)
	assert.Contains(t, doc.Warnings[0], FooterAsset)
	assert.Contains(t, doc.Warnings[1], LogoAsset)
	assert.Contains(t, doc.Text(), "OFFRE D'ASSURANCE CAUTION")
}

func TestContract_Standard(t *testing.T) {
	q := testQuote(t, quote.CoverageGoodExecution, nil)
	p := quote.NewPolicy(q.ID, "3240-80012345625", testNow)

	doc := newTestAssembler(allAssets()).ContractFor(q, p)
	text := doc.Text()

	assert.Equal(t, VariantContract, doc.Variant)
	assert.Equal(t, "Contrat_3240-80012345625.pdf", doc.FileName)
	assert.Empty(t, doc.Warnings)
	assert.Contains(t, text, "POLICE NUMERO 3240-80012345625")
	assert.Contains(t, text, "INTERMEDIAIRE : DIRECT")
	assert.Contains(t, text, "CODE : 2000")
	assert.Contains(t, text, "DATE D'ÉCHÉANCE : 4 mars 2027")
	assert.Contains(t, text, "DURÉE DE LA POLICE : 365 jours")
	assert.Contains(t, text, "10 000 | 5 000 | 0 | 2 175 | 17 175")
	assert.Contains(t, text, "Le montant de la garantie est de 10 000 000 F CFA (dix millions francs CFA).")
	assert.Contains(t, text, "garantir le bénéficiaire AGEROUTE")
	assert.Contains(t, text, "prend effet le 5 mars 2026 et prend fin le 4 mars 2027")
	assert.Contains(t, text, "ARTICLE 10 : SUBROGATION")
	assert.Contains(t, text, "TITRE VI : DISPOSITIONS FINALES")
	assert.Contains(t, text, "Article 19 : Election de domicile")
	assert.Contains(t, text, "• LE DONNEUR D'ORDRE, dont les références")
	assert.NotContains(t, text, "{")
}

func TestContract_StartupAdvanceWording(t *testing.T) {
	q := testQuote(t, quote.CoverageStartupAdvance, nil)
	p := quote.NewPolicy(q.ID, "3240-80000000125", testNow)

	text := newTestAssembler(allAssets()).Contract(q, p).Text()
	assert.Contains(t, text, "garantie de restitution d'avance est de 10 000 000 F CFA")
}

func TestContract_Approval(t *testing.T) {
	q := testQuote(t, quote.CoverageApprovalBond, func(f *quote.Form) {
		f.ApprovalDetail = "AGREMENT EN DOUANE"
		f.Beneficiary = "DIRECTION GENERALE DES DOUANES"
		f.BeneficiaryAddress = "Plateau, Abidjan"
	})
	p := quote.NewPolicy(q.ID, "3240-80099999925", testNow)

	doc := newTestAssembler(allAssets()).ContractFor(q, p)
	text := doc.Text()

	assert.Equal(t, VariantApprovalContract, doc.Variant)
	assert.Contains(t, text, "ASSURANCE CAUTION D'AGREMENT/ AGREMENT EN DOUANE")
	assert.Contains(t, text, "POLICE NUMERO No 3240-80099999925")
	assert.Contains(t, text, "INTERMEDIAIRE : OLEA AFRICA")
	assert.Contains(t, text, "CODE : 2003")
	assert.Contains(t, text, "Contre-garantie à déposer        20 000 000 F CFA")
	assert.Contains(t, text, "Dix millions (10 000 000 F CFA) francs CFA.")
	assert.Contains(t, text, "365 jours à compter du 5 mars 2026 au 4 mars 2027")
	assert.Contains(t, text, "Dépôt à terme de dix millions (10 000 000) F CFA")
	assert.Contains(t, text, "DIRECTION GENERALE DES DOUANES\nPlateau, Abidjan")
	assert.Contains(t, text, "LEADWAY ASSURANCE s'engage à payer")
	assert.Contains(t, text, "La caution est valable du 5 mars 2026 au 4 mars 2027")
	assert.Contains(t, text, "Article 11 – Exclusions")
	assert.NotContains(t, text, "{")

	signatures := 0
	for _, b := range doc.Blocks {
		if s, ok := b.(Signature); ok {
			signatures++
			require.NotNil(t, s.Image)
		}
	}
	assert.Equal(t, 2, signatures)
}

// Without FONTS_DIR the renderer falls back to the core fonts, which only
// cover Windows-1252.
func TestDocuments_EncodableInCoreFonts(t *testing.T) {
	a := newTestAssembler(allAssets())
	standard := testQuote(t, quote.CoverageStartupAdvance, nil)
	approval := testQuote(t, quote.CoverageApprovalBond, func(f *quote.Form) {
		f.ApprovalDetail = "AGREMENT EN DOUANE"
	})
	docs := []*Document{
		a.Offer(standard, []quote.LineItem{{Number: "1", Amount: 10_000_000, Description: "Lot unique"}}),
		a.Contract(standard, quote.NewPolicy(standard.ID, "3240-80012345625", testNow)),
		a.ApprovalContract(approval, quote.NewPolicy(approval.ID, "3240-80099999925", testNow)),
	}
	for _, doc := range docs {
		for _, r := range doc.Text() {
			_, ok := charmap.Windows1252.EncodeRune(r)
			assert.True(t, ok, "%s: %q is outside Windows-1252", doc.Variant, r)
		}
	}
}

func TestRich(t *testing.T) {
	runs := rich("a **b** c")
	require.Len(t, runs, 3)
	assert.False(t, runs[0].Bold)
	assert.True(t, runs[1].Bold)
	assert.Equal(t, "b", runs[1].Text)
	assert.False(t, runs[2].Bold)
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "Cotation_A_B_C.pdf", OfferFileName(" A  B C "))
	assert.Equal(t, "Contrat_X.pdf", ContractFileName("X"))
	assert.True(t, strings.HasSuffix(OfferFileName("Ets Kouassi"), "Ets_Kouassi.pdf"))
}
