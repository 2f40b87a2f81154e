package document

import (
	"errors"
	"strings"
	"time"

	"leadway/caution_backend/internal/domain/locale"
	"leadway/caution_backend/internal/domain/quote"
)

// Assembler turns quote records into document content. Missing images are
// omitted and reported in Document.Warnings.
type Assembler struct {
	assets Assets
	issuer Issuer
	now    func() time.Time
}

func NewAssembler(assets Assets, issuer Issuer) *Assembler {
	return &Assembler{assets: assets, issuer: issuer, now: time.Now}
}

// WithClock overrides the signing date source.
func (a *Assembler) WithClock(now func() time.Time) *Assembler {
	a.now = now
	return a
}

func (a *Assembler) image(doc *Document, name string, width float64, align Align) *Image {
	if a.assets == nil {
		doc.warnf("%s: %v", name, ErrAssetMissing)
		return nil
	}
	data, err := a.assets.Load(name)
	if err != nil {
		if errors.Is(err, ErrAssetMissing) {
			doc.warnf("%v", err)
		} else {
			doc.warnf("%s: unreadable: %v", name, err)
		}
		return nil
	}
	return &Image{Name: name, Data: data, Width: width, Align: align}
}

func (a *Assembler) addImage(doc *Document, name string, width float64, align Align, after float64) {
	if img := a.image(doc, name, width, align); img != nil {
		doc.add(*img, Spacer{Height: after})
	}
}

func (a *Assembler) newDocument(v Variant, title, fileName string) *Document {
	doc := &Document{Variant: v, Title: title, FileName: fileName}
	doc.Footer = a.image(doc, FooterAsset, 0, AlignCenter)
	return doc
}

func (a *Assembler) replacer(q *quote.Quote, p *quote.Policy) *strings.Replacer {
	pairs := []string{
		"{insurer}", a.issuer.Name,
		"{insurer_short}", a.issuer.ShortName,
		"{insured}", q.Insured,
		"{authority}", q.ContractingAuthority,
		"{object}", q.MarketObject,
		"{seat}", a.issuer.Seat,
		"{amount}", locale.FormatMoney(q.BondedAmount),
		"{amount_words}", locale.ToWords(locale.WholeUnits(q.BondedAmount)),
	}
	if p != nil {
		pairs = append(pairs,
			"{effect}", locale.FrenchDate(p.EffectDate),
			"{expiry}", locale.FrenchDate(p.ExpiryDate),
		)
	}
	return strings.NewReplacer(pairs...)
}

func articles(doc *Document, r *strings.Replacer, list []article) {
	for _, art := range list {
		doc.add(articleTitle(r.Replace(art.Title)), Spacer{Height: 2})
		for _, body := range art.Body {
			doc.add(para(r.Replace(body)))
		}
		doc.add(Spacer{Height: 4})
	}
}

func premiumRow(p quote.Premium, format func(float64) string) []Cell {
	return []Cell{
		{Text: format(p.NetPremium)},
		{Text: format(p.AccessoryFee)},
		{Text: format(p.AnalysisFee)},
		{Text: format(p.Tax)},
		{Text: format(p.GrossPremium), Bold: true},
	}
}

// OfferFileName is the download name of the offer for an insured party.
func OfferFileName(insured string) string {
	return "Cotation_" + strings.Join(strings.Fields(insured), "_") + ".pdf"
}

func ContractFileName(policyNumber string) string {
	return "Contrat_" + policyNumber + ".pdf"
}

// Offer assembles the quotation offer, with the lots appended on their own page.
func (a *Assembler) Offer(q *quote.Quote, items []quote.LineItem) *Document {
	title := "OFFRE D'ASSURANCE CAUTION DE " + strings.ToUpper(string(q.Coverage))
	doc := a.newDocument(VariantOffer, title, OfferFileName(q.Insured))

	a.addImage(doc, LogoAsset, 40, AlignRight, 2)
	doc.add(
		Band{Text: title, Background: Black, Foreground: White, Align: AlignCenter},
		Spacer{Height: 2},
		para("Comme suite à votre demande de cotation du "+locale.FrenchDate(q.QuoteDate)+
			", nous vous présentons ci-dessous les conditions de garanties et de primes pour la couverture "+
			"Caution sollicitée."),
		Spacer{Height: 4},
	)

	info := [][2]string{
		{"Assuré", q.Insured},
		{"Adresse", q.InsuredAddress},
		{"Situation géographique du marché", q.MarketLocation},
		{"Numéro du marché", q.MarketNumber},
		{"Autorité contractante", q.ContractingAuthority},
		{"Date de dépôt du dossier", q.FilingDate},
		{"Objet du marché", q.MarketObject},
		{"Couverture", string(q.Coverage)},
		{"Montant du marché", locale.FormatMoney(q.MarketAmount)},
		{"Durée de la garantie", q.Duration.Label()},
		{"Montant à cautionner", locale.FormatMoney(q.BondedAmount)},
		{"Limites & Franchises", "Néant"},
	}
	infoTable := Table{Widths: []float64{260, 280}, Grid: true, Align: AlignLeft}
	for _, kv := range info {
		infoTable.Rows = append(infoTable.Rows, []Cell{{Text: kv[0], Bold: true}, {Text: kv[1]}})
	}
	doc.add(infoTable, Spacer{Height: 4})

	doc.add(
		bold("DÉCOMPTE DE PRIME :"),
		Table{
			Widths:     []float64{100, 80, 100, 80, 120},
			Header:     cells(true, "Prime HT", "Acc.", "Frais d'analyse", "Taxe", "Prime TTC"),
			Rows:       [][]Cell{premiumRow(q.Premium, locale.FormatMoney)},
			Grid:       true,
			HeaderFill: LightGrey,
			Align:      AlignCenter,
		},
		Spacer{Height: 4},
	)

	doc.add(
		Band{Text: "Offre soumise sous réserve de nous transmettre :", Background: Grey, Foreground: White},
		bullets("- ", offerRequiredDocuments...),
		Spacer{Height: 3},
	)
	if q.Sureties != "" {
		red := Red
		sureties := Paragraph{Align: AlignJustify}
		for i, line := range strings.Split(q.Sureties, "\n") {
			if i > 0 {
				line = "\n" + line
			}
			sureties.Runs = append(sureties.Runs, Run{Text: line, Color: &red})
		}
		doc.add(
			Band{Text: "Sûretés et mesures cumulatives :", Background: Grey, Foreground: White},
			sureties,
			Spacer{Height: 3},
		)
	}
	doc.add(
		Band{Text: "Exclusions :", Background: Grey, Foreground: White},
		bullets("- ", offerExclusions...),
		Spacer{Height: 4},
		Paragraph{Align: AlignRight, Runs: []Run{
			{Text: "Fait à " + a.issuer.City + ", le " + locale.FrenchDate(a.now()) + "\n\n"},
			{Text: "POUR LA COMPAGNIE\n", Bold: true},
			{Text: titleCase(a.issuer.Name)},
		}},
	)

	if len(items) > 0 {
		lots := Table{
			Widths:     []float64{100, 130, 310},
			Header:     cells(true, "Numéro du lot", "Montant à cautionner", "Désignation"),
			Grid:       true,
			HeaderFill: LightGrey,
			Size:       9,
		}
		for _, it := range items {
			lots.Rows = append(lots.Rows, cells(false, it.Number, locale.FormatMoney(it.Amount), it.Description))
		}
		doc.add(PageBreak{}, Heading{Text: "DÉTAILS DES LOTS", Size: 12}, lots)
	}
	return doc
}

// ContractFor picks the contract variant matching the quote coverage.
func (a *Assembler) ContractFor(q *quote.Quote, p quote.Policy) *Document {
	if q.Coverage == quote.CoverageApprovalBond {
		return a.ApprovalContract(q, p)
	}
	return a.Contract(q, p)
}

// Contract assembles the standard contract: cover page, particular
// conditions and general conditions.
func (a *Assembler) Contract(q *quote.Quote, p quote.Policy) *Document {
	doc := a.newDocument(VariantContract, "CONTRAT "+p.Number, ContractFileName(p.Number))
	r := a.replacer(q, &p)

	a.addImage(doc, LogoAsset, 50, AlignCenter, 4)
	doc.add(
		Heading{Text: strings.ToUpper(q.Insured), Size: 14, Align: AlignCenter},
		Heading{Text: "CONDITIONS PARTICULIERES ET GENERALES", Size: 14, Align: AlignCenter},
		Spacer{Height: 7},
		Heading{Text: "CAUTION", Size: 14, Align: AlignCenter},
		Paragraph{Align: AlignCenter, Size: 11, Runs: []Run{{Text: "POLICE NUMERO " + p.Number}}},
		PageBreak{},
		Spacer{Height: 4},
		KeyValue{Rows: [][2]string{
			{"SOUSCRIPTEUR", ": " + q.Subscriber},
			{"ASSURÉ", ": " + q.Insured},
			{"INTERMEDIAIRE", ": " + a.issuer.Intermediary},
			{"CODE", ": " + a.issuer.IntermediaryCode},
			{"DATE D'EMISSION", ": " + locale.FrenchDate(p.IssueDate)},
			{"DATE D'EFFET", ": " + locale.FrenchDate(p.EffectDate)},
			{"DATE D'ÉCHÉANCE", ": " + locale.FrenchDate(p.ExpiryDate)},
			{"DURÉE DE LA POLICE", ": " + p.DurationLabel},
		}},
		Spacer{Height: 5},
		bold("DÉCOMPTE DE PRIME (en F CFA) :"),
		Spacer{Height: 3},
		Table{
			Widths:     []float64{100, 80, 100, 80, 120},
			Header:     cells(true, "Prime HT", "Acc.", "Frais d'analyse", "Taxe", "Prime TTC"),
			Rows:       [][]Cell{premiumRow(q.Premium, locale.FormatAmount)},
			Grid:       true,
			HeaderFill: LightGrey,
			Align:      AlignCenter,
		},
		Spacer{Height: 4},
		para(r.Replace(contractPreamble)),
		Spacer{Height: 4},
	)

	amountText := contractAmountText
	if q.Coverage == quote.CoverageStartupAdvance {
		amountText = contractAdvanceAmountText
	}
	particular := make([]article, 0, len(contractArticles)+1)
	particular = append(particular, contractArticles[0],
		article{Title: "ARTICLE 2 : MONTANT DE LA GARANTIE", Body: []string{amountText}})
	particular = append(particular, contractArticles[1:]...)
	articles(doc, r, particular)

	doc.add(Spacer{Height: 10}, Signature{
		Left:  []string{"Le Donneur d'Ordre (Assuré)"},
		Right: []string{"Le Garant", "(L'Assureur)"},
		Image: a.image(doc, SignatureAsset, 60, AlignCenter),
	})

	doc.add(PageBreak{}, Heading{Text: "CONDITIONS GENERALES", Size: 12, Align: AlignCenter}, Spacer{Height: 4})
	for _, t := range generalConditions {
		doc.add(bold(t.Name), Spacer{Height: 3})
		articles(doc, r, t.Articles)
	}
	return doc
}

// CounterGuaranteeFactor sizes the deposit requested on approval bonds.
const CounterGuaranteeFactor = 2

// ApprovalContract assembles the approval bond contract.
func (a *Assembler) ApprovalContract(q *quote.Quote, p quote.Policy) *Document {
	doc := a.newDocument(VariantApprovalContract, "CONTRAT "+p.Number, ContractFileName(p.Number))
	r := a.replacer(q, &p)

	detail := ""
	if q.ApprovalDetail != nil {
		detail = *q.ApprovalDetail
	}
	counterGuarantee := q.BondedAmount * CounterGuaranteeFactor

	signature := func() Signature {
		return Signature{
			Left:  []string{"LE SOUSCRIPTEUR"},
			Right: []string{"POUR L'ASSUREUR"},
			Image: a.image(doc, SignatureAsset, 60, AlignCenter),
		}
	}
	premiumTable := Table{
		Widths:     []float64{100, 100, 100, 100, 100},
		Header:     cells(true, "Prime nette", "Frais d'analyse", "Accessoires", "Taxes", "Prime TTC"),
		Rows:       [][]Cell{cells(false, locale.FormatAmount(q.NetPremium), locale.FormatAmount(q.AnalysisFee), locale.FormatAmount(q.AccessoryFee), locale.FormatAmount(q.Tax), locale.FormatAmount(q.GrossPremium))},
		Grid:       true,
		HeaderFill: LightGrey,
		Align:      AlignCenter,
		Size:       9,
	}

	a.addImage(doc, LogoAsset, 80, AlignCenter, 14)
	doc.add(
		Heading{Text: q.Insured, Size: 14, Align: AlignCenter},
		Spacer{Height: 10},
		Heading{Text: "CONDITIONS PARTICULIERES", Size: 14, Align: AlignCenter},
		Spacer{Height: 7},
		Heading{Text: "ASSURANCE CAUTION D'AGREMENT/ " + detail, Size: 14, Align: AlignCenter},
		Spacer{Height: 7},
		Heading{Text: "POLICE NUMERO No " + p.Number, Size: 14, Align: AlignCenter},
		PageBreak{},
		Heading{Text: "CONDITIONS PARTICULIÈRES – " + detail, Size: 10, Align: AlignCenter, Underline: true},
		Spacer{Height: 7},
		KeyValue{Rows: [][2]string{
			{"SOUSCRIPTEUR", ": " + q.Subscriber},
			{"ASSURE", ": " + q.Insured},
			{"INTERMEDIAIRE", ": " + a.issuer.ApprovalIntermediary},
			{"CODE", ": " + a.issuer.ApprovalIntermediaryCode},
			{"DATE D'EMISSION", ": " + locale.FrenchDate(p.IssueDate)},
			{"DATE D'EFFET", ": " + locale.FrenchDate(p.EffectDate)},
			{"DATE D'ECHEANCE", ": " + locale.FrenchDate(p.ExpiryDate)},
			{"A DUREE FERME", ""},
		}},
		Spacer{Height: 7},
		bold("DECOMPTE DE PRIME & CONTRE-GARANTIE :"),
		Spacer{Height: 3},
		bold("Détail prime"),
		premiumTable,
		Spacer{Height: 5},
		Paragraph{Align: AlignJustify, Runs: []Run{
			{Text: "Contre-garantie à déposer", Bold: true, Italic: true},
			{Text: "        " + locale.FormatMoney(counterGuarantee)},
		}},
		Spacer{Height: 5},
		para(approvalConstitution),
		Spacer{Height: 10},
		signature(),
		PageBreak{},
		Heading{Text: "CONDITIONS PARTICULIÈRES – CAUTION PROFESSIONNELLE", Size: 10, Align: AlignCenter, Underline: true},
		Spacer{Height: 7},
		bold("Police n° : "+p.Number),
		Spacer{Height: 3},
		bold("Souscripteurs / Donneurs d'ordre :"),
		Paragraph{Align: AlignJustify, Runs: []Run{
			{Text: q.Insured + "\n", Bold: true},
			{Text: q.InsuredAddress, Italic: true},
		}},
		Spacer{Height: 3},
		bold("Assureur :"),
		para(a.issuer.Presentation),
		Spacer{Height: 3},
		bold("Bénéficiaire :"),
	)

	beneficiary := Paragraph{Align: AlignJustify, Runs: []Run{{Text: q.Beneficiary, Bold: true}}}
	if q.BeneficiaryAddress != "" && q.BeneficiaryAddress != "N/A" {
		beneficiary.Runs = append(beneficiary.Runs, Run{Text: "\n" + q.BeneficiaryAddress, Italic: true})
	}
	words := locale.AmountInWords(locale.WholeUnits(q.BondedAmount))
	doc.add(
		beneficiary,
		Spacer{Height: 3},
		bold("Identification du marché :"),
		para(q.MarketObject),
		Spacer{Height: 3},
		bold("Montant cautionné :"),
		para(words+" ("+locale.FormatMoney(q.BondedAmount)+") francs CFA."),
		Spacer{Height: 3},
		bold("Durée de validité :"),
		para(q.Duration.Label()+" à compter du "+locale.FrenchDate(p.EffectDate)+" au "+locale.FrenchDate(p.ExpiryDate)),
		Spacer{Height: 5},
	)

	articles(doc, r, approvalArticlesBeforeFinance)

	deposit := counterGuarantee / CounterGuaranteeFactor
	doc.add(articleTitle("Article 3 – Conditions Financières"), Spacer{Height: 2},
		bold("Détail prime"), premiumTable, Spacer{Height: 3},
		para("Payable avant le retrait de l'acte de caution."), Spacer{Height: 4},
		articleTitle("Article 4 – Sûretés Accessoires"), Spacer{Height: 2},
		bullets("• ",
			"Dépôt à terme de **"+locale.ToWords(locale.WholeUnits(deposit))+" ("+locale.FormatAmount(deposit)+") F CFA**",
			"Cautionnement personnel et solidaire des dirigeants",
			"Billet à hauteur de l'engagement a signer",
		),
		PageBreak{},
	)

	articles(doc, r, approvalArticlesAfterDeposit)
	doc.add(Spacer{Height: 14}, signature())
	return doc
}

// titleCase renders "LEADWAY ASSURANCE IARD" as "Leadway Assurance IARD";
// words of up to four letters are kept as typed.
func titleCase(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		r := []rune(f)
		if len(r) <= 4 {
			continue
		}
		fields[i] = string(r[0]) + strings.ToLower(string(r[1:]))
	}
	return strings.Join(fields, " ")
}
