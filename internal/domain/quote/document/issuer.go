package document

// Issuer identifies the insurance company on every document.
type Issuer struct {
	Name      string
	ShortName string
	City      string
	// Presentation is the corporate identity paragraph of professional bonds.
	Presentation string
	Seat         string

	Intermediary     string
	IntermediaryCode string
	// ApprovalIntermediary replaces Intermediary on approval bond contracts.
	ApprovalIntermediary     string
	ApprovalIntermediaryCode string
}

func DefaultIssuer() Issuer {
	return Issuer{
		Name:      "LEADWAY ASSURANCE IARD",
		ShortName: "LEADWAY ASSURANCE",
		City:      "Abidjan",
		Presentation: "**LEADWAY ASSURANCE IARD, 01 BP 11944 Abidjan 01** Société Anonyme au capital de " +
			"5 000 000 000 FCFA, dont le siège est à Abidjan, Cocody 7ème Tranche, représenté par " +
			"Monsieur Tiornan COULIBALY, Son Directeur Général.",
		Seat:                     "Angré 7ème tranche, près du Centre Commercial TERA",
		Intermediary:             "DIRECT",
		IntermediaryCode:         "2000",
		ApprovalIntermediary:     "OLEA AFRICA",
		ApprovalIntermediaryCode: "2003",
	}
}
