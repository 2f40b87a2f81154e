package document

// Placeholders in the texts below are expanded per document:
// {insurer}, {insurer_short}, {insured}, {authority}, {object}, {effect},
// {expiry}, {seat}, {amount}, {amount_words}.

type article struct {
	Title string
	Body  []string
}

type title struct {
	Name     string
	Articles []article
}

var offerRequiredDocuments = []string{
	"Modèle de l'acte de caution",
	"Attestations de bonne exécution des marchés similaires déjà réalisés",
	"Documents Administratifs (RCCM - CNI DU GÉRANT - STATUTS - DFE)",
	"Documents Financiers (États financiers des 3 dernières années ou relevé bancaire sur une année)",
	"Contrat de marché signé",
}

var offerExclusions = []string{
	"Dommages et pertes découlant directement ou indirectement des épidémies/pandémies ;",
	"Risque et violence politique, guerre civile ou étrangère",
}

const contractPreamble = "Aux conditions générales de la police de cautionnement de marché, aux conditions " +
	"spéciales et particulières qui suivent, **{insurer}** garantit l'Assuré **{insured}** aux conditions ci-dessous"

const (
	contractAmountText        = "Le montant de la garantie est de **{amount}** ({amount_words} francs CFA)."
	contractAdvanceAmountText = "Le montant de la garantie de restitution d'avance est de **{amount}** ({amount_words} francs CFA)."
)

// contractArticles are the particular conditions of the standard contract.
// Article 2 is inserted by the assembler.
var contractArticles = []article{
	{"ARTICLE 1 : OBJET DE LA GARANTIE", []string{
		"Le présent contrat a pour objet de garantir le bénéficiaire **{authority}** contre les défaillances " +
			"de l'Assuré en cas de non-exécution des prestations faisant l'objet du marché **{object}**.",
	}},
	{"ARTICLE 3 : L'ETENDUE DE LA GARANTIE", []string{
		"Le présent contrat couvre l'Assuré contre l'acompte perçu du maître d'ouvrage. Elle s'épuise au fur " +
			"et à mesure de l'exécution des travaux pour la caution d'avance de démarrage. Toutefois, elle " +
			"s'épuise après la réception des travaux pour les autres cautions de marché.",
	}},
	{"ARTICLE 4 : DURÉE", []string{
		"Le présent contrat prend effet le **{effect}** et prend fin le **{expiry}**.",
	}},
	{"ARTICLE 5 : PAIEMENT DES PRIMES À {insurer}", []string{
		"Les modalités de paiement de la prime par l'Assuré à **{insurer}** sont définies et arrêtées comme " +
			"le stipule l'article 13 nouveau du Code CIMA. Pas de prime, pas de garantie. L'Assuré est tenu de " +
			"payer la totalité de la prime à la délivrance de la caution. Une fois l'acte de caution retiré, " +
			"la prime ne peut être restituée.",
	}},
	{"ARTICLE 6 : OBLIGATIONS D'INFORMATION", []string{
		"Le Donneur d'Ordre s'engage à transmettre à **{insurer}** l'ordre de service dès sa réception. " +
			"**{insured}** s'engage à informer régulièrement **{insurer}** de l'état d'avancement du marché. " +
			"Après chaque décompte, la société **{insured}** doit transmettre une copie certifiée à **{insurer}** " +
			"au plus tard dans les 48 heures qui suivent le décompte. La non-transmission des documents demandés " +
			"dans les délais convenus entraînera une amende forfaitaire. **{insurer}** a le droit d'exiger de " +
			"l'Assuré la communication de tous documents relatifs aux opérations cautionnées et elle a le droit " +
			"de procéder à toutes vérifications utiles afin de contrôler la sincérité et l'exactitude des " +
			"déclarations du Donneur d'Ordre.",
	}},
	{"ARTICLE 7 : VISITE DE CHANTIER", []string{
		"Les parties conviennent d'organiser ensemble au moins deux (02) visites de chantier par an. Ces " +
			"visites sont organisées à l'initiative de la partie la plus diligente. Les charges relatives à la " +
			"visite sont supportées par la société **{insured}** pour seulement deux (02) agents de **{insurer}**.",
	}},
	{"ARTICLE 8 : MAIN LEVEE", []string{
		"La société **{insured}** s'engage à diligenter par le Maître d'Ouvrage d'une lettre de mainlevée qui " +
			"doit être transmise à **{insurer}**.",
	}},
	{"ARTICLE 9 : RESTITUTION DU DÉPÔT", []string{
		"Au cas où un dépôt est constitué dans les livres de **{insurer}**, la restitution se fera sur demande " +
			"expresse du Donneur d'Ordre. Cette demande doit être accompagnée de l'original de l'acte de " +
			"cautionnement délivré avec la mention « Bon pour mainlevée » ou de l'acte de mainlevée délivré par " +
			"le bénéficiaire. Les sommes dues par le Donneur d'Ordre sont prélevées d'office sur le dépôt, le " +
			"solde lui étant restitué.",
	}},
	{"ARTICLE 10 : SUBROGATION", []string{
		"**{insurer}**, qui a payé l'indemnité d'assurance, est subrogée, jusqu'à concurrence de cette " +
			"indemnité, dans les droits et actions du bénéficiaire de la caution envers qui l'Assuré a été " +
			"défaillant. **{insurer}** peut être déchargée de tout ou partie de sa garantie envers l'Assuré " +
			"lorsque la subrogation ne peut plus, par le fait de l'Assuré, s'opérer en faveur de l'Assureur.",
	}},
}

var generalConditions = []title{
	{"TITRE I : DISPOSITIONS GENERALES", []article{
		{"Article 1 : Définitions des termes", []string{
			"**Donneur d'ordre (Assuré)** : La personne à la demande de laquelle il est émis un acte de cautionnement.",
			"**Garant** : L'émetteur de l'acte de cautionnement ou de garantie ci-après dénommé « {insurer} »",
			"**Bénéficiaire/Maître d'ouvrage** : organisme au profit duquel l'acte de cautionnement ou de garantie est émis.",
		}},
		{"Article 2 : Objet", []string{
			"La présente police a pour objet la définition des conditions générales d'émission, à la demande du " +
				"Donneur d'Ordre, d'engagements de signature par le Garant dans le cadre des marchés de travaux ou " +
				"de prestations de services. Elle est complétée, précisée ou modifiée par les « Conditions " +
				"particulières » qui sont convenues pour tous les actes de cautionnement délivrés par {insurer} au " +
				"profit du Bénéficiaire/Maître d'ouvrage désigné à ces mêmes conditions générales.",
		}},
		{"Article 3 : Dispositions contractuelles", []string{
			"Les relations entre les parties sont régies par les présentes conditions générales et par tous les " +
				"accords dont les parties pourraient convenir. Dans le silence de leurs conventions, les parties se " +
				"réfèrent aux dispositions du contrat d'assurance telles stipulées dans le Livre I du CODE CIMA ainsi " +
				"que le CODE DES MARCHES PUBLIQUES au/ou l'Acte Uniforme portant organisation des sûretés en ses " +
				"articles 3 à 38.",
		}},
		{"Article 4 : Durée et entrée en vigueur du contrat", []string{
			"Le présent contrat est conclu pour la durée de soumission à l'appel d'offres pour la caution de " +
				"soumission jusqu'à l'adjudication de l'offre, toutefois il prend effet à partir de la signature du " +
				"contrat d'exécution des travaux et ce, jusqu'à la réception définitive des travaux.",
		}},
		{"Article 5 : Champ d'application", []string{
			"Sont garantis par l'Assureur caution et pouvant être demandés par le Donneur d'ordre au Garant, les " +
				"cautionnements ou garanties de soumission, d'avance de démarrage, de bonne exécution et de retenue " +
				"de garantie ou de toute autre nature ou appellation qui peuvent être demandés dans le marché de " +
				"références. Elles s'appliquent aux garanties qui sont demandées par le Donneur d'ordre au Garant " +
				"sont des personnes physiques ou morales, de droit public ou de droit privé, nationaux ou étrangers.",
		}},
	}},
	{"TITRE II : DELIVRANCE DES CAUTIONNEMENTS", []article{
		{"Article 6 : Demande de cautionnement- Documents à fournir", []string{
			"La délivrance des polices de cautionnement est faite sur demande du Donneur d'ordre. Cette demande " +
				"doit être accompagnée des pièces permettant au Garant d'émettre une offre, le cas échéant, son acte " +
				"de cautionnement conformément aux prescriptions du dossier d'appel d'offre (DAO). À titre " +
				"indicatif, le Donneur d'ordre devra accompagner sa demande :",
			"• Pour les cautionnements de soumission : une demande formelle, une copie du dossier particulier " +
				"d'appel d'offre (DPAO) et le modèle de l'acte de cautionnement à délivrer.",
			"• Pour les cautionnements d'avance de démarrage : une demande formelle, une copie du contrat de " +
				"marché signé entre le Donneur d'ordre et le Bénéficiaire/Maître d'ouvrage et le modèle de l'acte " +
				"de cautionnement à délivrer.",
			"• Pour les cautionnements de retenue de garantie : une demande formelle, une copie du procès-verbal " +
				"de réception provisoire des travaux et le modèle de l'acte de cautionnement à délivrer.",
			"• Pour les cautionnements de bonne exécution : une demande formelle, une copie du contrat de marché " +
				"signé entre le Donneur d'ordre et le Bénéficiaire/Maître d'ouvrage et le modèle de l'acte de " +
				"cautionnement à délivrer.",
		}},
		{"Article 7 : Délivrance des actes de cautionnement", []string{
			"Après étude du dossier du Donneur d'ordre, {insurer} délivre éventuellement le cautionnement qui lui " +
				"est demandé. En cas d'acceptation du Garant de la délivrance des actes de cautionnement dans les " +
				"conditions habituelles convenues avec le Donneur d'ordre. Le dernier est informé par {insurer} par " +
				"les moyens les plus rapides pour procéder aux retraits des actes de cautionnement à son siège. Au " +
				"cas où l'acceptation de la délivrance des cautionnements demandés est assujettie à des conditions " +
				"différentes de celles habituellement pratiquées, {insurer}, après en avoir informé le Donneur " +
				"d'ordre, est tenu de le lui notifier par lettre recommandée avec accusé de réception.",
		}},
		{"Article 8 : Modalités de délivrance des actes de cautionnement", []string{
			"Sauf convention expresse entre les parties, les actes de cautionnement sont délivrés après " +
				"satisfaction des conditions convenues entre les parties et paiement de la facture y afférente.",
		}},
	}},
	{"TITRE III : OBLIGATION DES PARTIES", []article{
		{"Article 9 : Obligation de diligence", []string{
			"Le Garant devra répondre avec diligence aux demandes de cautionnements qui lui sont faites par le " +
				"Donneur d'ordre. Il s'engage à lui donner une réponse dans les 5 jours ouvrés suivant la date du " +
				"dépôt de la demande et des documents complets et en pièces lui fournir.",
		}},
		{"Article 10 : Obligation de conformité", []string{
			"Le Garant s'oblige avant toute intervention relative à un acte de cautionnement d'en informer le " +
				"Donneur d'ordre par le transmission d'une copie de la correspondance du Bénéficiaire/Maître d'ouvrage.",
		}},
	}},
	{"TITRE IV : OBLIGATIONS DU DONNEUR D'ORDRE", []article{
		{"Article 11 : Obligation de paiement de primes", []string{
			"Le Donneur d'ordre est tenu au paiement de la prime qui constitue la rémunération de {insurer}. Sauf " +
				"convention expresse entre les parties, la prime est payée concomitamment au retrait des actes de " +
				"cautionnement au siège de {insurer} selon les dispositions de l'article 13 nouveau du CODE CIMA. " +
				"Une fois la prime payée, elle ne peut être restituée sauf si le Donneur d'ordre, pour des raisons " +
				"imputables au Bénéficiaire/Maître d'ouvrage de la caution ou au Garant, n'a pas pu jouir de " +
				"l'avantage du cautionnement. Dans ce dernier cas, la restitution portera sur la prime, exceptée les " +
				"droits d'ouverture de dossier. Il sera également tenu compte au délai pendant lequel le Donneur " +
				"d'ordre aura gardé par devers lui l'acte de cautionnement, tout trimestre commencé étant dû. Toute " +
				"augmentation de la durée de validité du cautionnement sera facturée au Donneur d'ordre qui devra " +
				"régler le complément de la prime, si la perception d'une prime complémentaire calculée prorata temporis.",
		}},
		{"Article 12 : Obligation de diligence", []string{
			"Le Donneur d'ordre s'oblige à exécuter le contrat pour lequel le Garant a donné son cautionnement " +
				"conformément aux prescriptions du Bénéficiaire/Maître d'ouvrage. Il s'engage à prendre toutes les " +
				"dispositions utiles pour qu'il ne puisse lui être reproché aucun manquement dans l'exécution des " +
				"obligations pour lesquelles il a obtenu le cautionnement du Garant. Le donneur d'ordre s'engage " +
				"pour toute la durée de la présente police à introduire auprès de {insurer} toute demande " +
				"d'augmentation de son cautionnement ou tout nouveau cautionnement exigé par le même " +
				"Bénéficiaire/Maître d'ouvrage conformément aux dispositions du Code des Assurances relatives aux " +
				"modifications substantielles des circonstances du contrat. Le fausse déclaration et intentionnelle " +
				"des capitaux pouvant donner lieu à l'application de la règle proportionnelle de capitaux sur des primes.",
		}},
		{"Article 13 : Obligation d'information", []string{
			"Le Donneur d'ordre s'oblige à tenir informé périodiquement le Garant des dispositions et/ou de l'œuvre " +
				"pour la bonne réalisation de laquelle lequel le Garant a pris le cautionnement de l'Assureur " +
				"Caution. Il est tenu également de convier l'Assureur Caution ou son préposé à visiter et inspecter " +
				"les chantiers et d'organiser avec les différentes parties prenantes la réalisation du marché " +
				"garanti. Le Donneur d'ordre s'engage en outre à fournir annuellement à l'Assureur Caution Garant " +
				"ses états financiers annuels certifiés ou approuvés par les organes de contrôle.",
		}},
	}},
	{"TITRE V : INTERVENTION ET RECOURS DE L'ASSUREUR CAUTION", []article{
		{"Article 14 : Intervention de l'Assureur caution", []string{
			"Lorsque le Bénéficiaire/Maître d'ouvrage demande l'intervention de l'Assureur Caution Garant, il en " +
				"fait information au Donneur d'ordre qui pourra lui faire opposition, à condition de présentation " +
				"de pièces régulières établissant l'exécution de ses obligations. Aussi, dans les 72 heures qui " +
				"suivent la réception de cette information, le Donneur d'ordre est tenu de faire part à l'Assureur " +
				"Caution de ses appréciations sur la demande du Bénéficiaire/Maître d'ouvrage. A défaut, l'Assureur " +
				"Caution se réserve le droit de répondre utilement à la demande du Bénéficiaire/Maître d'ouvrage. " +
				"Le Donneur d'ordre ne pourra opposer à l'Assureur Caution la montant toutes mesures conservatoires " +
				"au cas où il serait invité à intervenir comme caution ou dès qu'il est averti d'une défaillance du " +
				"donneur d'ordre vis-à-vis du Bénéficiaire/Maître d'ouvrage.",
		}},
		{"Article 15 : Indemnisation de l'Assureur Caution", []string{
			"En cas de paiement au Bénéficiaire/Maître d'ouvrage, le Donneur d'ordre est tenu de rembourser à " +
				"l'Assureur Caution le montant total de son intervention, y compris tous les frais et dépenses " +
				"judiciaires, extrajudiciaires. Dès l'instant qu'un paiement aura été effectué au " +
				"Bénéficiaire/Maître d'ouvrage, le Donneur d'ordre cède tout droit de créance à Assureur Caution, à " +
				"concurrence des montants payés. La notification au Donneur des pièces de paiement de {insurer} au " +
				"Bénéficiaire/Maître d'ouvrage vaudront pour le débiteur, une preuve de la cession. Il pourra, par " +
				"conséquent, se désintéresser toute réclamation de l'Assureur Caution.",
		}},
	}},
	{"TITRE VI : DISPOSITIONS FINALES", []article{
		{"Article 16 : Circulation du contrat", []string{
			"Le présent contrat est soumis au droit CIMA.",
		}},
		{"Article 17 : Résiliation du contrat", []string{
			"Le contrat peut être résilié par chacune des parties. La partie qui prend l'initiative de la " +
				"résiliation est tenue de servir à son cocontractant un préavis, trois (3) mois avant la fin de la " +
				"période annuelle en cours. Le contrat est également résilié de plein droit en cas de cessation " +
				"d'activités du Donneur d'ordre ou en cas d'un prononcé à son encontre d'un jugement de cessation " +
				"de paiement ou de la constatation de n'importe quel autre procédé destiné à lévier ou retracer.",
		}},
		{"Article 18 : Clause d'arbitrage", []string{
			"Tout différend ou contestation qui pourrait survenir entre les parties du fait ou au sujet de " +
				"l'application du présent contrat pourra être réglé à l'amiable ou par les instances compétentes " +
				"des Marchés Publics par la négociation sera soumis au Tribunal de Première Instance d'Abidjan.",
		}},
		{"Article 19 : Election de domicile", []string{
			"Pour l'exécution des présentes, les parties font élection de domicile à savoir :",
			"• {insurer}: Siège Social : {seat}",
			"• LE DONNEUR D'ORDRE, dont les références sont données aux Conditions Particulières",
		}},
	}},
}

const approvalConstitution = "La présente police est constituée par : Des Conditions Générales et des présentes " +
	"Conditions Particulières dont l'assuré reconnaît avoir reçu un exemplaire. Les conditions particulières " +
	"annulent et remplacent toutes dispositions des Conditions Générales qui seraient plus restrictives que " +
	"celles des conditions particulières ou qui présenteraient par rapport à celles-ci une divergence ou une " +
	"incompatibilité."

// approvalArticlesBeforeFinance and approvalArticlesAfterDeposit frame the
// financial and deposit articles the assembler builds from the quote.
var approvalArticlesBeforeFinance = []article{
	{"Article 1 – Objet de la Garantie", []string{
		"L'assureur se porte caution solidaire et principal débiteur du Souscripteur auprès du bénéficiaire, " +
			"pour Caution en Douane.",
	}},
	{"Article 2 – Engagement de l'Assureur", []string{
		"{insurer_short} s'engage à payer à première demande du bénéficiaire les sommes dues en cas de " +
			"défaillance de l'entreprise, dans la limite du montant garanti.",
	}},
}

var approvalArticlesAfterDeposit = []article{
	{"Article 5 – Obligation d'Information", []string{
		"Le donneur d'ordre doit :",
		"• Communiquer les justificatifs de décaissement",
	}},
	{"Article 6 – Retrait de l'Acte", []string{
		"Une fois l'acte retiré, la prime est acquise sauf cas de force majeure empêchant l'utilisation. Les " +
			"frais d'étude et de dossier restent dus.",
	}},
	{"Article 7 – Subrogation", []string{
		"L'assureur est subrogé dans les droits du bénéficiaire en cas de paiement. Le Souscripteur perd le " +
			"bénéfice de la garantie s'il empêche la subrogation.",
	}},
	{"Article 8 – Durée de la Garantie", []string{
		"**La caution est valable du {effect} au {expiry}, sauf libération anticipée.**",
	}},
	{"Article 9 – Conditions d'Appel de la Garantie", []string{
		"**La garantie est appelée en cas de défaillance avérée de l'entreprise : incapacité à exécuter le " +
			"contrat ou rembourser l'avance non amortie, notamment en cas de redressement, liquidation ou force majeure.**",
	}},
	{"ARTICLE 10 : Restitution du déposit :", []string{
		"Au cas où un dépôt est constitué dans les livres de **{insurer}**, la restitution se fera sur demande " +
			"expresse du Donneur d'Ordre. Cette demande doit être accompagnée de **l'original de l'acte de " +
			"cautionnement délivré avec la mention « bon pour mainlevée » ou de l'acte de mainlevée délivré par le " +
			"bénéficiaire.**",
		"Les sommes dues par le Donneur d'Ordre sont prélevées d'office sur le dépôt, le solde lui étant restitué.",
	}},
	{"Article 11 – Exclusions", []string{
		"• **Non-respect des obligations contractuelles en dehors des cas prévus**",
		"• **Utilisation détournée de l'avance par le Souscripteur.**",
	}},
}
