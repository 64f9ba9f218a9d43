package nlp

// Category is a fixed intent label describing what a user message is about.
type Category string

const (
	CategoryIsolation           Category = "isolation"
	CategoryChauffage           Category = "chauffage"
	CategoryRenovationGenerale  Category = "renovation_generale"
	CategoryEnergieRenouvelable Category = "energie_renouvelable"
	CategoryAideFinanciere      Category = "aide_financiere"
	CategoryProcedure           Category = "procedure"
	CategoryInformationGenerale Category = "information_generale"
)

// FallbackCategory is assigned when no taxonomy category scores above zero.
const FallbackCategory = CategoryInformationGenerale

// TaxonomyEntry is one weighted category definition. Keywords contribute the
// full weight, synonyms a reduced one.
type TaxonomyEntry struct {
	Category Category
	Keywords []string
	Synonyms []string
	Weight   float64
}

// Taxonomy is the full category table. It is built once at startup and never
// mutated; entry order is significant because score ties break toward the
// earlier-declared category.
type Taxonomy struct {
	entries []TaxonomyEntry
}

// NewTaxonomy builds a taxonomy from entries, preserving declaration order.
func NewTaxonomy(entries []TaxonomyEntry) Taxonomy {
	copied := make([]TaxonomyEntry, len(entries))
	copy(copied, entries)
	return Taxonomy{entries: copied}
}

// Entries returns the entries in declaration order.
func (t Taxonomy) Entries() []TaxonomyEntry {
	return t.entries
}

// DefaultTaxonomy returns the subsidy-domain taxonomy: intent categories for
// Belgian renovation aid, with French keywords and synonyms.
func DefaultTaxonomy() Taxonomy {
	return NewTaxonomy([]TaxonomyEntry{
		{
			Category: CategoryIsolation,
			Keywords: []string{"isoler", "isolation", "isolant", "combles", "murs", "façade", "toiture", "laine", "verre", "polyurethane"},
			// "isoler" appears in both lists and scores as keyword and synonym.
			Synonyms: []string{"isoler", "calorifuger", "thermique", "phonique"},
			Weight:   1.0,
		},
		{
			Category: CategoryChauffage,
			Keywords: []string{"chauffage", "chaudière", "pompe", "chaleur", "gaz", "mazout", "électrique", "radiateurs"},
			Synonyms: []string{"heating", "climatisation", "ventilation"},
			Weight:   1.0,
		},
		{
			Category: CategoryRenovationGenerale,
			Keywords: []string{"rénover", "rénovation", "travaux", "maison", "appartement", "logement", "réhabilitation"},
			Synonyms: []string{"restaurer", "moderniser", "transformer"},
			Weight:   0.8,
		},
		{
			Category: CategoryEnergieRenouvelable,
			Keywords: []string{"solaire", "photovoltaique", "eolienne", "biomasse", "géothermie"},
			Synonyms: []string{"renouvelable", "verte", "écologique"},
			Weight:   1.0,
		},
		{
			Category: CategoryAideFinanciere,
			Keywords: []string{"prime", "subside", "aide", "financement", "crédit", "prêt", "montant", "budget"},
			Synonyms: []string{"subsides", "primes", "allocations"},
			Weight:   0.9,
		},
		{
			Category: CategoryProcedure,
			Keywords: []string{"comment", "démarche", "procédure", "étapes", "dossier", "formulaire"},
			Synonyms: []string{"process", "faire", "obtenir", "demander"},
			Weight:   0.7,
		},
		{
			Category: CategoryInformationGenerale,
			Keywords: []string{"qui", "équipe", "entreprise", "société", "contact", "téléphone"},
			Synonyms: []string{"about", "propos", "informations"},
			Weight:   0.5,
		},
	})
}
