package regions

// Topic keys into a region's official URL table.
const (
	TopicMain            = "main"
	TopicIsolation       = "isolation"
	TopicChauffage       = "chauffage"
	TopicRenovation      = "renovation"
	TopicPrimeHabitation = "prime_habitation"
	TopicAuditEnergie    = "audit_energetique"
	TopicEnergie         = "energie"
	TopicPrimes          = "primes"
	TopicRenolution      = "renolution"
)

// Facts describes one region's subsidy landscape: the competent authority,
// its flagship programs and the official reference links.
type Facts struct {
	Name         string            `json:"name"`
	Authority    string            `json:"authority"`
	Language     string            `json:"language"`
	Programs     []string          `json:"specific_programs"`
	ContactInfo  string            `json:"contact_info"`
	OfficialURLs map[string]string `json:"official_urls"`
	KeyInfo      string            `json:"key_info"`
}

// Provider is a pure lookup over the fixed regional table. An unknown or
// empty region yields the national fallback, never an error.
type Provider struct {
	table    map[string]Facts
	fallback Facts
}

// NewProvider builds the provider over the built-in regional table.
func NewProvider() *Provider {
	return &Provider{
		table: map[string]Facts{
			"wallonie": {
				Name:        "Wallonie",
				Authority:   "Région wallonne",
				Language:    "fr",
				Programs:    []string{"Rénopack", "Prime Habitation", "Audits énergétiques"},
				ContactInfo: "Service Public de Wallonie",
				OfficialURLs: map[string]string{
					TopicMain:            "https://energie.wallonie.be/",
					TopicPrimeHabitation: "https://energie.wallonie.be/fr/prime-habitation.html",
					TopicAuditEnergie:    "https://energie.wallonie.be/fr/audit-energetique-et-architectural.html",
					TopicIsolation:       "https://energie.wallonie.be/fr/prime-isolation.html",
					TopicChauffage:       "https://energie.wallonie.be/fr/prime-chauffage.html",
					TopicRenovation:      "https://energie.wallonie.be/fr/prime-renovation.html",
				},
				KeyInfo: "Référez-vous toujours aux informations officielles du Service Public de Wallonie pour les montants et conditions exactes.",
			},
			"flandre": {
				Name:        "Flandre",
				Authority:   "Vlaams Gewest",
				Language:    "nl",
				Programs:    []string{"Vlaamse renovatiepremie", "Energiepremie"},
				ContactInfo: "Vlaams Energie- en Klimaatagentschap",
				OfficialURLs: map[string]string{
					TopicMain:       "https://www.vlaanderen.be/",
					TopicRenovation: "https://www.vlaanderen.be/premies-voor-verbouwingen",
					TopicEnergie:    "https://www.vlaanderen.be/bouwen-wonen-en-energie",
					TopicIsolation:  "https://www.vlaanderen.be/premie-voor-isolatie",
					TopicChauffage:  "https://www.vlaanderen.be/premie-voor-verwarmingsinstallatie",
				},
				KeyInfo: "Verwijs altijd naar de officiële informatie van de Vlaamse overheid voor exacte bedragen en voorwaarden.",
			},
			"bruxelles": {
				Name:        "Bruxelles-Capitale",
				Authority:   "Région de Bruxelles-Capitale",
				Language:    "fr/nl",
				Programs:    []string{"Prime Renolution", "Prime énergie"},
				ContactInfo: "Bruxelles Environnement",
				OfficialURLs: map[string]string{
					TopicMain:       "https://www.bruxellesenvironnement.be/",
					TopicPrimes:     "https://www.bruxellesenvironnement.be/particuliers/mes-aides-financieres-et-primes",
					TopicRenolution: "https://www.renolution.brussels/",
					TopicIsolation:  "https://www.bruxellesenvironnement.be/particuliers/mes-aides-financieres-et-primes/prime-energie/isolation",
					TopicChauffage:  "https://www.bruxellesenvironnement.be/particuliers/mes-aides-financieres-et-primes/prime-energie/chauffage",
				},
				KeyInfo: "Référez-vous toujours aux informations officielles de Bruxelles Environnement pour les montants et conditions exactes.",
			},
		},
		fallback: Facts{
			Name:         "Belgique",
			Authority:    "National",
			Language:     "fr/nl",
			Programs:     []string{},
			ContactInfo:  "Service fédéral",
			OfficialURLs: map[string]string{},
			KeyInfo:      "Veuillez spécifier votre région pour obtenir des informations précises sur les primes disponibles.",
		},
	}
}

// Lookup returns the facts for a region key, or the national fallback when
// the key is empty or unknown.
func (p *Provider) Lookup(regionKey string) Facts {
	if facts, ok := p.table[regionKey]; ok {
		return facts
	}
	return p.fallback
}

// Known reports whether the key maps to a specific region.
func (p *Provider) Known(regionKey string) bool {
	_, ok := p.table[regionKey]
	return ok
}
