package nlp

import "fmt"

// DefaultSuggestion is offered when a message carries no usable signal.
const DefaultSuggestion = "Comment puis-je vous aider avec les primes et subsides ?"

// categorySuggestions maps intent categories to their follow-up prompts.
var categorySuggestions = map[Category][]string{
	CategoryIsolation: {
		"Voulez-vous connaître les primes pour l'isolation de votre région ?",
		"Souhaitez-vous calculer le montant exact de vos primes ?",
	},
	CategoryChauffage: {
		"Quel type de chauffage vous intéresse ?",
		"Voulez-vous comparer les différentes options ?",
	},
	CategoryAideFinanciere: {
		"Souhaitez-vous une estimation personnalisée ?",
		"Voulez-vous connaître toutes les aides disponibles ?",
	},
	CategoryProcedure: {
		"Voulez-vous que je vous guide étape par étape ?",
		"Souhaitez-vous être mis en contact avec un expert ?",
	},
}

// Suggester maps an intent and its entities to follow-up prompts.
type Suggester struct{}

// NewSuggester creates a suggestion generator.
func NewSuggester() *Suggester {
	return &Suggester{}
}

// Suggest returns the deduplicated follow-up prompts for the classified
// intent, extended with prompts driven by the detected entities.
func (s *Suggester) Suggest(intent IntentResult, entities EntityBundle) []string {
	suggestions := []string{}
	seen := make(map[string]bool)

	add := func(text string) {
		if !seen[text] {
			seen[text] = true
			suggestions = append(suggestions, text)
		}
	}

	for _, text := range categorySuggestions[intent.Category] {
		add(text)
	}

	if len(entities.Regions) > 0 {
		add(fmt.Sprintf("Je peux vous donner des informations spécifiques à la %s", entities.Regions[0]))
	}
	if entities.HasContactPref(ContactHuman) {
		add("Voulez-vous être contacté par un expert humain ?")
	}

	return suggestions
}
