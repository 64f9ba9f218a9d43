package nlp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyConfidenceBounds(t *testing.T) {
	classifier := NewClassifier(DefaultTaxonomy())

	inputs := []string{
		"",
		"    ",
		"bonjour",
		"Je veux isoler ma toiture",
		"isolation isolation isolation toiture combles murs façade laine verre",
		"prime subside aide financement crédit prêt montant budget",
		"!!! ??? ...",
		strings.Repeat("chauffage chaudière pompe chaleur ", 50),
	}

	for _, input := range inputs {
		result := classifier.Classify(input)
		assert.GreaterOrEqual(t, result.Confidence, 0.0, "input: %q", input)
		assert.LessOrEqual(t, result.Confidence, 1.0, "input: %q", input)
		assert.NotEmpty(t, result.Category, "input: %q", input)
	}
}

func TestClassifyFallbackCategory(t *testing.T) {
	classifier := NewClassifier(DefaultTaxonomy())

	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"no matching terms", "bonjour tout le monde"},
		{"punctuation only", "?!#@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifier.Classify(tt.input)
			assert.Equal(t, FallbackCategory, result.Category)
			assert.Equal(t, fallbackConfidence, result.Confidence)
			assert.Empty(t, result.AllScores)
		})
	}
}

func TestClassifyPrimaryCategories(t *testing.T) {
	classifier := NewClassifier(DefaultTaxonomy())

	tests := []struct {
		name     string
		input    string
		category Category
	}{
		{"isolation", "Je veux isoler ma toiture", CategoryIsolation},
		{"chauffage", "ma chaudière est en panne, quel chauffage choisir", CategoryChauffage},
		{"renovation", "nous voulons rénover notre logement", CategoryRenovationGenerale},
		{"energie renouvelable", "installer des panneaux solaire et géothermie", CategoryEnergieRenouvelable},
		{"aide financiere", "quel subside ou prêt pour mon financement", CategoryAideFinanciere},
		{"procedure", "quelles sont les étapes du dossier et le formulaire", CategoryProcedure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifier.Classify(tt.input)
			assert.Equal(t, tt.category, result.Category)
			assert.Greater(t, result.AllScores[tt.category], 0.0)
		})
	}
}

func TestClassifySynonymDiscount(t *testing.T) {
	taxonomy := NewTaxonomy([]TaxonomyEntry{
		{Category: "alpha", Keywords: []string{"kilo"}, Synonyms: []string{"syno"}, Weight: 1.0},
	})
	classifier := NewClassifier(taxonomy)

	keyword := classifier.Classify("kilo")
	synonym := classifier.Classify("syno")

	assert.InDelta(t, 1.0, keyword.AllScores["alpha"], 1e-9)
	assert.InDelta(t, 0.7, synonym.AllScores["alpha"], 1e-9)
}

func TestClassifyTieBreakIsDeclarationOrder(t *testing.T) {
	// Both categories match the same token with the same weight, forcing an
	// exact score tie. The earlier-declared category must win every time.
	taxonomy := NewTaxonomy([]TaxonomyEntry{
		{Category: "first", Keywords: []string{"zebra"}, Weight: 1.0},
		{Category: "second", Keywords: []string{"zebra"}, Weight: 1.0},
	})
	classifier := NewClassifier(taxonomy)

	for i := 0; i < 100; i++ {
		result := classifier.Classify("zebra")
		require.Equal(t, Category("first"), result.Category, "run %d", i)
		require.InDelta(t, result.AllScores["first"], result.AllScores["second"], 1e-9)
	}
}

func TestClassifyCorroborationBonusIsUnbounded(t *testing.T) {
	// Characterizes the historical scoring: n matches of weight w score
	// n*w*(1+0.2*(n-1)), with no upper bound. Four isolation keywords give
	// 4 * 1.0 * 1.6 = 6.4 raw.
	classifier := NewClassifier(DefaultTaxonomy())

	result := classifier.Classify("isolation toiture combles murs")
	assert.InDelta(t, 6.4, result.AllScores[CategoryIsolation], 1e-9)
	// The reported confidence stays clamped even when the raw score explodes.
	assert.Equal(t, 1.0, result.Confidence)

	// Keyword stuffing grows the raw score without limit.
	stuffed := classifier.Classify("isolation isolant combles murs façade toiture laine verre polyurethane")
	assert.Greater(t, stuffed.AllScores[CategoryIsolation], result.AllScores[CategoryIsolation])
}

func TestClassifyMatchedTerms(t *testing.T) {
	classifier := NewClassifier(DefaultTaxonomy())

	result := classifier.Classify("isoler la toiture avec une bonne isolation thermique")

	require.NotEmpty(t, result.MatchedTerms)
	var isolation *MatchedTerms
	for i := range result.MatchedTerms {
		if result.MatchedTerms[i].Category == CategoryIsolation {
			isolation = &result.MatchedTerms[i]
		}
	}
	require.NotNil(t, isolation)
	assert.ElementsMatch(t, []string{"isoler", "toiture", "isolation"}, isolation.Keywords)
	assert.ElementsMatch(t, []string{"isoler", "thermique"}, isolation.Synonyms)
}

func TestClassifyTermListedAsKeywordAndSynonym(t *testing.T) {
	// "isoler" is in both isolation lists, so on its own it scores
	// (1.0 + 0.7) * 1.2 = 2.04 and outranks two renovation keywords at
	// 2 * 0.8 * 1.2 = 1.92.
	classifier := NewClassifier(DefaultTaxonomy())

	result := classifier.Classify("isoler travaux maison")

	assert.Equal(t, CategoryIsolation, result.Category)
	assert.InDelta(t, 2.04, result.AllScores[CategoryIsolation], 1e-9)
	assert.InDelta(t, 1.92, result.AllScores[CategoryRenovationGenerale], 1e-9)
}

func TestDetectQuestionType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected QuestionType
	}{
		{"amount", "Combien ça coûte ?", QuestionAmount},
		{"amount via euro sign", "j'ai 5000€ de budget", QuestionAmount},
		{"how", "Comment introduire mon dossier ?", QuestionHow},
		{"eligibility", "Ai-je droit aux primes ?", QuestionEligibility},
		{"where", "Où se trouve votre bureau ?", QuestionWhere},
		{"when", "Quand vais-je recevoir la prime, quel délai ?", QuestionWhen},
		{"what", "Quel type de travaux sont couverts ?", QuestionWhat},
		{"calculation", "Faites-moi une simulation", RequestCalculation},
		{"statement", "Je possède une villa.", Statement},
		{"empty", "", Statement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectQuestionType(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "ISOLER", "isoler"},
		{"keeps diacritics", "Chaudière À Condensation", "chaudière à condensation"},
		{"strips punctuation", "combien, ça coûte ?!", "combien ça coûte"},
		{"collapses whitespace", "  isoler    ma   toiture  ", "isoler ma toiture"},
		{"keeps hyphens", "rendez-vous", "rendez-vous"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}
