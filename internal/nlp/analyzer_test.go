package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primes-services/primes-intent/internal/logger"
)

func TestExpertiseLevelThresholds(t *testing.T) {
	analyzer := NewContextAnalyzer()

	tests := []struct {
		interactions int
		expected     ExpertiseLevel
	}{
		{0, ExpertiseBeginner},
		{3, ExpertiseBeginner},
		{4, ExpertiseIntermediate},
		{10, ExpertiseIntermediate},
		{11, ExpertiseExpert},
		{100, ExpertiseExpert},
	}

	for _, tt := range tests {
		signal := analyzer.Analyze(UserProfile{
			UserType:         UserParticulier,
			InteractionCount: tt.interactions,
		})
		assert.Equal(t, tt.expected, signal.ExpertiseLevel, "interactions=%d", tt.interactions)
	}
}

func TestContextAnalyzerProfiles(t *testing.T) {
	analyzer := NewContextAnalyzer()

	tests := []struct {
		userType   UserType
		focus      Focus
		complexity Complexity
	}{
		{UserParticulier, FocusIndividualSubsidies, ComplexitySimple},
		{UserACP, FocusBuildingManagement, ComplexityMedium},
		{UserEntrepriseImmo, FocusBusinessSubsidies, ComplexityAdvanced},
		{UserEntrepriseComm, FocusBusinessSubsidies, ComplexityAdvanced},
		{UserType("inconnu"), FocusGeneralInformation, ComplexitySimple},
		{UserType(""), FocusGeneralInformation, ComplexitySimple},
	}

	for _, tt := range tests {
		t.Run(string(tt.userType), func(t *testing.T) {
			signal := analyzer.Analyze(UserProfile{UserType: tt.userType, Region: RegionWallonie})
			assert.Equal(t, tt.focus, signal.Focus)
			assert.Equal(t, tt.complexity, signal.Complexity)
			assert.Equal(t, RegionWallonie, signal.Region)
		})
	}
}

func TestComposeConfidence(t *testing.T) {
	withRegion := EntityBundle{Regions: []Region{RegionWallonie}}
	withTwoSlots := EntityBundle{
		Regions: []Region{RegionWallonie},
		Amounts: []Amount{{Value: 5000, Currency: "EUR", Context: AmountMentioned}},
	}

	t.Run("entity slots add a fixed bonus", func(t *testing.T) {
		base := ComposeConfidence(0.5, EntityBundle{}, ContextSignal{})
		one := ComposeConfidence(0.5, withRegion, ContextSignal{})
		two := ComposeConfidence(0.5, withTwoSlots, ContextSignal{})

		assert.InDelta(t, 0.5, base, 1e-9)
		assert.InDelta(t, 0.6, one, 1e-9)
		assert.InDelta(t, 0.7, two, 1e-9)
	})

	t.Run("returning users add one bonus", func(t *testing.T) {
		fresh := ComposeConfidence(0.5, EntityBundle{}, ContextSignal{PriorInteractions: 0})
		returning := ComposeConfidence(0.5, EntityBundle{}, ContextSignal{PriorInteractions: 1})
		veteran := ComposeConfidence(0.5, EntityBundle{}, ContextSignal{PriorInteractions: 50})

		assert.InDelta(t, 0.5, fresh, 1e-9)
		assert.InDelta(t, 0.6, returning, 1e-9)
		assert.InDelta(t, 0.6, veteran, 1e-9)
	})

	t.Run("clamped at one", func(t *testing.T) {
		score := ComposeConfidence(1.0, withTwoSlots, ContextSignal{PriorInteractions: 5})
		assert.Equal(t, 1.0, score)
	})

	t.Run("monotone in the intent confidence", func(t *testing.T) {
		low := ComposeConfidence(0.3, withRegion, ContextSignal{})
		high := ComposeConfidence(0.9, withRegion, ContextSignal{})
		assert.Less(t, low, high)
	})
}

func TestAnalyzeBlankInput(t *testing.T) {
	analyzer := NewAnalyzer(DefaultTaxonomy(), logger.NewNoOpLogger())

	for _, input := range []string{"", "   ", "\n\t"} {
		analysis := analyzer.Analyze(input, UserProfile{})

		assert.Equal(t, FallbackCategory, analysis.Intent.Category, "input: %q", input)
		assert.Equal(t, 0.0, analysis.Confidence, "input: %q", input)
		assert.Equal(t, 0.0, analysis.Intent.Confidence, "input: %q", input)
		assert.Equal(t, []string{DefaultSuggestion}, analysis.Suggestions, "input: %q", input)
		assert.NotNil(t, analysis.Entities.Regions, "input: %q", input)
		assert.Equal(t, 0, analysis.Entities.NonEmptySlots(), "input: %q", input)
	}
}

func TestAnalyzeIsolationScenario(t *testing.T) {
	analyzer := NewAnalyzer(DefaultTaxonomy(), logger.NewNoOpLogger())

	analysis := analyzer.Analyze("Je veux isoler ma toiture, combien ça coûte ?", UserProfile{
		UserType: UserParticulier,
	})

	assert.Equal(t, CategoryIsolation, analysis.Intent.Category)
	assert.Equal(t, QuestionAmount, analysis.Intent.QuestionType)
	assert.Greater(t, analysis.Confidence, 0.5)
	assert.Empty(t, analysis.Entities.PropertyTypes)
	assert.Empty(t, analysis.Entities.Amounts)
	assert.Equal(t, categorySuggestions[CategoryIsolation], analysis.Suggestions)
	assert.Equal(t, FocusIndividualSubsidies, analysis.UserContext.Focus)
}

func TestSuggestEntityDriven(t *testing.T) {
	suggester := NewSuggester()

	t.Run("region prompt appended", func(t *testing.T) {
		suggestions := suggester.Suggest(
			IntentResult{Category: CategoryIsolation},
			EntityBundle{Regions: []Region{RegionWallonie}},
		)
		require.Len(t, suggestions, 3)
		assert.Contains(t, suggestions[2], "wallonie")
	})

	t.Run("human contact prompt appended", func(t *testing.T) {
		suggestions := suggester.Suggest(
			IntentResult{Category: CategoryProcedure},
			EntityBundle{ContactPrefs: []ContactPref{ContactHuman}},
		)
		require.NotEmpty(t, suggestions)
		assert.Equal(t, "Voulez-vous être contacté par un expert humain ?", suggestions[len(suggestions)-1])
	})

	t.Run("category without prompts yields empty slice", func(t *testing.T) {
		suggestions := suggester.Suggest(IntentResult{Category: CategoryInformationGenerale}, EntityBundle{})
		assert.NotNil(t, suggestions)
		assert.Empty(t, suggestions)
	})
}
