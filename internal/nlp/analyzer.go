package nlp

import (
	"strings"

	"github.com/primes-services/primes-intent/internal/logger"
)

// Analysis is the full understanding of one user message: its intent, the
// entities it carries, the caller's behavioral profile, a composed confidence
// score and suggested follow-ups.
type Analysis struct {
	OriginalMessage string        `json:"original_message"`
	CleanedMessage  string        `json:"cleaned_message"`
	Intent          IntentResult  `json:"intent"`
	Entities        EntityBundle  `json:"entities"`
	UserContext     ContextSignal `json:"user_context"`
	Confidence      float64       `json:"confidence"`
	Suggestions     []string      `json:"suggestions"`
}

// Analyzer runs the classification and extraction pipeline over a message.
// All stages are pure; the analyzer is safe for concurrent use.
type Analyzer struct {
	classifier *Classifier
	extractor  *Extractor
	context    *ContextAnalyzer
	suggester  *Suggester
	logger     logger.Logger
}

// NewAnalyzer wires the pipeline over an immutable taxonomy.
func NewAnalyzer(taxonomy Taxonomy, log logger.Logger) *Analyzer {
	return &Analyzer{
		classifier: NewClassifier(taxonomy),
		extractor:  NewExtractor(),
		context:    NewContextAnalyzer(),
		suggester:  NewSuggester(),
		logger:     log.With(map[string]interface{}{"component": "nlp"}),
	}
}

// Analyze classifies the message, extracts its entities and composes the
// overall confidence. Blank input yields the default analysis — fallback
// category, confidence exactly zero, one default suggestion — never an error.
func (a *Analyzer) Analyze(message string, profile UserProfile) Analysis {
	if strings.TrimSpace(message) == "" {
		return DefaultAnalysis()
	}

	intent := a.classifier.Classify(message)
	entities := a.extractor.Extract(message)
	signal := a.context.Analyze(profile)

	analysis := Analysis{
		OriginalMessage: message,
		CleanedMessage:  Normalize(message),
		Intent:          intent,
		Entities:        entities,
		UserContext:     signal,
		Confidence:      ComposeConfidence(intent.Confidence, entities, signal),
		Suggestions:     a.suggester.Suggest(intent, entities),
	}

	a.logger.Debug("message analyzed", map[string]interface{}{
		"category":     intent.Category,
		"questionType": intent.QuestionType,
		"confidence":   analysis.Confidence,
		"entitySlots":  entities.NonEmptySlots(),
	})

	return analysis
}

// DefaultAnalysis is the fixed result for blank input. Distinct from the
// classifier's internal fallback: here the confidence is exactly zero.
func DefaultAnalysis() Analysis {
	return Analysis{
		Intent: IntentResult{
			Category:     FallbackCategory,
			Confidence:   0.0,
			AllScores:    map[Category]float64{},
			MatchedTerms: nil,
			QuestionType: Statement,
		},
		Entities: EntityBundle{
			Regions:       []Region{},
			PropertyTypes: []PropertyType{},
			Amounts:       []Amount{},
			Timeframes:    []Timeframe{},
			ContactPrefs:  []ContactPref{},
		},
		Confidence:  0.0,
		Suggestions: []string{DefaultSuggestion},
	}
}
