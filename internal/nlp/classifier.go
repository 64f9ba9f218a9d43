package nlp

import "regexp"

// QuestionType describes the grammatical shape of a message, detected
// independently of its intent category.
type QuestionType string

const (
	QuestionAmount      QuestionType = "question_amount"
	QuestionHow         QuestionType = "question_how"
	QuestionEligibility QuestionType = "question_eligibility"
	QuestionWhere       QuestionType = "question_where"
	QuestionWhen        QuestionType = "question_when"
	QuestionWhat        QuestionType = "question_what"
	RequestCalculation  QuestionType = "request_calculation"
	Statement           QuestionType = "statement"
)

// MatchedTerms records which keywords and synonyms of one category were
// present in a message.
type MatchedTerms struct {
	Category Category `json:"category"`
	Keywords []string `json:"keywords"`
	Synonyms []string `json:"synonyms"`
}

// IntentResult is the immutable outcome of classifying one message.
//
// Confidence is clamped to [0,1]; AllScores carries the raw accumulated
// scores, which are unbounded when many terms of one category co-occur.
type IntentResult struct {
	Category     Category             `json:"category"`
	Confidence   float64              `json:"confidence"`
	AllScores    map[Category]float64 `json:"all_scores"`
	MatchedTerms []MatchedTerms       `json:"matched_terms"`
	QuestionType QuestionType         `json:"question_type"`
}

const (
	// synonymFactor discounts synonym matches relative to keyword matches.
	synonymFactor = 0.7
	// corroborationBonus compounds per extra matched term within a category.
	corroborationBonus = 0.2
	// fallbackConfidence is assigned when nothing scores above zero.
	fallbackConfidence = 0.3
)

// questionPatterns are evaluated in priority order; the first match wins.
var questionPatterns = []struct {
	qtype   QuestionType
	pattern *regexp.Regexp
}{
	{QuestionAmount, regexp.MustCompile(`(?i)combien|montant|prix|coût|euros?|€`)},
	{QuestionHow, regexp.MustCompile(`(?i)comment|procédure|démarche|étapes`)},
	{QuestionEligibility, regexp.MustCompile(`(?i)puis-je|ai-je droit|éligible|conditions`)},
	{QuestionWhere, regexp.MustCompile(`(?i)où|adresse|contact|bureau`)},
	{QuestionWhen, regexp.MustCompile(`(?i)quand|délai|temps|durée`)},
	{QuestionWhat, regexp.MustCompile(`(?i)qu(e|oi)|quel`)},
	{RequestCalculation, regexp.MustCompile(`(?i)calculer|estimer|simulation`)},
}

// Classifier scores messages against an immutable taxonomy. Safe for
// concurrent use.
type Classifier struct {
	taxonomy Taxonomy
}

// NewClassifier creates a classifier over the given taxonomy.
func NewClassifier(taxonomy Taxonomy) *Classifier {
	return &Classifier{taxonomy: taxonomy}
}

// Classify scores the message against every category and returns the winner.
// Ties break toward the category declared earlier in the taxonomy. A message
// matching nothing falls back to FallbackCategory with a fixed low
// confidence, never zero.
func (c *Classifier) Classify(text string) IntentResult {
	tokens := Tokenize(text)
	tokenSet := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = true
	}

	allScores := make(map[Category]float64)
	var matched []MatchedTerms

	best := FallbackCategory
	bestScore := 0.0
	found := false

	for _, entry := range c.taxonomy.Entries() {
		score, keywords, synonyms := scoreCategory(entry, tokenSet)
		if score <= 0 {
			continue
		}
		allScores[entry.Category] = score
		matched = append(matched, MatchedTerms{
			Category: entry.Category,
			Keywords: keywords,
			Synonyms: synonyms,
		})
		// Strict comparison keeps the earlier-declared category on a tie.
		if !found || score > bestScore {
			best = entry.Category
			bestScore = score
			found = true
		}
	}

	confidence := fallbackConfidence
	if found {
		confidence = bestScore
		if confidence > 1.0 {
			confidence = 1.0
		}
	}

	return IntentResult{
		Category:     best,
		Confidence:   confidence,
		AllScores:    allScores,
		MatchedTerms: matched,
		QuestionType: DetectQuestionType(text),
	}
}

// scoreCategory accumulates the weighted score of one taxonomy entry against
// the message tokens. Multiple matched terms compound the score by
// 1 + corroborationBonus per extra match; the growth is deliberately
// unbounded to stay compatible with historical scoring.
func scoreCategory(entry TaxonomyEntry, tokens map[string]bool) (float64, []string, []string) {
	score := 0.0
	var keywords, synonyms []string

	for _, kw := range entry.Keywords {
		if tokens[kw] {
			score += entry.Weight
			keywords = append(keywords, kw)
		}
	}
	for _, syn := range entry.Synonyms {
		if tokens[syn] {
			score += entry.Weight * synonymFactor
			synonyms = append(synonyms, syn)
		}
	}

	matches := len(keywords) + len(synonyms)
	if matches > 1 {
		score *= 1 + corroborationBonus*float64(matches-1)
	}

	return score, keywords, synonyms
}

// DetectQuestionType matches the raw message against the fixed pattern list,
// first match wins; no match yields Statement.
func DetectQuestionType(text string) QuestionType {
	for _, qp := range questionPatterns {
		if qp.pattern.MatchString(text) {
			return qp.qtype
		}
	}
	return Statement
}
