package enhancer

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/primes-services/primes-intent/internal/models"
	"github.com/primes-services/primes-intent/internal/nlp"
	"github.com/primes-services/primes-intent/internal/regions"
)

// Enhanced is the post-processed model reply: content with appended source
// citations, suggested actions and a coarse response type.
type Enhanced struct {
	Content      string
	Actions      []models.Action
	ResponseType string
}

// Response types recognized in reply content.
const (
	ResponseCalculation = "calculation"
	ResponseProcedure   = "procedure"
	ResponseInformation = "information"
	ResponseGeneral     = "general"
)

var (
	calculationPattern = regexp.MustCompile(`(?i)€|EUR|euros?`)
	procedurePattern   = regexp.MustCompile(`(?i)étapes?|démarches?|procédure`)
	informationPattern = regexp.MustCompile(`(?i)conditions?|critères?`)
)

// link is one source citation candidate.
type link struct {
	text string
	url  string
}

// intentTopics maps each intent category to the regional URL topics cited
// for it. Unmapped categories get only the region's main link.
var intentTopics = map[nlp.Category][]struct {
	topic string
	label string
}{
	nlp.CategoryIsolation: {
		{regions.TopicIsolation, "Prime isolation"},
	},
	nlp.CategoryChauffage: {
		{regions.TopicChauffage, "Prime chauffage"},
	},
	nlp.CategoryRenovationGenerale: {
		{regions.TopicRenovation, "Prime rénovation"},
		{regions.TopicPrimeHabitation, "Prime habitation"},
	},
	nlp.CategoryAideFinanciere: {
		{regions.TopicRenovation, "Prime rénovation"},
		{regions.TopicPrimeHabitation, "Prime habitation"},
	},
}

// Enhancer turns raw model replies into actionable, source-annotated
// responses.
type Enhancer struct {
	renovateBaseURL string
	contactEmail    string
}

// New creates an enhancer.
func New(renovateBaseURL, contactEmail string) *Enhancer {
	return &Enhancer{renovateBaseURL: renovateBaseURL, contactEmail: contactEmail}
}

// Enhance appends official source links resolved for the intent and region,
// attaches the suggested actions and classifies the reply. Links are never
// fabricated: an intent/region pair with no mapped URL simply cites nothing.
func (e *Enhancer) Enhance(rawText string, intent nlp.IntentResult, facts regions.Facts, userType, userRegion string) Enhanced {
	return Enhanced{
		Content:      appendOfficialLinks(rawText, intent.Category, facts),
		Actions:      e.buildActions(intent.Category, userType, userRegion),
		ResponseType: DetectResponseType(rawText),
	}
}

// appendOfficialLinks adds the fixed-format sources section when at least
// one link resolves for this intent and region.
func appendOfficialLinks(content string, category nlp.Category, facts regions.Facts) string {
	if len(facts.OfficialURLs) == 0 {
		return content
	}

	var links []link
	seen := make(map[string]bool)

	add := func(text, u string) {
		if u != "" && !seen[u] {
			seen[u] = true
			links = append(links, link{text: text, url: u})
		}
	}

	for _, spec := range intentTopics[category] {
		add(spec.label, facts.OfficialURLs[spec.topic])
	}
	add("Site officiel "+facts.Name, facts.OfficialURLs[regions.TopicMain])

	if len(links) == 0 {
		return content
	}

	var b strings.Builder
	b.WriteString(content)
	b.WriteString("\n\n**📋 Sources officielles :**\n")
	for _, l := range links {
		b.WriteString(fmt.Sprintf("- [%s](%s)\n", l.text, l.url))
	}
	return b.String()
}

// buildActions maps the intent to its action templates. The human-contact
// action is always appended last, so the list is never empty.
func (e *Enhancer) buildActions(category nlp.Category, userType, userRegion string) []models.Action {
	var actions []models.Action

	switch category {
	case nlp.CategoryIsolation, nlp.CategoryChauffage, nlp.CategoryRenovationGenerale:
		profile := userType
		if profile == "" {
			profile = "particuliers"
		}
		actions = append(actions,
			models.Action{
				Type:    "form",
				Label:   "Calculer mes primes exactes",
				URL:     "/contacts/" + profile,
				Primary: true,
			},
			models.Action{
				Type:  "redirect",
				Label: "Être accompagné par un expert",
				URL:   e.renovateURL(userType, userRegion),
			},
		)
	case nlp.CategoryInformationGenerale:
		actions = append(actions, models.Action{
			Type:  "internal",
			Label: "En savoir plus sur notre équipe",
			URL:   "/about",
		})
	}

	actions = append(actions, models.Action{
		Type:  "contact",
		Label: "Parler à un expert humain",
		URL:   "mailto:" + e.contactEmail,
	})

	return actions
}

// renovateURL builds the partner redirect carrying the caller profile.
func (e *Enhancer) renovateURL(userType, userRegion string) string {
	profile := userType
	if profile == "" {
		profile = "particulier"
	}
	region := userRegion
	if region == "" {
		region = "auto"
	}

	params := url.Values{}
	params.Set("source", "ps")
	params.Set("profile", profile)
	params.Set("region", region)

	return e.renovateBaseURL + "?" + params.Encode()
}

// DetectResponseType classifies reply content by its dominant signal.
func DetectResponseType(content string) string {
	switch {
	case calculationPattern.MatchString(content):
		return ResponseCalculation
	case procedurePattern.MatchString(content):
		return ResponseProcedure
	case informationPattern.MatchString(content):
		return ResponseInformation
	default:
		return ResponseGeneral
	}
}
