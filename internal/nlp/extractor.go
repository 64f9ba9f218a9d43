package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

// Region is a Belgian region detected in a message.
type Region string

const (
	RegionWallonie  Region = "wallonie"
	RegionFlandre   Region = "flandre"
	RegionBruxelles Region = "bruxelles"
)

// PropertyType is a property category detected in a message.
type PropertyType string

const (
	PropertyMaison      PropertyType = "maison"
	PropertyAppartement PropertyType = "appartement"
	PropertyImmeuble    PropertyType = "immeuble"
	PropertyCommercial  PropertyType = "commercial"
)

// AmountContext distinguishes figures quoted literally from figures inferred
// out of informal budget phrases.
type AmountContext string

const (
	AmountMentioned   AmountContext = "mentioned_amount"
	AmountBudgetRange AmountContext = "budget_range"
)

// Amount is a monetary value extracted from a message.
type Amount struct {
	Value    float64       `json:"value"`
	Currency string        `json:"currency"`
	Context  AmountContext `json:"context"`
	Range    string        `json:"range,omitempty"` // "low" or "high" for budget_range entries
}

// Timeframe is a scheduling signal detected in a message.
type Timeframe string

const (
	TimeframeUrgent   Timeframe = "urgent"
	TimeframeThisYear Timeframe = "this_year"
	TimeframeFlexible Timeframe = "flexible"
)

// ContactPref is a contact-channel preference detected in a message.
type ContactPref string

const (
	ContactPhone   ContactPref = "phone"
	ContactEmail   ContactPref = "email"
	ContactMeeting ContactPref = "meeting"
	ContactHuman   ContactPref = "human_contact"
)

// EntityBundle holds every structured fact detected in one message. Entities
// are detected literally, never inferred; absent signals yield empty slices.
type EntityBundle struct {
	Regions       []Region       `json:"regions"`
	PropertyTypes []PropertyType `json:"property_types"`
	Amounts       []Amount       `json:"amounts"`
	Timeframes    []Timeframe    `json:"timeframes"`
	ContactPrefs  []ContactPref  `json:"contact_prefs"`
}

// Sentinel amounts appended for informal budget phrasing.
const (
	lowBudgetSentinel  = 5000
	highBudgetSentinel = 50000
)

var regionKeywords = []struct {
	region   Region
	keywords []string
}{
	{RegionWallonie, []string{"wallonie", "wallon", "wallons", "liège", "namur", "charleroi", "mons", "tournai"}},
	{RegionFlandre, []string{"flandre", "flamand", "flamands", "anvers", "gand", "bruges", "louvain"}},
	{RegionBruxelles, []string{"bruxelles", "capitale", "région", "uccle", "ixelles", "schaerbeek"}},
}

var propertyKeywords = []struct {
	ptype    PropertyType
	keywords []string
}{
	{PropertyMaison, []string{"maison", "villa", "cottage", "fermette"}},
	{PropertyAppartement, []string{"appartement", "flat", "studio", "duplex"}},
	{PropertyImmeuble, []string{"immeuble", "bâtiment", "copropriété", "syndic"}},
	{PropertyCommercial, []string{"bureau", "local", "commercial", "magasin", "entrepôt"}},
}

var (
	amountPattern     = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:€|euros?|eur)`)
	lowBudgetPattern  = regexp.MustCompile(`(?i)petit budget|budget serré`)
	highBudgetPattern = regexp.MustCompile(`(?i)gros budget|budget important`)
)

var timeframePatterns = []struct {
	timeframe Timeframe
	pattern   *regexp.Regexp
}{
	{TimeframeUrgent, regexp.MustCompile(`(?i)urgent|rapidement|vite|asap`)},
	{TimeframeThisYear, regexp.MustCompile(`(?i)cette année|2025`)},
	{TimeframeFlexible, regexp.MustCompile(`(?i)pas pressé|flexible|quand possible`)},
}

var contactPatterns = []struct {
	pref    ContactPref
	pattern *regexp.Regexp
}{
	{ContactPhone, regexp.MustCompile(`(?i)téléphone|appeler|tel`)},
	{ContactEmail, regexp.MustCompile(`(?i)email|mail|courriel`)},
	{ContactMeeting, regexp.MustCompile(`(?i)rendez-vous|rencontre|bureau`)},
	{ContactHuman, regexp.MustCompile(`(?i)parler|humain|personne|expert`)},
}

// Extractor detects structured entities in raw text. Stateless and safe for
// concurrent use.
type Extractor struct{}

// NewExtractor creates an entity extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract pulls every entity category out of the message. It never fails;
// malformed or empty text simply yields an empty bundle.
func (e *Extractor) Extract(text string) EntityBundle {
	normalized := Normalize(text)

	return EntityBundle{
		Regions:       extractRegions(normalized),
		PropertyTypes: extractPropertyTypes(normalized),
		Amounts:       extractAmounts(text),
		Timeframes:    extractTimeframes(text),
		ContactPrefs:  extractContactPrefs(text),
	}
}

func extractRegions(normalized string) []Region {
	detected := []Region{}
	for _, rk := range regionKeywords {
		for _, kw := range rk.keywords {
			if strings.Contains(normalized, kw) {
				detected = append(detected, rk.region)
				break
			}
		}
	}
	return detected
}

func extractPropertyTypes(normalized string) []PropertyType {
	detected := []PropertyType{}
	for _, pk := range propertyKeywords {
		for _, kw := range pk.keywords {
			if strings.Contains(normalized, kw) {
				detected = append(detected, pk.ptype)
				break
			}
		}
	}
	return detected
}

func extractAmounts(text string) []Amount {
	amounts := []Amount{}

	for _, match := range amountPattern.FindAllStringSubmatch(text, -1) {
		raw := strings.ReplaceAll(match[1], ",", ".")
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		amounts = append(amounts, Amount{
			Value:    value,
			Currency: "EUR",
			Context:  AmountMentioned,
		})
	}

	// Informal budget phrases append sentinel figures tagged budget_range so
	// consumers can tell literal from inferred amounts.
	if lowBudgetPattern.MatchString(text) {
		amounts = append(amounts, Amount{
			Value:    lowBudgetSentinel,
			Currency: "EUR",
			Context:  AmountBudgetRange,
			Range:    "low",
		})
	} else if highBudgetPattern.MatchString(text) {
		amounts = append(amounts, Amount{
			Value:    highBudgetSentinel,
			Currency: "EUR",
			Context:  AmountBudgetRange,
			Range:    "high",
		})
	}

	return amounts
}

func extractTimeframes(text string) []Timeframe {
	detected := []Timeframe{}
	for _, tp := range timeframePatterns {
		if tp.pattern.MatchString(text) {
			detected = append(detected, tp.timeframe)
		}
	}
	return detected
}

func extractContactPrefs(text string) []ContactPref {
	detected := []ContactPref{}
	for _, cp := range contactPatterns {
		if cp.pattern.MatchString(text) {
			detected = append(detected, cp.pref)
		}
	}
	return detected
}

// HasContactPref reports whether the bundle contains the given preference.
func (b EntityBundle) HasContactPref(pref ContactPref) bool {
	for _, p := range b.ContactPrefs {
		if p == pref {
			return true
		}
	}
	return false
}

// NonEmptySlots counts the entity categories with at least one detection.
func (b EntityBundle) NonEmptySlots() int {
	count := 0
	if len(b.Regions) > 0 {
		count++
	}
	if len(b.PropertyTypes) > 0 {
		count++
	}
	if len(b.Amounts) > 0 {
		count++
	}
	if len(b.Timeframes) > 0 {
		count++
	}
	if len(b.ContactPrefs) > 0 {
		count++
	}
	return count
}
