package nlp

// UserType identifies the caller profile kind. The set mirrors the contact
// domains served by the platform.
type UserType string

const (
	UserParticulier    UserType = "particulier"
	UserACP            UserType = "acp"
	UserEntrepriseImmo UserType = "entreprise_immo"
	UserEntrepriseComm UserType = "entreprise_comm"
)

// UserProfile is caller-supplied session context. Read-only to this package.
type UserProfile struct {
	UserType         UserType
	Region           Region
	InteractionCount int
	Metadata         map[string]interface{}
}

// Focus and complexity tiers derived from the user type.
type Focus string

const (
	FocusIndividualSubsidies Focus = "individual_subsidies"
	FocusBuildingManagement  Focus = "building_management"
	FocusBusinessSubsidies   Focus = "business_subsidies"
	FocusGeneralInformation  Focus = "general_information"
)

type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityMedium   Complexity = "medium"
	ComplexityAdvanced Complexity = "advanced"
)

// ExpertiseLevel is a step function of how often the user has interacted.
type ExpertiseLevel string

const (
	ExpertiseBeginner     ExpertiseLevel = "beginner"
	ExpertiseIntermediate ExpertiseLevel = "intermediate"
	ExpertiseExpert       ExpertiseLevel = "expert"
)

// Expertise thresholds on prior interaction count.
const (
	intermediateThreshold = 3
	expertThreshold       = 10
)

// ContextSignal is the behavioral profile derived from a UserProfile.
type ContextSignal struct {
	UserType          UserType       `json:"user_type"`
	Region            Region         `json:"region"`
	PriorInteractions int            `json:"prior_interactions"`
	ExpertiseLevel    ExpertiseLevel `json:"expertise_level"`
	Focus             Focus          `json:"focus"`
	Complexity        Complexity     `json:"complexity"`
}

// typeProfile pairs the focus and complexity assigned to one user type.
type typeProfile struct {
	focus      Focus
	complexity Complexity
}

// userTypeProfiles is fixed at startup; unknown types fall through to the
// general profile.
var userTypeProfiles = map[UserType]typeProfile{
	UserParticulier:    {FocusIndividualSubsidies, ComplexitySimple},
	UserACP:            {FocusBuildingManagement, ComplexityMedium},
	UserEntrepriseImmo: {FocusBusinessSubsidies, ComplexityAdvanced},
	UserEntrepriseComm: {FocusBusinessSubsidies, ComplexityAdvanced},
}

// ContextAnalyzer derives a ContextSignal from a caller profile.
type ContextAnalyzer struct{}

// NewContextAnalyzer creates a context analyzer.
func NewContextAnalyzer() *ContextAnalyzer {
	return &ContextAnalyzer{}
}

// Analyze maps the profile onto its focus, complexity and expertise tier.
func (a *ContextAnalyzer) Analyze(profile UserProfile) ContextSignal {
	tp, ok := userTypeProfiles[profile.UserType]
	if !ok {
		tp = typeProfile{FocusGeneralInformation, ComplexitySimple}
	}

	return ContextSignal{
		UserType:          profile.UserType,
		Region:            profile.Region,
		PriorInteractions: profile.InteractionCount,
		ExpertiseLevel:    expertiseLevel(profile.InteractionCount),
		Focus:             tp.focus,
		Complexity:        tp.complexity,
	}
}

func expertiseLevel(interactions int) ExpertiseLevel {
	switch {
	case interactions > expertThreshold:
		return ExpertiseExpert
	case interactions > intermediateThreshold:
		return ExpertiseIntermediate
	default:
		return ExpertiseBeginner
	}
}
