// Package constants provides a centralized location for the label names,
// thresholds and platform literals used throughout the glossflow pipeline.
package constants

// Contribution type labels. Each detected contribution carries both the
// bare category label and the type: prefixed variant, matching the issue
// templates in the glossary repository.
const (
	LabelTermAddition         = "term-addition"
	LabelTermModification     = "term-modification"
	LabelContributorAddition  = "contributor-addition"
	LabelOrganizationAddition = "organization-addition"
	LabelAdminAddition        = "admin-addition"

	LabelTypePrefix = "type:"
)

// Validation state labels.
const (
	// LabelNeedsMoreInfo marks an issue with any blocking validation
	// finding. It is always paired with at least one of the specific
	// failure labels below.
	LabelNeedsMoreInfo = "needs-more-info"

	// LabelIncomplete marks missing required fields or agreements.
	LabelIncomplete = "incomplete"

	// LabelInvalidFormat marks per-field format violations.
	LabelInvalidFormat = "invalid-format"

	// LabelNeedsImprovement marks blocking content-quality findings.
	LabelNeedsImprovement = "needs-improvement"

	// LabelDuplicateFound marks a conflict with an existing dataset entry.
	LabelDuplicateFound = "duplicate-found"

	// LabelAutoValidated and LabelReadyForReview are applied together when
	// every blocking check passes.
	LabelAutoValidated  = "auto-validated"
	LabelReadyForReview = "ready-for-review"
)

// Review state labels.
const (
	LabelApproved     = "approved"
	LabelNeedsChanges = "needs-changes"
)

// Fallback labels applied when no contribution type is detected.
const (
	LabelBug         = "bug"
	LabelEnhancement = "enhancement"
	LabelFeature     = "feature"
	LabelNeedsTriage = "needs-triage"
)

// Validation thresholds.
const (
	// KoreanTermMinLength is the hard minimum for the Korean translation.
	KoreanTermMinLength = 2

	// KoreanDefinitionMinLength is the hard minimum for the Korean
	// definition field.
	KoreanDefinitionMinLength = 50

	// EnglishDefinitionMinLength is the hard minimum for the English
	// definition field.
	EnglishDefinitionMinLength = 30

	// KoreanDefinitionAdvisoryLength and EnglishDefinitionAdvisoryLength
	// are the higher, non-blocking lengths above which no improvement
	// suggestion is emitted.
	KoreanDefinitionAdvisoryLength  = 100
	EnglishDefinitionAdvisoryLength = 60
)

// Reviewer assignment defaults, used when the governance config omits the
// auto_assignment section.
const (
	DefaultMaxAssignees = 3
	DefaultMinApprovals = 1
)

// MergeDispatchEventType is the repository dispatch event that triggers
// downstream materialization (PR creation) once quorum is reached.
const MergeDispatchEventType = "create_pr_from_issue"

// GovernanceConfigPath is the in-repo path of the governance configuration
// resource.
const GovernanceConfigPath = ".github/config/admins.json"

// Dataset file paths inside the glossary repository.
const (
	TermsDatasetPath         = "data/terms/terms-a-z.json"
	ContributorsDatasetPath  = "data/contributors/contributors.json"
	OrganizationsDatasetPath = "data/organizations/organizations.json"
)

// Rate limiting constants.
const (
	// RateLimitLowWatermark is the threshold below which rate limit
	// warnings are logged.
	RateLimitLowWatermark = 100
)
