package domain

// RuleStatus is the tri-state of a single writing rule in the editor sidebar.
type RuleStatus string

const (
	StatusNeutral RuleStatus = "neutral"
	StatusSuccess RuleStatus = "success"
	StatusError   RuleStatus = "error"
)

// Criterion identifies one of the five fixed writing rules. The string value
// doubles as the user-facing label and as the identifier sent to the AI
// services.
type Criterion string

const (
	AbusiveCheck         Criterion = "Abusive Check"
	BeSpecific           Criterion = "Be specific"
	HighlightImpact      Criterion = "Highlight impact"
	AcknowledgeEffort    Criterion = "Acknowledge effort"
	ReinforceConsistency Criterion = "Reinforce consistency"
)

// Criteria returns all five criteria in sidebar order.
func Criteria() [5]Criterion {
	return [5]Criterion{AbusiveCheck, BeSpecific, HighlightImpact, AcknowledgeEffort, ReinforceConsistency}
}

// QualityCriteria returns the four quality rules in the fixed order their
// statuses are revealed after a validation cycle.
func QualityCriteria() [4]Criterion {
	return [4]Criterion{BeSpecific, HighlightImpact, AcknowledgeEffort, ReinforceConsistency}
}

var weights = map[Criterion]int{
	AbusiveCheck:         3,
	BeSpecific:           35,
	HighlightImpact:      37,
	AcknowledgeEffort:    15,
	ReinforceConsistency: 10,
}

// Weight returns the criterion's share of the 100-point score.
func (c Criterion) Weight() int {
	return weights[c]
}

// GuideItem pairs a criterion with its current status.
type GuideItem struct {
	Label  Criterion
	Status RuleStatus
}
