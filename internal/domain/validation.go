package domain

// GuidanceType is the quality service's own classification of the guidance
// text it returned.
type GuidanceType string

const (
	GuidanceQuestion   GuidanceType = "question"
	GuidanceSuggestion GuidanceType = "suggestion"
	GuidanceNone       GuidanceType = "none"
)

// GuidanceKind is the editor's closed set of guidance states. Exactly one is
// presented after a completed validation cycle.
type GuidanceKind string

const (
	KindEmpty         GuidanceKind = ""
	KindBlocked       GuidanceKind = "blocked"
	KindCoaching      GuidanceKind = "coaching"
	KindSuggesting    GuidanceKind = "suggesting"
	KindCongratulated GuidanceKind = "congratulated"
)

// QualityReport is the parsed verdict of one quality-check call: per-criterion
// pass/score for the four quality rules plus the guidance the service wants
// shown.
type QualityReport struct {
	Pass         map[Criterion]bool
	Scores       map[Criterion]float64
	OverallScore float64
	GuidanceType GuidanceType
	Guidance     string
}

// Correction is a wrong→fixed pair the autocomplete service may return
// alongside a completion.
type Correction struct {
	Wrong string `json:"wrong"`
	Fixed string `json:"fixed"`
}
