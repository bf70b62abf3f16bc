package engine

import (
	"strings"

	"github.com/applaudhq/applaud/internal/domain"
)

const abusiveGuidance = "Your message contains inappropriate language. Please revise it before continuing."

// PhraseMarker splits guidance text into a lead sentence and a comma-separated
// phrase list. Case-sensitive, first occurrence.
const PhraseMarker = "Consider phrases such as:"

// guidanceState is the single piece of coaching currently shown.
type guidanceState struct {
	Kind domain.GuidanceKind
	Type domain.GuidanceType
	Text string
}

var affirmations = []string{
	"Your message is perfect!",
	"Great job on your appreciation!",
	"Well written message!",
	"Your recognition is spot on!",
	"This appreciation is beautifully written.",
	"You’ve captured their impact perfectly.",
	"Excellent acknowledgment of effort!",
	"Your recognition feels sincere and meaningful.",
	"Strong appreciation — clear and impactful.",
	"You’ve highlighted their contribution brilliantly.",
	"This message truly celebrates their work.",
	"Fantastic job recognizing their achievement!",
	"Your words make a real difference.",
	"This is thoughtful and well articulated.",
	"You’re setting a great example of recognition.",
	"Impressive clarity and appreciation.",
	"This recognition feels authentic and powerful.",
	"Well done — this will truly motivate them!",
	"Excellent appreciation!",
}

// pickAffirmation picks one congratulation message using the injected index
// source, so tests can pin the choice.
func pickAffirmation(intn func(n int) int) string {
	return affirmations[intn(len(affirmations))]
}

// SplitGuidance separates guidance text on PhraseMarker. The phrase list is
// comma-separated after the marker; empty entries are dropped. Without the
// marker the whole text is the lead.
func SplitGuidance(text string) (lead string, phrases []string) {
	i := strings.Index(text, PhraseMarker)
	if i == -1 {
		return strings.TrimSpace(text), nil
	}

	lead = strings.TrimSpace(text[:i])
	for _, p := range strings.Split(text[i+len(PhraseMarker):], ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			phrases = append(phrases, p)
		}
	}
	return lead, phrases
}

// lowestScoringFailing picks the failing quality rule with the lowest score,
// in reveal order on ties. Learned phrases attach to it.
func lowestScoringFailing(report *domain.QualityReport) (domain.Criterion, bool) {
	var (
		weakest domain.Criterion
		found   bool
		low     float64
	)
	for _, q := range domain.QualityCriteria() {
		if report.Pass[q] {
			continue
		}
		if !found || report.Scores[q] < low {
			weakest, low, found = q, report.Scores[q], true
		}
	}
	return weakest, found
}
