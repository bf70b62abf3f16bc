package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/applaudhq/applaud/internal/domain"
)

func TestSplitGuidanceWithoutMarker(t *testing.T) {
	lead, phrases := SplitGuidance("Try naming the project they helped with.")
	assert.Equal(t, "Try naming the project they helped with.", lead)
	assert.Empty(t, phrases)
}

func TestSplitGuidanceWithPhrases(t *testing.T) {
	lead, phrases := SplitGuidance(
		"Be more concrete about the outcome. Consider phrases such as: reduced load times, unblocked the release, saved the sprint")

	assert.Equal(t, "Be more concrete about the outcome.", lead)
	assert.Equal(t, []string{"reduced load times", "unblocked the release", "saved the sprint"}, phrases)
}

func TestSplitGuidanceDropsEmptyPhrases(t *testing.T) {
	_, phrases := SplitGuidance("Lead. Consider phrases such as: one, , two,")
	assert.Equal(t, []string{"one", "two"}, phrases)
}

func TestSplitGuidanceMarkerIsCaseSensitive(t *testing.T) {
	lead, phrases := SplitGuidance("Lead. consider phrases such as: one, two")
	assert.Equal(t, "Lead. consider phrases such as: one, two", lead)
	assert.Empty(t, phrases)
}

func TestSplitGuidanceUsesFirstMarker(t *testing.T) {
	_, phrases := SplitGuidance("Lead. Consider phrases such as: a, Consider phrases such as: b")
	assert.Equal(t, []string{"a", "Consider phrases such as: b"}, phrases)
}

func TestPickAffirmationUsesInjectedSource(t *testing.T) {
	assert.Equal(t, affirmations[0], pickAffirmation(func(n int) int { return 0 }))
	assert.Equal(t, affirmations[7], pickAffirmation(func(n int) int { return 7 }))
}

func TestAffirmationPoolIsNonEmpty(t *testing.T) {
	assert.NotEmpty(t, affirmations)
	for _, m := range affirmations {
		assert.NotEmpty(t, m)
	}
}

func TestLowestScoringFailing(t *testing.T) {
	report := &domain.QualityReport{
		Pass: passMap(false, true, false, false),
		Scores: map[domain.Criterion]float64{
			domain.BeSpecific:           0.5,
			domain.HighlightImpact:      0.9,
			domain.AcknowledgeEffort:    0.1,
			domain.ReinforceConsistency: 0.4,
		},
	}

	weakest, ok := lowestScoringFailing(report)
	assert.True(t, ok)
	assert.Equal(t, domain.AcknowledgeEffort, weakest)
}

func TestLowestScoringFailingTieBreaksInRevealOrder(t *testing.T) {
	report := &domain.QualityReport{
		Pass: passMap(false, false, false, false),
		Scores: map[domain.Criterion]float64{
			domain.BeSpecific:           0.2,
			domain.HighlightImpact:      0.2,
			domain.AcknowledgeEffort:    0.2,
			domain.ReinforceConsistency: 0.2,
		},
	}

	weakest, ok := lowestScoringFailing(report)
	assert.True(t, ok)
	assert.Equal(t, domain.BeSpecific, weakest)
}

func TestLowestScoringFailingAllPassing(t *testing.T) {
	report := &domain.QualityReport{Pass: passMap(true, true, true, true)}
	_, ok := lowestScoringFailing(report)
	assert.False(t, ok)
}
