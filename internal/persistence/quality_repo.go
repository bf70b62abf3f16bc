package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/applaudhq/applaud/internal/domain"
)

// QualityRepo calls the writing-quality scoring service.
type QualityRepo struct {
	BaseUrl     string
	BaseHeaders []string
}

type qualityReq struct {
	Text string `json:"text"`
}

type criterionVerdict struct {
	Score float64 `json:"score"`
	Pass  bool    `json:"pass"`
}

type qualityRecord struct {
	Success bool `json:"success"`
	Quality struct {
		BeSpecific           criterionVerdict `json:"beSpecific"`
		HighlightImpact      criterionVerdict `json:"highlightImpact"`
		AcknowledgeEffort    criterionVerdict `json:"acknowledgeEffort"`
		ReinforceConsistency criterionVerdict `json:"reinforceConsistency"`
	} `json:"quality"`
	OverallScore float64 `json:"overallScore"`
	GuidanceType string  `json:"guidanceType"`
	Guidance     string  `json:"guidance"`
}

// CheckQuality returns a nil report (and nil error) when the service reports
// success=false; the engine fails open on that.
func (r QualityRepo) CheckQuality(ctx context.Context, text string) (*domain.QualityReport, error) {
	body, err := json.Marshal(qualityReq{Text: text})

	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/check-quality", r.BaseUrl)
	record, err := request[qualityRecord](ctx, reqConfig{Method: "POST", Url: url, Headers: r.BaseHeaders, Body: body}, 200)

	if err != nil {
		return nil, err
	}

	if !record.Success {
		return nil, nil
	}

	return &domain.QualityReport{
		Pass: map[domain.Criterion]bool{
			domain.BeSpecific:           record.Quality.BeSpecific.Pass,
			domain.HighlightImpact:      record.Quality.HighlightImpact.Pass,
			domain.AcknowledgeEffort:    record.Quality.AcknowledgeEffort.Pass,
			domain.ReinforceConsistency: record.Quality.ReinforceConsistency.Pass,
		},
		Scores: map[domain.Criterion]float64{
			domain.BeSpecific:           record.Quality.BeSpecific.Score,
			domain.HighlightImpact:      record.Quality.HighlightImpact.Score,
			domain.AcknowledgeEffort:    record.Quality.AcknowledgeEffort.Score,
			domain.ReinforceConsistency: record.Quality.ReinforceConsistency.Score,
		},
		OverallScore: record.OverallScore,
		GuidanceType: domain.GuidanceType(record.GuidanceType),
		Guidance:     record.Guidance,
	}, nil
}
