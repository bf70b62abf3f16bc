package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/applaudhq/applaud/internal/domain"
)

// CompletionRepo calls the inline autocomplete service.
type CompletionRepo struct {
	BaseUrl     string
	BaseHeaders []string
}

type completionReq struct {
	Text            string   `json:"text"`
	FailingCriteria []string `json:"failingCriteria"`
	TargetCriterion string   `json:"targetCriterion,omitempty"`
}

type completionRecord struct {
	Success     bool                `json:"success"`
	Completion  string              `json:"completion"`
	Corrections []domain.Correction `json:"corrections"`
}

// Complete returns an empty string (and nil error) when the service had no
// continuation to offer. An empty target leaves the criterion choice to the
// service.
func (r CompletionRepo) Complete(ctx context.Context, text string, failing []domain.Criterion, target domain.Criterion) (string, error) {
	body, err := json.Marshal(completionReq{
		Text:            text,
		FailingCriteria: labels(failing),
		TargetCriterion: string(target),
	})

	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/autocomplete", r.BaseUrl)
	record, err := request[completionRecord](ctx, reqConfig{Method: "POST", Url: url, Headers: r.BaseHeaders, Body: body}, 200)

	if err != nil {
		return "", err
	}

	if !record.Success {
		return "", nil
	}

	return record.Completion, nil
}
