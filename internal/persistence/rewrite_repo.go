package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/applaudhq/applaud/internal/domain"
)

// RewriteRepo calls the AI rewrite service.
type RewriteRepo struct {
	BaseUrl     string
	BaseHeaders []string
}

type rewriteReq struct {
	Text            string   `json:"text"`
	FailingCriteria []string `json:"failingCriteria"`
}

type rewriteRecord struct {
	Success bool   `json:"success"`
	Rewrite string `json:"rewrite"`
}

// Rewrite returns an empty string (and nil error) when the service declined
// to offer a rewrite.
func (r RewriteRepo) Rewrite(ctx context.Context, text string, failing []domain.Criterion) (string, error) {
	body, err := json.Marshal(rewriteReq{Text: text, FailingCriteria: labels(failing)})

	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/rewrite-appreciation", r.BaseUrl)
	record, err := request[rewriteRecord](ctx, reqConfig{Method: "POST", Url: url, Headers: r.BaseHeaders, Body: body}, 200)

	if err != nil {
		return "", err
	}

	if !record.Success {
		return "", nil
	}

	return record.Rewrite, nil
}

func labels(criteria []domain.Criterion) []string {
	out := make([]string, len(criteria))
	for i, c := range criteria {
		out[i] = string(c)
	}
	return out
}
