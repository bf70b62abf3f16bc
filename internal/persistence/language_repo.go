package persistence

import (
	"context"
	"encoding/json"
	"fmt"
)

// LanguageRepo calls the abusive-language detection service.
type LanguageRepo struct {
	BaseUrl     string
	BaseHeaders []string
}

type abuseReq struct {
	Text string `json:"text"`
}

type abuseRecord struct {
	Abusive bool `json:"abusive"`
}

func (r LanguageRepo) CheckAbuse(ctx context.Context, text string) (bool, error) {
	body, err := json.Marshal(abuseReq{Text: text})

	if err != nil {
		return false, err
	}

	url := fmt.Sprintf("%s/check-abusive-words", r.BaseUrl)
	record, err := request[abuseRecord](ctx, reqConfig{Method: "POST", Url: url, Headers: r.BaseHeaders, Body: body}, 200)

	if err != nil {
		return false, err
	}

	return record.Abusive, nil
}
