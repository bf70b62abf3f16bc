// Package persistence holds the HTTP repositories for the four AI service
// contracts the editor engine depends on: abuse check, quality check, rewrite
// and autocomplete.
package persistence

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/applaudhq/applaud/internal/app"
)

type reqConfig struct {
	Method  string
	Url     string
	Headers []string
	Body    []byte
}

// Requests are bounded so a hung AI service cannot wedge a pipeline, and
// share one limiter across all repos.
const requestTimeout = 10 * time.Second

var limiter = rate.NewLimiter(rate.Limit(10), 20)

func request[T any](ctx context.Context, config reqConfig, expectedResCode int) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, config.Method, config.Url, bytes.NewBuffer(config.Body))

	if err != nil {
		return nil, err
	}

	for i := 0; i < len(config.Headers); i++ {
		headerKV := strings.SplitN(config.Headers[i], ":", 2)
		req.Header.Add(strings.TrimSpace(headerKV[0]), strings.TrimSpace(headerKV[1]))
	}

	resp, err := http.DefaultClient.Do(req)

	if err != nil {
		return nil, err
	} else if resp.StatusCode != expectedResCode {
		resp.Body.Close()
		return nil, errors.New("unexpected response status code error")
	}

	body, err := app.Read(resp.Body)

	if err != nil {
		return nil, err
	}

	var t *T
	t, err = app.ReadJSON[T](body)

	if err != nil {
		return nil, err
	}

	return t, nil
}
