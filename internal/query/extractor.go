package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ParamExtractor is an optional external collaborator that maps free
// text onto filter parameters, e.g. a hosted sequence model. Its output
// contract is strict: recognized keys only, empty values dropped. When
// it is unavailable or misbehaves the deterministic parser takes over;
// its failure never blocks the command path.
type ParamExtractor interface {
	Extract(ctx context.Context, text string) (map[string]string, error)
}

var recognizedParams = map[string]bool{
	"role": true, "type": true, "season": true, "company": true, "location": true,
}

// HTTPExtractor talks to a JSON endpoint: POST {"text": ...} in, a flat
// object of filter parameters out.
type HTTPExtractor struct {
	url string
	hc  *http.Client
}

func NewHTTPExtractor(url string) *HTTPExtractor {
	return &HTTPExtractor{
		url: url,
		hc:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (e *HTTPExtractor) Extract(ctx context.Context, text string) (map[string]string, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := e.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extractor request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("extractor status %d", res.StatusCode)
	}

	var raw map[string]string
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("extractor decode: %w", err)
	}

	params := make(map[string]string, len(raw))
	for k, v := range raw {
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)
		if recognizedParams[k] && v != "" {
			params[k] = v
		}
	}
	return params, nil
}

// ParseWith runs the extractor first and falls back to Parse when the
// extractor is absent, fails, or yields nothing usable.
func ParseWith(ctx context.Context, ex ParamExtractor, args string) Spec {
	if ex == nil || strings.TrimSpace(args) == "" {
		return Parse(args)
	}

	params, err := ex.Extract(ctx, args)
	if err != nil || len(params) == 0 {
		return Parse(args)
	}

	spec := Spec{
		Role:     params["role"],
		Type:     params["type"],
		Season:   params["season"],
		Company:  params["company"],
		Location: params["location"],
	}
	if spec.Empty() {
		return Parse(args)
	}
	return spec
}
