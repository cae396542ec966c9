package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// StatusError is a non-200 reply from a provider's HTTP API.
type StatusError struct {
	Provider string
	Status   int
	Body     string
	notFound bool
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.Status, e.Body)
}

// Unwrap exposes ErrModelUnavailable for 404s and model-not-found replies.
func (e *StatusError) Unwrap() error {
	if e.notFound || e.Status == http.StatusNotFound {
		return ErrModelUnavailable
	}
	return nil
}

// postJSON posts body as JSON to url and returns the raw reply body. A
// non-200 status yields a *StatusError carrying the reply.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", provider, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", provider, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", provider, err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return respBody, &StatusError{Provider: provider, Status: httpResp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}
