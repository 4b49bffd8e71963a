package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// TemplateResolver resolves a notification template identifier to HTML
// content. Satisfied by RemoteConfigClient and by test fakes.
type TemplateResolver interface {
	Template(ctx context.Context, key string) (string, error)
}

// RemoteConfigClient looks up notification templates in an external
// key/value parameter store over HTTP.
type RemoteConfigClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type remoteConfigResponse struct {
	Value string `json:"value"`
}

type remoteConfigError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewRemoteConfigClient(baseURL, apiKey string) *RemoteConfigClient {
	return &RemoteConfigClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{},
	}
}

// Template fetches the parameter stored under key. One-shot: a failed
// lookup is returned to the caller, which falls back to the built-in
// template.
func (c *RemoteConfigClient) Template(ctx context.Context, key string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("remote config not configured (missing REMOTE_CONFIG_URL)")
	}

	url := fmt.Sprintf("%s/v1/parameters/%s", c.baseURL, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("remote config request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr remoteConfigError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("remote config error (status %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("remote config error (status %d)", resp.StatusCode)
	}

	var result remoteConfigResponse
	err = json.Unmarshal(body, &result)
	if err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Value == "" {
		return "", fmt.Errorf("remote config parameter %q is empty", key)
	}

	return result.Value, nil
}
