// Package evolution is a thin HTTP client for the Evolution WhatsApp
// automation API: instance creation (chip heating) and webhook
// configuration. It handles apikey authentication, JSON marshaling,
// and typed error decoding.
package evolution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to an Evolution API deployment.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the Evolution API at baseURL,
// authenticating with apiKey.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateInstance starts a new WhatsApp instance for the chip. A
// non-success response or a response with Success=false is an error;
// the chip lifecycle controller rolls the chip back to inactive.
func (c *Client) CreateInstance(ctx context.Context, req InstanceRequest) (*AutomationResult, error) {
	var result AutomationResult
	if err := c.post(ctx, "/instance/create", req, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, fmt.Errorf("evolution rejected instance %q: %s", req.InstanceName, result.Message)
	}
	return &result, nil
}

// SetWebhook configures the event webhook for an existing instance.
func (c *Client) SetWebhook(ctx context.Context, instanceName string, req WebhookRequest) (*AutomationResult, error) {
	var result AutomationResult
	path := "/webhook/set/" + instanceName
	if err := c.post(ctx, path, req, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, fmt.Errorf("evolution rejected webhook for %q: %s", instanceName, result.Message)
	}
	return &result, nil
}

// post builds the request, handles auth, and JSON (de)serialization.
func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	url := c.baseURL + path

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("authentication failed (401): check the Evolution API key for %s", c.baseURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr ErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("evolution API error (%d) on POST %s: %s",
				resp.StatusCode, path, apiErr.Message)
		}
		return fmt.Errorf("unexpected status %d on POST %s: %s",
			resp.StatusCode, path, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
