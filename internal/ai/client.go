// Package ai calls the configured chat completion webhook and memoizes
// responses so repeating a question does not cost another round trip.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/severinoia/central/internal/model"
	"github.com/severinoia/central/internal/settings"
)

const defaultTimeout = 15 * time.Second

var (
	// ErrNotConfigured reports that no webhook URL is set.
	ErrNotConfigured = errors.New("ai: chat webhook URL not configured")

	// ErrTimeout reports that the webhook did not answer within the
	// request timeout. The caller shows a retry hint; there is no
	// automatic retry.
	ErrTimeout = errors.New("ai: request timed out")
)

// APIError is a non-2xx response from the webhook.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ai: webhook returned %d: %s", e.StatusCode, e.Message)
}

type completionRequest struct {
	Messages []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Response string `json:"response"`
	Message  string `json:"message,omitempty"`
}

// Client sends chat transcripts to the completion webhook. Settings are
// read per call so URL or key changes apply without a restart.
type Client struct {
	settings   *settings.Store
	httpClient *http.Client
	cache      *responseCache
	log        zerolog.Logger
}

// NewClient builds a client. timeout <= 0 falls back to the default;
// cacheSize <= 0 disables memoization.
func NewClient(st *settings.Store, timeout time.Duration, cacheSize int, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		settings:   st,
		httpClient: &http.Client{Timeout: timeout},
		cache:      newResponseCache(cacheSize),
		log:        log.With().Str("component", "ai").Logger(),
	}
}

// Complete sends the transcript and returns the assistant's reply. The
// reply for a given latest user message is memoized; a cache hit skips
// the network entirely.
func (c *Client) Complete(ctx context.Context, messages []model.ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("ai: empty transcript")
	}

	key := messages[len(messages)-1].Content
	if reply, ok := c.cache.get(key); ok {
		c.log.Debug().Msg("cache hit")
		return reply, nil
	}

	current, err := c.settings.Get()
	if err != nil {
		return "", fmt.Errorf("reading settings: %w", err)
	}
	if current.WebhookURL == "" {
		return "", ErrNotConfigured
	}

	reply, err := c.post(ctx, current, messages)
	if err != nil {
		return "", err
	}

	c.cache.put(key, reply)
	return reply, nil
}

func (c *Client) post(ctx context.Context, current model.Settings, messages []model.ChatMessage) (string, error) {
	reqBody := completionRequest{Messages: make([]apiMessage, 0, len(messages))}
	for _, m := range messages {
		reqBody.Messages = append(reqBody.Messages, apiMessage{Role: m.Role, Content: m.Content})
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, current.WebhookURL, bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if current.OpenAIAPIKey != "" {
		req.Header.Set("Authorization", "Bearer "+current.OpenAIAPIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("calling chat webhook: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
		var decoded completionResponse
		if json.Unmarshal(respBody, &decoded) == nil && decoded.Message != "" {
			apiErr.Message = decoded.Message
		}
		return "", apiErr
	}

	var decoded completionResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if decoded.Response == "" {
		return "", errors.New("ai: webhook returned an empty response")
	}
	return decoded.Response, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
