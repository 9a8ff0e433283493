package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/severinoia/central/internal/credential"
	"github.com/severinoia/central/internal/localstore"
	"github.com/severinoia/central/internal/model"
	"github.com/severinoia/central/internal/settings"
)

func newTestSettings(t *testing.T, webhookURL string) *settings.Store {
	t.Helper()
	st := settings.NewStore(localstore.NewMemKV(), credential.NewMemStore(), zerolog.Nop())
	if webhookURL != "" {
		_, err := st.Update(model.SettingsPatch{WebhookURL: &webhookURL})
		require.NoError(t, err)
	}
	return st
}

func userMessage(content string) []model.ChatMessage {
	return []model.ChatMessage{{Role: model.ChatRoleUser, Content: content}}
}

func TestCompleteReturnsWebhookResponse(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		json.NewEncoder(w).Encode(completionResponse{Response: "hello back"})
	}))
	defer srv.Close()

	st := newTestSettings(t, srv.URL)
	key := "sk-test"
	_, err := st.Update(model.SettingsPatch{OpenAIAPIKey: &key})
	require.NoError(t, err)

	client := NewClient(st, 0, 8, zerolog.Nop())
	reply, err := client.Complete(context.Background(), userMessage("hi"))
	require.NoError(t, err)
	assert.Equal(t, "hello back", reply)
	assert.Equal(t, "Bearer sk-test", gotAuth)
}

func TestCompleteMemoizesByLatestUserMessage(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(completionResponse{Response: fmt.Sprintf("reply %d", calls)})
	}))
	defer srv.Close()

	client := NewClient(newTestSettings(t, srv.URL), 0, 8, zerolog.Nop())

	first, err := client.Complete(context.Background(), userMessage("same question"))
	require.NoError(t, err)
	second, err := client.Complete(context.Background(), userMessage("same question"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second identical question must be served from cache")

	_, err = client.Complete(context.Background(), userMessage("different question"))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCompleteWithoutWebhookURL(t *testing.T) {
	client := NewClient(newTestSettings(t, ""), 0, 8, zerolog.Nop())
	_, err := client.Complete(context.Background(), userMessage("hi"))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(completionResponse{Response: "too late"})
	}))
	defer srv.Close()

	client := NewClient(newTestSettings(t, srv.URL), 20*time.Millisecond, 8, zerolog.Nop())
	_, err := client.Complete(context.Background(), userMessage("hi"))
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(completionResponse{Message: "upstream unavailable"})
	}))
	defer srv.Close()

	client := NewClient(newTestSettings(t, srv.URL), 0, 8, zerolog.Nop())
	_, err := client.Complete(context.Background(), userMessage("hi"))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream unavailable", apiErr.Message)
}

func TestResponseCacheEvictsOldestFirst(t *testing.T) {
	cache := newResponseCache(2)
	cache.put("a", "1")
	cache.put("b", "2")
	cache.put("c", "3")

	_, ok := cache.get("a")
	assert.False(t, ok, "oldest entry should be evicted at capacity")

	v, ok := cache.get("b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	assert.Equal(t, 2, cache.len())
}

func TestResponseCacheZeroCapacityDisabled(t *testing.T) {
	cache := newResponseCache(0)
	cache.put("a", "1")
	_, ok := cache.get("a")
	assert.False(t, ok)
}
