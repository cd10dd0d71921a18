package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bidtab/internal/config"
)

func testConfig() *config.LLMConfig {
	return &config.LLMConfig{
		APIKey:      "test-key",
		BaseURL:     "https://example.invalid/v1",
		Model:       "qwen-max",
		Temperature: 0.1,
		MaxTokens:   4000,
		TimeoutSecs: 30,
	}
}

func successResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
}

func TestClient_Chat_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "qwen-max", reqBody["model"])
		assert.Equal(t, 0.1, reqBody["temperature"])
		assert.Equal(t, float64(4000), reqBody["max_tokens"])

		messages := reqBody["messages"].([]interface{})
		require.Len(t, messages, 2)
		sys := messages[0].(map[string]interface{})
		assert.Equal(t, "system", sys["role"])
		assert.Equal(t, "you are an analyst", sys["content"])
		usr := messages[1].(map[string]interface{})
		assert.Equal(t, "user", usr["role"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(successResponse(`{"table1": {}}`))
	}))
	defer server.Close()

	c := NewClientWithEndpoint(testConfig(), server.URL)
	got, err := c.Chat(context.Background(), "you are an analyst", "extract table 1")
	require.NoError(t, err)
	assert.Equal(t, `{"table1": {}}`, got)
}

func TestClient_Chat_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "boom"}`))
	}))
	defer server.Close()

	c := NewClientWithEndpoint(testConfig(), server.URL)
	_, err := c.Chat(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "boom")
}

func TestClient_Chat_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	c := NewClientWithEndpoint(testConfig(), server.URL)
	_, err := c.Chat(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestClient_Chat_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	c := NewClientWithEndpoint(testConfig(), server.URL)
	_, err := c.Chat(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calling chat API")
}

func TestNewClient_JoinsChatCompletionsPath(t *testing.T) {
	c := NewClient(testConfig())
	assert.Equal(t, "https://example.invalid/v1/chat/completions", c.endpoint)

	cfg := testConfig()
	cfg.BaseURL = "https://example.invalid/v1/"
	assert.Equal(t, "https://example.invalid/v1/chat/completions", NewClient(cfg).endpoint)
}
