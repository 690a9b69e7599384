package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weekPlanJSON = `{"week":1,"focus":"Matemática – H01","tasks":["Lista de frações"]}`

func weekPlanSchema() *Schema {
	return &Schema{
		Name:        "week-plan",
		Description: "One week of a remediation plan",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"week":  map[string]any{"type": "integer", "minimum": 1},
				"focus": map[string]any{"type": "string"},
				"tasks": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required":             []any{"week", "focus", "tasks"},
			"additionalProperties": false,
		},
	}
}

func planRequest() Request {
	return Request{
		System:    "Você escreve planos de estudo.",
		Messages:  []Message{{Role: RoleUser, Content: "Plano da semana 1"}},
		Schema:    weekPlanSchema(),
		MaxTokens: 256,
	}
}

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: server.URL + "/v1",
	})
	require.NoError(t, err)
	return p
}

func anthropicMessage(text string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": "end_turn",
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func openaiCompletion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func jsonHandler(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	p := newTestAnthropicProvider(t, jsonHandler(http.StatusOK, anthropicMessage(weekPlanJSON)))

	resp, err := p.Generate(context.Background(), planRequest())
	require.NoError(t, err)
	assert.JSONEq(t, weekPlanJSON, string(resp.Content))
	assert.Equal(t, 50, resp.Usage.InputTokens)
	assert.Equal(t, "end", resp.StopReason)
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var got openai.ChatCompletionRequest
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		jsonHandler(http.StatusOK, openaiCompletion(weekPlanJSON))(w, r)
	}
	p := newTestOpenAIProvider(t, handler)

	resp, err := p.Generate(context.Background(), planRequest())
	require.NoError(t, err)
	assert.JSONEq(t, weekPlanJSON, string(resp.Content))
	assert.Equal(t, 40, resp.Usage.InputTokens)
	assert.Equal(t, 25, resp.Usage.OutputTokens)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "week-plan", got.ResponseFormat.JSONSchema.Name)
}

func TestProviders_SchemaViolation(t *testing.T) {
	bad := `{"week":0,"focus":"x"}`

	a := newTestAnthropicProvider(t, jsonHandler(http.StatusOK, anthropicMessage(bad)))
	_, err := a.Generate(context.Background(), planRequest())
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)

	o := newTestOpenAIProvider(t, jsonHandler(http.StatusOK, openaiCompletion(bad)))
	_, err = o.Generate(context.Background(), planRequest())
	assert.ErrorAs(t, err, &inv)
}

func TestProviders_ErrorMapping(t *testing.T) {
	anthropicErr := func(kind string) map[string]any {
		return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": kind}}
	}
	openaiErr := func(kind string) map[string]any {
		return map[string]any{"error": map[string]any{"type": kind, "message": kind}}
	}

	isRateLimit := func(t *testing.T, err error) {
		var rl *ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	}
	isUnavailable := func(t *testing.T, err error) {
		var un *ErrProviderUnavailable
		assert.ErrorAs(t, err, &un)
	}
	isAuth := func(t *testing.T, err error) {
		var auth *ErrAuth
		assert.ErrorAs(t, err, &auth)
		assert.False(t, Transient(err))
	}

	tests := []struct {
		name     string
		provider func(t *testing.T) Provider
		check    func(t *testing.T, err error)
	}{
		{"anthropic 429", func(t *testing.T) Provider {
			return newTestAnthropicProvider(t, jsonHandler(http.StatusTooManyRequests, anthropicErr("rate_limit_error")))
		}, isRateLimit},
		{"anthropic 401", func(t *testing.T) Provider {
			return newTestAnthropicProvider(t, jsonHandler(http.StatusUnauthorized, anthropicErr("authentication_error")))
		}, isAuth},
		{"anthropic 500", func(t *testing.T) Provider {
			return newTestAnthropicProvider(t, jsonHandler(http.StatusInternalServerError, anthropicErr("api_error")))
		}, isUnavailable},
		{"openai 429", func(t *testing.T) Provider {
			return newTestOpenAIProvider(t, jsonHandler(http.StatusTooManyRequests, openaiErr("tokens")))
		}, isRateLimit},
		{"openai 401", func(t *testing.T) Provider {
			return newTestOpenAIProvider(t, jsonHandler(http.StatusUnauthorized, openaiErr("invalid_api_key")))
		}, isAuth},
		{"openai 500", func(t *testing.T) Provider {
			return newTestOpenAIProvider(t, jsonHandler(http.StatusInternalServerError, openaiErr("server_error")))
		}, isUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.provider(t).Generate(context.Background(), planRequest())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestProviders_Truncated(t *testing.T) {
	partial := `{"week":1,"focus":"Matem`

	msg := anthropicMessage(partial)
	msg["stop_reason"] = "max_tokens"
	a := newTestAnthropicProvider(t, jsonHandler(http.StatusOK, msg))
	_, err := a.Generate(context.Background(), planRequest())
	var mt *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &mt)
	assert.Equal(t, partial, string(mt.Content))

	completion := openaiCompletion(partial)
	completion["choices"].([]map[string]any)[0]["finish_reason"] = "length"
	o := newTestOpenAIProvider(t, jsonHandler(http.StatusOK, completion))
	_, err = o.Generate(context.Background(), planRequest())
	assert.ErrorAs(t, err, &mt)
}

func TestNewAnthropicProvider_BaseURL(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		jsonHandler(http.StatusOK, anthropicMessage(weekPlanJSON))(w, r)
	}))
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: "claude-haiku", BaseURL: server.URL})
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())

	_, err = p.Generate(context.Background(), planRequest())
	require.NoError(t, err)
	assert.Equal(t, "/v1/messages", path)
}

func TestOpenRouterProvider_Attribution(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		jsonHandler(http.StatusOK, openaiCompletion(weekPlanJSON))(w, r)
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "google/gemini-2.5-flash",
		BaseURL: server.URL + "/api/v1",
	})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), planRequest())
	require.NoError(t, err)
	assert.Equal(t, "semestra", got.Get("X-Title"))
	assert.NotEmpty(t, got.Get("HTTP-Referer"))
	assert.Equal(t, "Bearer sk-or-test", got.Get("Authorization"))
}

func TestModelMapping(t *testing.T) {
	tests := []struct {
		models map[string]string
		input  string
		want   string
	}{
		{anthropicModels, "claude-haiku", "claude-haiku-4-5-20251001"},
		{anthropicModels, "claude-sonnet-4-20250514", "claude-sonnet-4-20250514"},
		{openaiModels, "gpt-4.1-mini", "gpt-4.1-mini"},
		{openaiModels, "o4-mini", "o4-mini"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveModel(tt.input, tt.models), tt.input)
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o", BaseURL: "https://gateway.example/v1"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())

	_, err = NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"})
	assert.Error(t, err)
}

func TestNewOpenRouterProvider(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.5-flash"})
	require.NoError(t, err)
	assert.Equal(t, "google/gemini-2.5-flash", p.ModelID(), "model ids pass through")

	_, err = NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.5-flash"})
	assert.Error(t, err, "API key required")

	_, err = NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test"})
	assert.Error(t, err, "model required")
}
