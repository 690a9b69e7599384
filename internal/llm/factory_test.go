package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("mock is returned undecorated", func(t *testing.T) {
		p, err := NewProvider(ctx, Config{Provider: "mock"}, nil, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &MockProvider{}, p)
	})

	t.Run("openai is decorated", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = "sk-test"

		p, err := NewProvider(ctx, cfg, nil, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &TimeoutProvider{}, p)
		assert.Equal(t, "gpt-4o-mini", p.ModelID())
	})

	t.Run("no timeout leaves retry outermost", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = "sk-or"
		cfg.Timeout = 0

		p, err := NewProvider(ctx, cfg, nil, nil)
		require.NoError(t, err)
		assert.IsType(t, &RetryProvider{}, p)
		assert.Equal(t, "google/gemini-2.5-flash", p.ModelID())
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewProvider(ctx, Config{Provider: "anthropic"}, nil, nil)
		assert.ErrorContains(t, err, "SEMESTRA_LLM_ANTHROPIC_API_KEY")
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewProvider(ctx, Config{Provider: "cohere"}, nil, nil)
		assert.ErrorContains(t, err, "unknown LLM provider")
	})
}
