package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsitive/mathcat/internal/logger"
	"github.com/pawsitive/mathcat/internal/store"
)

func TestResponseText(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{`"Let's look at problem 2."`, "Let's look at problem 2."},
		{`"line one\nline two"`, "line one\nline two"},
		{`{"answer":"5"}`, `{"answer":"5"}`},
		{`not json`, "not json"},
	}
	for _, tt := range tests {
		r := &Response{Content: json.RawMessage(tt.content)}
		assert.Equal(t, tt.want, r.Text(), tt.content)
	}
}

func TestMockProvider(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Text: "purr"},
		MockResponse{Err: &ErrRateLimit{}},
	)

	resp, err := mock.Generate(context.Background(), Request{System: "sys"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(resp.Content))
	assert.Equal(t, 10, resp.Usage.InputTokens)
	assert.Equal(t, "end", resp.StopReason)

	resp, err = mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "purr", resp.Text())

	_, err = mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	assert.True(t, errors.As(err, &rl))

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail), "empty queue")

	assert.Equal(t, 4, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls[0].System)
	assert.Equal(t, "mock", mock.ModelID())
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "homework", PurposeFrom(WithPurpose(ctx, "homework")))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, "MATHCAT_ANTHROPIC_API_KEY"},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk"}}, ""},
		{"openai without key", Config{Provider: "openai"}, "MATHCAT_OPENAI_API_KEY"},
		{"gemini without key", Config{Provider: "gemini"}, "MATHCAT_GEMINI_API_KEY"},
		{"openrouter without key", Config{Provider: "openrouter"}, "MATHCAT_OPENROUTER_API_KEY"},
		{"mock needs no key", Config{Provider: "mock"}, ""},
		{"unknown provider", Config{Provider: "carrier-pigeon"}, "unknown LLM provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MATHCAT_LLM_PROVIDER", "MATHCAT_ANTHROPIC_API_KEY", "MATHCAT_ANTHROPIC_MODEL",
		"MATHCAT_ANTHROPIC_BASE_URL", "MATHCAT_LLM_TIMEOUT",
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("MATHCAT_LLM_PROVIDER", "anthropic")
	t.Setenv("MATHCAT_ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("MATHCAT_ANTHROPIC_MODEL", "claude-haiku")
	t.Setenv("MATHCAT_LLM_TIMEOUT", "45s")

	cfg := ConfigFromEnv()
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "sk-ant", cfg.Anthropic.APIKey)
	assert.Equal(t, "claude-haiku", cfg.Anthropic.Model)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestDiscoverConfig(t *testing.T) {
	t.Run("nothing set", func(t *testing.T) {
		clearLLMEnv(t)
		_, ok := DiscoverConfig()
		assert.False(t, ok)
	})

	t.Run("anthropic wins", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("GEMINI_API_KEY", "g")
		t.Setenv("ANTHROPIC_API_KEY", "a")
		cfg, ok := DiscoverConfig()
		require.True(t, ok)
		assert.Equal(t, "anthropic", cfg.Provider)
		assert.Equal(t, "claude-sonnet", cfg.Anthropic.Model)
	})

	t.Run("falls through to gemini", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("GEMINI_API_KEY", "g")
		cfg, ok := DiscoverConfig()
		require.True(t, ok)
		assert.Equal(t, "gemini", cfg.Provider)
	})
}

func TestNewProviderFromEnv(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		clearLLMEnv(t)
		_, err := NewProviderFromEnv(context.Background(), nil, nil)
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("explicit mock", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("MATHCAT_LLM_PROVIDER", "mock")
		p, err := NewProviderFromEnv(context.Background(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "mock", p.ModelID())
	})

	t.Run("explicit provider missing key", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("MATHCAT_LLM_PROVIDER", "openai")
		_, err := NewProviderFromEnv(context.Background(), nil, nil)
		assert.Error(t, err)
	})

	t.Run("discovered key is wrapped", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
		p, err := NewProviderFromEnv(context.Background(), nil, nil)
		require.NoError(t, err)
		_, isRetry := p.(*RetryProvider)
		assert.True(t, isRetry)
		assert.Equal(t, "claude-sonnet-4-20250514", p.ModelID())
	})
}

type recordingRepo struct {
	store.EventRepo
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(
		MockResponse{Text: "Looks like a ratio problem!", Usage: Usage{InputTokens: 900, OutputTokens: 40}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("overloaded")}},
	)
	p := WithLogging(mock, "anthropic", repo, logger.Nop())
	ctx := WithPurpose(context.Background(), "homework")

	req := Request{
		System: "You are Professor Whiskers.",
		Messages: []Message{{
			Role:    RoleUser,
			Content: "help",
			Images:  []Image{{MediaType: "image/png", Data: strings.Repeat("A", 400)}},
		}},
	}
	_, err := p.Generate(ctx, req)
	require.NoError(t, err)
	_, err = p.Generate(ctx, req)
	require.Error(t, err)

	require.Len(t, repo.events, 2)
	ok := repo.events[0]
	assert.Equal(t, "anthropic", ok.Provider)
	assert.Equal(t, "mock", ok.Model)
	assert.Equal(t, "homework", ok.Purpose)
	assert.True(t, ok.Success)
	assert.Equal(t, 900, ok.InputTokens)
	assert.Contains(t, ok.RequestBody, "<image image/png, 400 base64 bytes>")
	assert.NotContains(t, ok.RequestBody, strings.Repeat("A", 400))
	assert.Contains(t, ok.ResponseBody, "ratio problem")

	failed := repo.events[1]
	assert.False(t, failed.Success)
	assert.Contains(t, failed.ErrorMessage, "overloaded")
}

func TestLoggingProvider_RepoFailureDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), "mock", repo, nil)

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text())
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("claude-sonnet")
	require.NotNil(t, c)
	assert.InDelta(t, 3.0+1.5, c.Cost(1_000_000, 100_000), 1e-9)

	assert.NotNil(t, LookupCost("gpt-4o-mini"))
	assert.Nil(t, LookupCost("mystery-model"))
}
