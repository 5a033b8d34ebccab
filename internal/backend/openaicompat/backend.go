// Package openaicompat implements an analysis backend speaking the OpenAI
// chat-completions protocol, usable against any compatible endpoint
// (OpenAI itself, vLLM, Ollama's compat layer, ...).
package openaicompat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/frida212/code-analyzer/internal/backend"
	"github.com/frida212/code-analyzer/internal/config"
	"github.com/frida212/code-analyzer/pkg/models"
	openai "github.com/sashabaranov/go-openai"
)

// Backend calls a chat-completions endpoint and parses the completion body
// as an analysis payload.
type Backend struct {
	client *openai.Client
	model  string
}

// New creates the backend. With an empty base URL the backend stays
// unconfigured and Available reports false.
func New(cfg config.OpenAIConfig) *Backend {
	if cfg.BaseURL == "" {
		return &Backend{}
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	return &Backend{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

func (b *Backend) Name() string { return "openai-compat" }

func (b *Backend) Available(_ context.Context) bool { return b.client != nil }

func (b *Backend) Analyze(ctx context.Context, req models.AnalysisRequest) (models.RawResult, error) {
	if b.client == nil {
		return models.RawResult{}, backend.ErrBackendUnavailable
	}

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       b.model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: analysisPrompt(req)},
		},
	})
	if err != nil {
		return models.RawResult{}, fmt.Errorf("%w: %v", backend.ErrBackendFailed, err)
	}
	if len(resp.Choices) == 0 {
		return models.RawResult{}, fmt.Errorf("%w: empty completion", backend.ErrMalformedOutput)
	}

	var p backend.Payload
	content := stripFences(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &p); err != nil {
		return models.RawResult{}, fmt.Errorf("%w: %v", backend.ErrMalformedOutput, err)
	}

	raw := p.RawResult(models.OriginAI)
	if raw.Model == "" {
		raw.Model = b.model
	}
	return raw, nil
}

// stripFences removes a surrounding markdown code fence, which models emit
// even when asked for bare JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Compile-time check that Backend implements models.Backend.
var _ models.Backend = (*Backend)(nil)
