package openaicompat_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frida212/code-analyzer/internal/backend"
	"github.com/frida212/code-analyzer/internal/backend/openaicompat"
	"github.com/frida212/code-analyzer/internal/config"
	"github.com/frida212/code-analyzer/pkg/models"
)

// completionServer fakes the chat-completions endpoint, returning content as
// the single choice.
func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": content},
				},
			},
		})
	}))
}

func testBackend(url string) *openaicompat.Backend {
	return openaicompat.New(config.OpenAIConfig{
		BaseURL: url,
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
	})
}

func testRequest() models.AnalysisRequest {
	return models.AnalysisRequest{
		RepoPath:     "/tmp/repo",
		CommitHash:   "HEAD",
		AnalysisType: models.AnalysisQuality,
	}
}

const analysisJSON = `{"repository_analysis":{"overall_score":72,"total_files":30},"issues":[{"type":"quality","severity":"low","message":"naming"}],"summary":"ok","confidence":0.7}`

func TestAnalyze_ParsesCompletion(t *testing.T) {
	srv := completionServer(t, analysisJSON)
	defer srv.Close()

	b := testBackend(srv.URL)
	require.True(t, b.Available(context.Background()))

	raw, err := b.Analyze(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, 72.0, raw.Repository.OverallScore)
	require.Len(t, raw.Issues, 1)
	assert.Equal(t, models.OriginAI, raw.Issues[0].Origin)
	assert.Equal(t, "gpt-4o-mini", raw.Model)
}

func TestAnalyze_StripsCodeFences(t *testing.T) {
	srv := completionServer(t, "```json\n"+analysisJSON+"\n```")
	defer srv.Close()

	raw, err := testBackend(srv.URL).Analyze(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, 72.0, raw.Repository.OverallScore)
}

func TestAnalyze_NonJSONCompletion(t *testing.T) {
	srv := completionServer(t, "I'm sorry, I can't analyze that repository.")
	defer srv.Close()

	_, err := testBackend(srv.URL).Analyze(context.Background(), testRequest())
	assert.ErrorIs(t, err, backend.ErrMalformedOutput)
}

func TestAnalyze_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testBackend(srv.URL).Analyze(context.Background(), testRequest())
	assert.ErrorIs(t, err, backend.ErrBackendFailed)
}

func TestUnconfigured(t *testing.T) {
	b := openaicompat.New(config.OpenAIConfig{})

	assert.False(t, b.Available(context.Background()))

	_, err := b.Analyze(context.Background(), testRequest())
	assert.ErrorIs(t, err, backend.ErrBackendUnavailable)
}
