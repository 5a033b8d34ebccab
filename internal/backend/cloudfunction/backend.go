// Package cloudfunction implements the remote serverless analysis backend:
// a JSON POST to a configured Cloud Function URL.
package cloudfunction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/frida212/code-analyzer/internal/backend"
	"github.com/frida212/code-analyzer/pkg/models"
)

// Backend calls the remote cloud function. An empty URL means the backend is
// unconfigured; Available returns false and no network call is ever made.
type Backend struct {
	url    string
	client *http.Client
}

// New creates a cloud function backend for the given URL.
func New(url string, timeout time.Duration) *Backend {
	return &Backend{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (b *Backend) Name() string { return "cloud-function" }

// Available is a pure configuration check: no reachability probe.
func (b *Backend) Available(_ context.Context) bool { return b.url != "" }

type analyzeRequest struct {
	RepoPath     string `json:"repoPath"`
	CommitHash   string `json:"commitHash"`
	AnalysisType string `json:"analysisType"`
}

type analyzeResponse struct {
	Status   string          `json:"status"`
	Analysis backend.Payload `json:"analysis"`
}

func (b *Backend) Analyze(ctx context.Context, req models.AnalysisRequest) (models.RawResult, error) {
	if b.url == "" {
		return models.RawResult{}, backend.ErrBackendUnavailable
	}

	body, err := json.Marshal(analyzeRequest{
		RepoPath:     req.RepoPath,
		CommitHash:   req.CommitHash,
		AnalysisType: req.AnalysisType,
	})
	if err != nil {
		return models.RawResult{}, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(body))
	if err != nil {
		return models.RawResult{}, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return models.RawResult{}, fmt.Errorf("%w: %v", backend.ErrBackendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.RawResult{}, fmt.Errorf("%w: status %d", backend.ErrBackendFailed, resp.StatusCode)
	}

	var cfResp analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cfResp); err != nil {
		return models.RawResult{}, fmt.Errorf("%w: %v", backend.ErrMalformedOutput, err)
	}
	if cfResp.Status != "success" {
		return models.RawResult{}, fmt.Errorf("%w: status %q", backend.ErrBackendFailed, cfResp.Status)
	}

	raw := cfResp.Analysis.RawResult(models.OriginCloudFunction)
	if raw.Model == "" {
		raw.Model = "vertex-ai-endpoint"
	}
	return raw, nil
}

// Compile-time check that Backend implements models.Backend.
var _ models.Backend = (*Backend)(nil)
