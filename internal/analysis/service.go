// Package analysis contains the fallback orchestrator and the result
// metadata enricher.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frida212/code-analyzer/internal/store"
	"github.com/frida212/code-analyzer/pkg/models"
	"github.com/google/uuid"
)

// Service routes analysis requests through an ordered chain of backends.
type Service struct {
	cloudFunction models.Backend // nil when CLOUD_FUNCTION_URL is unset
	vertex        models.Backend // nil when the bridge is not deployed
	openAI        models.Backend // nil when no compat endpoint is configured
	fallback      models.Backend // never nil
	store         store.Store    // nil disables run history
	timeout       time.Duration  // per-attempt budget
}

// NewService wires the orchestrator. fallback must never be nil; the other
// backends may be.
func NewService(cloudFunction, vertex, openAI, fallback models.Backend, st store.Store, timeout time.Duration) *Service {
	return &Service{
		cloudFunction: cloudFunction,
		vertex:        vertex,
		openAI:        openAI,
		fallback:      fallback,
		store:         st,
		timeout:       timeout,
	}
}

// candidates assembles the fallback chain for one request. The preference
// order is fixed: cloud function, vertex bridge, OpenAI-compatible endpoint,
// deterministic fallback. Adding a backend is a data change here, not a
// control-flow change.
func (s *Service) candidates(req models.AnalysisRequest) []models.Backend {
	chain := make([]models.Backend, 0, 4)
	if req.UseCloudFunction && s.cloudFunction != nil {
		chain = append(chain, s.cloudFunction)
	}
	if req.UseAI {
		if s.vertex != nil {
			chain = append(chain, s.vertex)
		}
		if s.openAI != nil {
			chain = append(chain, s.openAI)
		}
	}
	return append(chain, s.fallback)
}

// Analyze runs the request through the chain and returns the first
// successful result, enriched with provenance metadata. It never returns an
// error: backend failures are logged and trigger fallthrough, and the
// terminal deterministic backend has no external dependency. Input
// validation (a missing repository locator) belongs to the HTTP layer and
// never reaches this method.
func (s *Service) Analyze(ctx context.Context, req models.AnalysisRequest) models.AnalysisResult {
	start := time.Now()

	var firstErr error
	for _, b := range s.candidates(req) {
		if !b.Available(ctx) {
			slog.Debug("backend unavailable, skipping", "backend", b.Name())
			continue
		}

		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		raw, err := b.Analyze(attemptCtx, req)
		cancel()
		if err != nil {
			slog.Warn("backend failed, falling through",
				"backend", b.Name(),
				"repo", req.RepoPath,
				"error", err,
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		res := Enrich(raw, req, b.Name(), time.Since(start))
		if req.UseCloudFunction && b != s.cloudFunction {
			res.CloudFunctionFallback = true
		}
		s.recordRun(ctx, req, res)
		return res
	}

	// The chain always ends in the deterministic backend, so reaching this
	// point means even it failed. Report a structured failure carrying the
	// first triggering error; full detail stays in the server logs.
	slog.Error("all analysis backends exhausted", "repo", req.RepoPath, "error", firstErr)

	msg := "all analysis backends failed"
	if firstErr != nil {
		msg = fmt.Sprintf("all analysis backends failed: %v", firstErr)
	}
	res := models.AnalysisResult{
		Success:         false,
		Message:         msg,
		Issues:          []models.Issue{},
		Recommendations: []string{},
		FallbackMode:    true,
		Retryable:       true,
		Metadata: models.ResultMetadata{
			RequestID:    uuid.New().String(),
			RepoPath:     req.RepoPath,
			CommitHash:   req.CommitHash,
			AnalysisType: req.AnalysisType,
			DurationMS:   time.Since(start).Milliseconds(),
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
		},
	}
	if req.UseCloudFunction {
		res.CloudFunctionFallback = true
	}
	s.recordRun(ctx, req, res)
	return res
}

// Status recomputes backend availability on demand.
func (s *Service) Status(ctx context.Context) models.ProviderStatus {
	st := models.ProviderStatus{LastChecked: time.Now().UTC()}
	if s.cloudFunction != nil {
		st.CloudFunctionAvailable = s.cloudFunction.Available(ctx)
	}
	if s.vertex != nil {
		st.VertexAIAvailable = s.vertex.Available(ctx)
	}
	if s.openAI != nil {
		st.OpenAICompatAvailable = s.openAI.Available(ctx)
	}
	return st
}

// recordRun persists run history, best effort. A write failure is logged and
// never surfaces to the caller.
func (s *Service) recordRun(ctx context.Context, req models.AnalysisRequest, res models.AnalysisResult) {
	if s.store == nil {
		return
	}
	run := &models.AnalysisRun{
		ID:           uuid.New(),
		RepoPath:     req.RepoPath,
		CommitHash:   req.CommitHash,
		AnalysisType: req.AnalysisType,
		Backend:      res.Metadata.Backend,
		Success:      res.Success,
		OverallScore: res.RepositoryAnalysis.OverallScore,
		IssueCount:   len(res.Issues),
		AIPowered:    res.AIPowered,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateRun(ctx, run); err != nil {
		slog.Warn("recording analysis run failed", "error", err)
	}
}
