// Package handler contains the HTTP handlers. Each handler is a thin
// translation: parse the request, call the analysis service or a read-only
// accessor, serialize JSON. Business logic lives in internal/analysis.
package handler

import (
	"context"

	"github.com/frida212/code-analyzer/pkg/models"
)

// AnalysisService is the orchestrator surface the handlers depend on.
type AnalysisService interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) models.AnalysisResult
	Status(ctx context.Context) models.ProviderStatus
}

// EndpointManager manages the Vertex AI endpoint lifecycle.
type EndpointManager interface {
	EndpointID() string
	Initialized() bool
	CreateEndpoint(ctx context.Context) (string, error)
}
