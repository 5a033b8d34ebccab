// Package fallback implements the deterministic analysis backend: canned
// issues from the catalog plus bounded-random quality metrics. It has no
// external dependency and never fails, which makes it the terminal entry of
// every fallback chain.
package fallback

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/frida212/code-analyzer/internal/catalog"
	"github.com/frida212/code-analyzer/pkg/models"
)

const fallbackModel = "deterministic-fallback-v1"

// Backend synthesizes analysis results locally.
type Backend struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a fallback backend with its own random source.
func New() *Backend {
	return &Backend{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (b *Backend) Name() string { return "fallback" }

// Available always reports true: this backend has nothing to reach.
func (b *Backend) Available(_ context.Context) bool { return true }

// Analyze returns the canned issue set for the requested mode, sorted by
// severity then descending confidence, with an overall score uniform in
// [80,100). Categories and ordering are identical across calls; only the
// numeric metrics vary.
func (b *Backend) Analyze(_ context.Context, req models.AnalysisRequest) (models.RawResult, error) {
	var filter catalog.Filter
	if models.ValidCategory(req.AnalysisType) {
		filter.Category = req.AnalysisType
	}

	issues := catalog.Issues(filter)
	models.SortBySeverity(issues)

	b.mu.Lock()
	score := 80 + b.rng.Float64()*20
	totalFiles := 10 + b.rng.Intn(40)
	b.mu.Unlock()

	risk := models.SeverityMedium
	if score >= 90 {
		risk = models.SeverityLow
	}

	return models.RawResult{
		Repository: models.RepositoryAnalysis{
			OverallScore:    score,
			TotalFiles:      totalFiles,
			RiskLevel:       risk,
			DeploymentReady: score >= 85,
		},
		Issues:          issues,
		Recommendations: catalog.Recommendations(),
		Summary:         "Deterministic fallback analysis: no AI backend was reachable",
		Model:           fallbackModel,
		Confidence:      0.5,
		AIPowered:       false,
		FallbackMode:    true,
	}, nil
}

// Compile-time check that Backend implements models.Backend.
var _ models.Backend = (*Backend)(nil)
