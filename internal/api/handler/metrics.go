package handler

import (
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/frida212/code-analyzer/internal/api/response"
	"github.com/frida212/code-analyzer/internal/catalog"
	"github.com/frida212/code-analyzer/internal/store"
	"github.com/frida212/code-analyzer/pkg/models"
)

// metricsRand feeds the bounded demo metrics. Guarded because handlers run
// concurrently and rand.Rand is not safe for concurrent use.
var (
	metricsMu   sync.Mutex
	metricsRand = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// Metrics handles GET /api/metrics. The dashboard tiles show bounded demo
// numbers derived from the canned issue set; when run history is available,
// analyses_completed comes from it.
func Metrics(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricsMu.Lock()
		qualityScore := 80 + metricsRand.Float64()*20
		filesAnalyzed := 120 + metricsRand.Intn(80)
		metricsMu.Unlock()

		body := map[string]any{
			"qualityScore":   qualityScore,
			"totalIssues":    len(catalog.AllIssues()),
			"filesAnalyzed":  filesAnalyzed,
			"securityIssues": catalog.CountByCategory(models.CategorySecurity),
			"ai_insights": map[string]any{
				"ai_detected_issues": len(catalog.Issues(catalog.Filter{AIOnly: true})),
				"critical_issues":    catalog.CountBySeverity(models.SeverityCritical),
				"recommendations":    catalog.Recommendations(),
			},
		}

		if st != nil {
			if n, err := st.CountRuns(r.Context()); err == nil {
				body["analyses_completed"] = n
			} else {
				slog.Warn("counting analysis runs failed", "error", err)
			}
		}

		response.JSON(w, body)
	}
}
