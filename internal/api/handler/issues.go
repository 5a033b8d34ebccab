package handler

import (
	"net/http"
	"time"

	"github.com/frida212/code-analyzer/internal/api/response"
	"github.com/frida212/code-analyzer/internal/catalog"
	"github.com/frida212/code-analyzer/pkg/models"
)

// Issues handles GET /api/issues. Issues come back ordered by ascending
// remediation priority with ties broken by descending confidence.
func Issues() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		f := catalog.Filter{
			Category:          q.Get("type"),
			Severity:          q.Get("severity"),
			AIOnly:            q.Get("ai_only") == "true",
			CloudFunctionOnly: q.Get("cloud_function_only") == "true",
		}

		if f.Category != "" && !models.ValidCategory(f.Category) {
			response.Error(w, http.StatusBadRequest,
				"INVALID_REQUEST", "unknown issue type filter", nil)
			return
		}
		if f.Severity != "" && !models.ValidSeverity(f.Severity) {
			response.Error(w, http.StatusBadRequest,
				"INVALID_REQUEST", "unknown severity filter", nil)
			return
		}

		issues := catalog.Issues(f)

		response.JSON(w, map[string]any{
			"issues": issues,
			"metadata": map[string]any{
				"total":     len(issues),
				"filters":   q.Encode(),
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			},
		})
	}
}
