package handler

import (
	"net/http"
	"time"

	"github.com/frida212/code-analyzer/internal/api/response"
)

// Health handles GET /api/health. The server is healthy as long as it can
// serve; backend readiness is reported alongside, never gating the status.
func Health(svc AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := svc.Status(r.Context())

		aiService := "degraded"
		if st.VertexAIAvailable || st.CloudFunctionAvailable || st.OpenAICompatAvailable {
			aiService = "operational"
		}

		response.JSON(w, map[string]any{
			"status":               "healthy",
			"timestamp":            time.Now().UTC().Format(time.RFC3339),
			"ai_service":           aiService,
			"vertex_ai_ready":      st.VertexAIAvailable,
			"cloud_function_ready": st.CloudFunctionAvailable,
		})
	}
}
