package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/frida212/code-analyzer/internal/api/response"
	"github.com/frida212/code-analyzer/internal/backend"
	"github.com/frida212/code-analyzer/internal/cache"
)

const statusCacheTTL = 30 * time.Second

// aiStatus is the GET /api/ai/status body. Cached briefly so the dashboard's
// polling does not hammer the availability checks.
type aiStatus struct {
	Initialized            bool   `json:"initialized"`
	EndpointID             string `json:"endpoint_id"`
	VertexAIAvailable      bool   `json:"vertex_ai_available"`
	CloudFunctionAvailable bool   `json:"cloud_function_available"`
	OpenAICompatAvailable  bool   `json:"openai_compat_available"`
	LastChecked            string `json:"last_checked"`
}

// AIStatus handles GET /api/ai/status.
func AIStatus(svc AnalysisService, mgr EndpointManager, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cached, ok, err := c.Get(r.Context(), cache.ProviderStatusKey()); err == nil && ok {
			var st aiStatus
			if json.Unmarshal(cached, &st) == nil {
				response.JSON(w, st)
				return
			}
		}

		ps := svc.Status(r.Context())
		st := aiStatus{
			VertexAIAvailable:      ps.VertexAIAvailable,
			CloudFunctionAvailable: ps.CloudFunctionAvailable,
			OpenAICompatAvailable:  ps.OpenAICompatAvailable,
			LastChecked:            ps.LastChecked.Format(time.RFC3339),
		}
		if mgr != nil {
			st.Initialized = mgr.Initialized()
			st.EndpointID = mgr.EndpointID()
		}

		if buf, err := json.Marshal(st); err == nil {
			if err := c.Set(r.Context(), cache.ProviderStatusKey(), buf, statusCacheTTL); err != nil {
				slog.Warn("caching provider status failed", "error", err)
			}
		}

		response.JSON(w, st)
	}
}

// CreateEndpoint handles POST /api/ai/create-endpoint.
func CreateEndpoint(mgr EndpointManager, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mgr == nil {
			response.Error(w, http.StatusServiceUnavailable,
				"ENDPOINT_UNAVAILABLE", "Vertex AI bridge is not configured", nil)
			return
		}

		id, err := mgr.CreateEndpoint(r.Context())
		if err != nil {
			slog.Error("endpoint creation failed", "error", err)
			code := "ENDPOINT_CREATE_FAILED"
			if errors.Is(err, backend.ErrBackendUnavailable) {
				code = "ENDPOINT_UNAVAILABLE"
			}
			response.Error(w, http.StatusBadGateway,
				code, "Could not create Vertex AI endpoint", nil)
			return
		}

		// The endpoint just changed, so the cached status is stale.
		if err := c.Delete(r.Context(), cache.ProviderStatusKey()); err != nil {
			slog.Warn("invalidating provider status cache failed", "error", err)
		}

		response.JSON(w, map[string]any{
			"success":     true,
			"endpoint_id": id,
			"message":     "Vertex AI endpoint created",
		})
	}
}
