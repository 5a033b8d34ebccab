package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/frida212/code-analyzer/internal/api/response"
	"github.com/frida212/code-analyzer/internal/config"
	"github.com/frida212/code-analyzer/pkg/models"
)

// analyzeRequest is the POST /api/analyze body. The boolean fields are
// pointers so that an absent field can be told apart from an explicit false.
type analyzeRequest struct {
	RepoPath         string `json:"repoPath"`
	CommitHash       string `json:"commitHash"`
	AnalysisType     string `json:"analysisType"`
	UseAI            *bool  `json:"useAI"`
	UseCloudFunction *bool  `json:"useCloudFunction"`
}

// Analyze handles POST /api/analyze. A missing repository locator is the one
// caller error that never reaches the fallback chain; everything else flows
// through the orchestrator, which always produces a well-formed result.
func Analyze(svc AnalysisService, cfg config.CloudFunctionConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.Error(w, http.StatusBadRequest,
				"INVALID_REQUEST", "Request body must be valid JSON", nil)
			return
		}

		if body.RepoPath == "" {
			response.Error(w, http.StatusBadRequest,
				"INVALID_REQUEST", "repoPath is required", nil)
			return
		}

		req := models.AnalysisRequest{
			RepoPath:         body.RepoPath,
			CommitHash:       "HEAD",
			AnalysisType:     models.AnalysisComprehensive,
			UseAI:            true,
			UseCloudFunction: cfg.Preferred,
		}
		if body.CommitHash != "" {
			req.CommitHash = body.CommitHash
		}
		if body.AnalysisType != "" {
			if !models.ValidAnalysisType(body.AnalysisType) {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
					fmt.Sprintf("unknown analysisType %q", body.AnalysisType), nil)
				return
			}
			req.AnalysisType = body.AnalysisType
		}
		if body.UseAI != nil {
			req.UseAI = *body.UseAI
		}
		if body.UseCloudFunction != nil {
			req.UseCloudFunction = *body.UseCloudFunction
		}

		res := svc.Analyze(r.Context(), req)
		if !res.Success {
			response.JSONStatus(w, http.StatusInternalServerError, res)
			return
		}
		response.JSON(w, res)
	}
}
