package analysis

import (
	"time"

	"github.com/frida212/code-analyzer/pkg/models"
	"github.com/google/uuid"
)

// Enrich converts a backend's raw result into the caller-facing envelope,
// filling provenance metadata: backend label, request ID, RFC3339 UTC
// timestamp, and duration. It never mutates raw, and it never fails:
// underivable fields become zero values instead of errors, so every backend
// yields the same field set.
func Enrich(raw models.RawResult, req models.AnalysisRequest, backendName string, elapsed time.Duration) models.AnalysisResult {
	repo := raw.Repository
	if repo.OverallScore < 0 {
		repo.OverallScore = 0
	}
	if repo.OverallScore > 100 {
		repo.OverallScore = 100
	}
	if repo.TotalFiles < 0 {
		repo.TotalFiles = 0
	}
	if repo.RiskLevel == "" {
		repo.RiskLevel = riskFromScore(repo.OverallScore)
	}

	issues := make([]models.Issue, len(raw.Issues))
	copy(issues, raw.Issues)

	recommendations := make([]string, len(raw.Recommendations))
	copy(recommendations, raw.Recommendations)

	confidence := raw.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	message := raw.Summary
	if message == "" {
		message = "Analysis completed successfully"
	}

	return models.AnalysisResult{
		Success:            true,
		Message:            message,
		RepositoryAnalysis: repo,
		Issues:             issues,
		Recommendations:    recommendations,
		AIPowered:          raw.AIPowered,
		FallbackMode:       raw.FallbackMode,
		Metadata: models.ResultMetadata{
			RequestID:     uuid.New().String(),
			Backend:       backendName,
			Model:         raw.Model,
			Confidence:    confidence,
			RepoPath:      req.RepoPath,
			CommitHash:    req.CommitHash,
			AnalysisType:  req.AnalysisType,
			FilesAnalyzed: repo.TotalFiles,
			DurationMS:    elapsed.Milliseconds(),
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// riskFromScore derives a risk level when the backend did not report one.
func riskFromScore(score float64) string {
	switch {
	case score >= 90:
		return "low"
	case score >= 75:
		return "medium"
	case score >= 50:
		return "high"
	default:
		return "critical"
	}
}
