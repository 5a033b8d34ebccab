package models

import (
	"time"

	"github.com/google/uuid"
)

// RepositoryAnalysis summarizes a whole-repository analysis.
type RepositoryAnalysis struct {
	OverallScore    float64 `json:"overall_score"`
	TotalFiles      int     `json:"total_files"`
	RiskLevel       string  `json:"risk_level"`
	DeploymentReady bool    `json:"deployment_ready"`
}

// ResultMetadata carries provenance for an AnalysisResult: which backend
// produced it, with what confidence, and when.
type ResultMetadata struct {
	RequestID     string  `json:"request_id"`
	Backend       string  `json:"backend"`
	Model         string  `json:"model"`
	Confidence    float64 `json:"confidence"`
	RepoPath      string  `json:"repo_path"`
	CommitHash    string  `json:"commit_hash"`
	AnalysisType  string  `json:"analysis_type"`
	FilesAnalyzed int     `json:"files_analyzed"`
	DurationMS    int64   `json:"duration_ms"`
	Timestamp     string  `json:"timestamp"`
}

// AnalysisResult is the envelope returned to callers. Every backend produces
// the same field set; the enricher guarantees this regardless of which
// backend-specific shape came back.
type AnalysisResult struct {
	Success               bool               `json:"success"`
	Message               string             `json:"message"`
	RepositoryAnalysis    RepositoryAnalysis `json:"repository_analysis"`
	Issues                []Issue            `json:"issues"`
	Recommendations       []string           `json:"recommendations"`
	AIPowered             bool               `json:"ai_powered"`
	FallbackMode          bool               `json:"fallback_mode"`
	CloudFunctionFallback bool               `json:"cloud_function_fallback"`
	Retryable             bool               `json:"retryable"`
	Metadata              ResultMetadata     `json:"metadata"`
}

// AnalysisRun is a persisted history row for a completed analysis request.
// Recording runs is best-effort; serving a result never depends on it.
type AnalysisRun struct {
	ID           uuid.UUID `db:"id"            json:"id"`
	RepoPath     string    `db:"repo_path"     json:"repo_path"`
	CommitHash   string    `db:"commit_hash"   json:"commit_hash"`
	AnalysisType string    `db:"analysis_type" json:"analysis_type"`
	Backend      string    `db:"backend"       json:"backend"`
	Success      bool      `db:"success"       json:"success"`
	OverallScore float64   `db:"overall_score" json:"overall_score"`
	IssueCount   int       `db:"issue_count"   json:"issue_count"`
	AIPowered    bool      `db:"ai_powered"    json:"ai_powered"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
}
