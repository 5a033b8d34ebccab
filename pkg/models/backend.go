// Package models contains shared data models used across the code analyzer codebase.
package models

import "context"

// Backend is the core interface every analysis backend implements.
// Callers always inject this interface, never a concrete backend.
type Backend interface {
	// Analyze runs an analysis and returns a backend-shaped raw result.
	// Backend-specific wire formats must never leak past this boundary.
	Analyze(ctx context.Context, req AnalysisRequest) (RawResult, error)
	// Available reports whether this backend can currently serve requests.
	// Must be cheap: a configuration or initialization check, never a network call.
	Available(ctx context.Context) bool
	// Name returns the backend identifier (e.g., "cloud-function", "vertex-ai").
	Name() string
}

// AnalysisRequest is the input to an analysis operation. Immutable once
// constructed; created per HTTP call.
type AnalysisRequest struct {
	RepoPath         string
	CommitHash       string
	AnalysisType     string
	UseAI            bool
	UseCloudFunction bool
}

// RawResult is the normalized output of a single backend, before enrichment.
type RawResult struct {
	Repository      RepositoryAnalysis
	Issues          []Issue
	Recommendations []string
	Summary         string
	Model           string
	Confidence      float64
	AIPowered       bool
	FallbackMode    bool
}

// Analysis modes accepted by POST /api/analyze.
const (
	AnalysisComprehensive = "comprehensive"
	AnalysisSecurity      = "security"
	AnalysisQuality       = "quality"
	AnalysisPerformance   = "performance"
)

// ValidAnalysisType reports whether t is a recognized analysis mode.
func ValidAnalysisType(t string) bool {
	switch t {
	case AnalysisComprehensive, AnalysisSecurity, AnalysisQuality, AnalysisPerformance:
		return true
	}
	return false
}
