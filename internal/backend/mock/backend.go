// Package mock provides a models.Backend test double.
package mock

import (
	"context"

	"github.com/frida212/code-analyzer/pkg/models"
)

// Backend satisfies models.Backend for testing. Call counters let tests
// assert which backends were (not) attempted.
type Backend struct {
	Name_         string
	AvailableFunc func(ctx context.Context) bool
	AnalyzeFunc   func(ctx context.Context, req models.AnalysisRequest) (models.RawResult, error)

	AvailableCalls int
	AnalyzeCalls   int
}

func (m *Backend) Name() string { return m.Name_ }

func (m *Backend) Available(ctx context.Context) bool {
	m.AvailableCalls++
	if m.AvailableFunc != nil {
		return m.AvailableFunc(ctx)
	}
	return true
}

func (m *Backend) Analyze(ctx context.Context, req models.AnalysisRequest) (models.RawResult, error) {
	m.AnalyzeCalls++
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, req)
	}
	return models.RawResult{}, nil
}

// NewSucceeding returns a mock that always produces the given raw result.
func NewSucceeding(name string, raw models.RawResult) *Backend {
	return &Backend{
		Name_: name,
		AnalyzeFunc: func(_ context.Context, _ models.AnalysisRequest) (models.RawResult, error) {
			return raw, nil
		},
	}
}

// NewFailing returns an available mock whose Analyze always returns err.
func NewFailing(name string, err error) *Backend {
	return &Backend{
		Name_: name,
		AnalyzeFunc: func(_ context.Context, _ models.AnalysisRequest) (models.RawResult, error) {
			return models.RawResult{}, err
		},
	}
}

// NewUnavailable returns a mock that reports itself unavailable.
func NewUnavailable(name string) *Backend {
	return &Backend{
		Name_:         name,
		AvailableFunc: func(_ context.Context) bool { return false },
	}
}

// Compile-time check that Backend implements models.Backend.
var _ models.Backend = (*Backend)(nil)
