package store

import (
	"context"
	"errors"

	"github.com/frida212/code-analyzer/pkg/models"
)

var ErrNotFound = errors.New("resource not found")

// Store is the data access interface for analysis-run history. The store is
// optional infrastructure: callers must tolerate running without one, and a
// failed write never fails the request that triggered it.
type Store interface {
	Ping(ctx context.Context) error
	CreateRun(ctx context.Context, run *models.AnalysisRun) error
	ListRecentRuns(ctx context.Context, limit int) ([]*models.AnalysisRun, error)
	CountRuns(ctx context.Context) (int, error)
}
