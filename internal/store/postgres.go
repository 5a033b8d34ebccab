package store

import (
	"context"
	"fmt"

	"github.com/frida212/code-analyzer/pkg/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) CreateRun(ctx context.Context, run *models.AnalysisRun) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO analysis_runs
		 (id, repo_path, commit_hash, analysis_type, backend, success, overall_score, issue_count, ai_powered, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		run.ID, run.RepoPath, run.CommitHash, run.AnalysisType, run.Backend,
		run.Success, run.OverallScore, run.IssueCount, run.AIPowered, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("create analysis run: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRecentRuns(ctx context.Context, limit int) ([]*models.AnalysisRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, repo_path, commit_hash, analysis_type, backend, success, overall_score, issue_count, ai_powered, created_at
		 FROM analysis_runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.AnalysisRun
	for rows.Next() {
		var r models.AnalysisRun
		if err := rows.Scan(&r.ID, &r.RepoPath, &r.CommitHash, &r.AnalysisType, &r.Backend,
			&r.Success, &r.OverallScore, &r.IssueCount, &r.AIPowered, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis run: %w", err)
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

func (s *PostgresStore) CountRuns(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM analysis_runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count analysis runs: %w", err)
	}
	return n, nil
}

// Compile-time check that PostgresStore implements Store.
var _ Store = (*PostgresStore)(nil)
