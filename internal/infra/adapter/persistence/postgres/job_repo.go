package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobfeed/internal/domain/entity"
	"jobfeed/internal/infra/db"
	"jobfeed/internal/observability/metrics"
	"jobfeed/internal/repository"
)

const insertJobQuery = `
INSERT INTO job (reference, title, description, url, company_name, publication)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

type JobRepo struct{ db *sql.DB }

func NewJobRepo(db *sql.DB) repository.JobRepository {
	return &JobRepo{db: db}
}

func (repo *JobRepo) Save(ctx context.Context, job entity.Job) (int64, error) {
	defer observe("save", time.Now())

	var id int64
	if err := repo.db.QueryRowContext(ctx, insertJobQuery, jobArgs(job)...).Scan(&id); err != nil {
		return 0, fmt.Errorf("Save: QueryRowContext: %w", err)
	}
	return id, nil
}

func (repo *JobRepo) SaveAll(ctx context.Context, jobs []entity.Job) ([]int64, error) {
	defer observe("save_all", time.Now())

	var ids []int64
	err := db.WithTx(ctx, repo.db, func(tx *sql.Tx) error {
		var err error
		ids, err = insertJobs(ctx, tx, jobs)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("SaveAll: %w", err)
	}
	return ids, nil
}

func (repo *JobRepo) ReplaceAll(ctx context.Context, jobs []entity.Job) ([]int64, error) {
	defer observe("replace_all", time.Now())

	var ids []int64
	err := db.WithTx(ctx, repo.db, func(tx *sql.Tx) error {
		// DELETE leaves the id sequence untouched.
		if _, err := tx.ExecContext(ctx, `DELETE FROM job`); err != nil {
			return fmt.Errorf("ExecContext: %w", err)
		}
		var err error
		ids, err = insertJobs(ctx, tx, jobs)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("ReplaceAll: %w", err)
	}
	return ids, nil
}

func insertJobs(ctx context.Context, tx *sql.Tx, jobs []entity.Job) ([]int64, error) {
	stmt, err := tx.PrepareContext(ctx, insertJobQuery)
	if err != nil {
		return nil, fmt.Errorf("PrepareContext: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	ids := make([]int64, 0, len(jobs))
	for i, job := range jobs {
		var id int64
		if err := stmt.QueryRowContext(ctx, jobArgs(job)...).Scan(&id); err != nil {
			return nil, fmt.Errorf("QueryRowContext (job %d): %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (repo *JobRepo) FindAll(ctx context.Context) ([]entity.Job, error) {
	defer observe("find_all", time.Now())

	// COLLATE "C" compares bytes, matching the raw text ordering of SQLite.
	const query = `
SELECT id, reference, title, description, url, company_name, publication
FROM job
ORDER BY publication COLLATE "C" DESC, id ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("FindAll: %w", err)
	}
	defer func() { _ = rows.Close() }()

	jobs := make([]entity.Job, 0, 50)
	for rows.Next() {
		var job entity.Job
		if err := rows.Scan(
			&job.ID, &job.Reference, &job.Title, &job.Description,
			&job.URL, &job.CompanyName, &job.PublishedDate,
		); err != nil {
			return nil, fmt.Errorf("FindAll: Scan: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FindAll: rows.Err: %w", err)
	}
	return jobs, nil
}

func (repo *JobRepo) Clear(ctx context.Context) error {
	defer observe("clear", time.Now())

	if _, err := repo.db.ExecContext(ctx, `DELETE FROM job`); err != nil {
		return fmt.Errorf("Clear: %w", err)
	}
	return nil
}

func (repo *JobRepo) Count(ctx context.Context) (int64, error) {
	defer observe("count", time.Now())

	var n int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM job`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

func jobArgs(job entity.Job) []any {
	return []any{
		job.Reference, job.Title, job.Description,
		job.URL, job.CompanyName, job.PublishedDate,
	}
}

func observe(operation string, start time.Time) {
	metrics.RecordDBQuery(operation, time.Since(start))
}
