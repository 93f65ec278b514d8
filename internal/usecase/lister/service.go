// Package lister provides read-only listing of the stored jobs.
package lister

import (
	"context"
	"fmt"

	"jobfeed/internal/domain/entity"
	"jobfeed/internal/repository"
)

// Service lists stored jobs.
type Service struct {
	Repo repository.JobRepository
}

// NewService creates a lister Service.
func NewService(repo repository.JobRepository) *Service {
	return &Service{Repo: repo}
}

// List returns every stored job in repository order.
func (s *Service) List(ctx context.Context) ([]entity.Job, error) {
	jobs, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// ListAsMaps returns every stored job flattened with the storage column names.
func (s *Service) ListAsMaps(ctx context.Context) ([]map[string]any, error) {
	jobs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ToMap())
	}
	return out, nil
}

// Count returns the number of stored jobs.
func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}
