// Package repository defines the persistence ports used by the use case layer.
package repository

import (
	"context"

	"jobfeed/internal/domain/entity"
)

// JobRepository is the durable store of canonical job offers.
//
// Implementations return new Job values read back from storage, never the
// instances handed to Save or SaveAll.
type JobRepository interface {
	// Save inserts one job and returns its freshly assigned identifier.
	Save(ctx context.Context, job entity.Job) (int64, error)
	// SaveAll inserts the batch in a single transaction. Either every job is
	// stored or none is; on failure the state before the call is untouched.
	// Identifiers are returned in input order.
	SaveAll(ctx context.Context, jobs []entity.Job) ([]int64, error)
	// ReplaceAll deletes every stored job and inserts the batch, all in one
	// transaction. On failure the previous data set is still in place.
	ReplaceAll(ctx context.Context, jobs []entity.Job) ([]int64, error)
	// FindAll returns every stored job ordered by the raw publication text,
	// descending (byte-wise comparison, not a calendar sort).
	FindAll(ctx context.Context) ([]entity.Job, error)
	// Clear deletes every stored job. Identifier sequencing is not reset.
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
