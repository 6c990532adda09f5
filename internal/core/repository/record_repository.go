package repository

import (
	"context"
	"time"

	"github.com/jmolenaar/pharmvault/internal/core/domain"
)

type RecordRepository interface {
	// Create inserts the record and assigns its ID.
	Create(ctx context.Context, record *domain.BackupRecord) error

	// FindByID returns nil without error when no record exists.
	FindByID(ctx context.Context, id int64) (*domain.BackupRecord, error)

	// FindLatest returns the most recent record, nil when none exist.
	FindLatest(ctx context.Context) (*domain.BackupRecord, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]*domain.BackupRecord, error)

	Delete(ctx context.Context, id int64) error

	// FindOlderThan returns records created before the cutoff, oldest first.
	FindOlderThan(ctx context.Context, cutoff time.Time) ([]*domain.BackupRecord, error)
}
