package repository

import (
	"context"

	"github.com/jmolenaar/pharmvault/internal/core/domain"
)

type SettingsRepository interface {
	// Get returns the settings singleton. The row is seeded with defaults
	// at schema creation, so Get never reports not-found.
	Get(ctx context.Context) (*domain.BackupSettings, error)

	// Update replaces the singleton's fields.
	Update(ctx context.Context, settings *domain.BackupSettings) error
}
