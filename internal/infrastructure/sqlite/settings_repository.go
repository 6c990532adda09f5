package sqlite

import (
	"context"
	"fmt"

	"github.com/jmolenaar/pharmvault/internal/core/domain"
	"github.com/jmolenaar/pharmvault/internal/core/repository"
)

type settingsRepository struct {
	db *DB
}

func NewSettingsRepository(db *DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.BackupSettings, error) {
	query := `
		SELECT id, daily_enabled, weekly_enabled, monthly_enabled, time_of_day, retention_days
		FROM backup_settings
		WHERE id = 1
	`

	var settings domain.BackupSettings
	if err := r.db.GetContext(ctx, &settings, query); err != nil {
		return nil, fmt.Errorf("failed to get backup settings: %w", err)
	}

	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *domain.BackupSettings) error {
	query := `
		UPDATE backup_settings
		SET daily_enabled = ?, weekly_enabled = ?, monthly_enabled = ?, time_of_day = ?, retention_days = ?
		WHERE id = 1
	`

	_, err := r.db.ExecContext(ctx, query,
		settings.DailyEnabled,
		settings.WeeklyEnabled,
		settings.MonthlyEnabled,
		settings.TimeOfDay,
		settings.RetentionDays,
	)
	if err != nil {
		return fmt.Errorf("failed to update backup settings: %w", err)
	}

	return nil
}
