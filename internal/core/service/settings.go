package service

import (
	"context"
	"fmt"

	"github.com/jmolenaar/pharmvault/internal/core/domain"
)

// GetSettings returns the settings singleton.
func (s *BackupService) GetSettings(ctx context.Context) (*domain.BackupSettings, error) {
	return s.settings.Get(ctx)
}

// UpdateSettings merges the patch into the singleton and persists it.
// Format validation of TimeOfDay belongs to the request layer; the
// scheduler refuses to arm on an unparseable value either way.
func (s *BackupService) UpdateSettings(ctx context.Context, patch domain.BackupSettingsPatch) (*domain.BackupSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	settings.Apply(patch)

	if err := s.settings.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save backup settings: %w", err)
	}

	s.log.Info().
		Bool("daily", settings.DailyEnabled).
		Bool("weekly", settings.WeeklyEnabled).
		Bool("monthly", settings.MonthlyEnabled).
		Str("time_of_day", settings.TimeOfDay).
		Int("retention_days", settings.RetentionDays).
		Msg("backup settings updated")

	return settings, nil
}
