package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jmolenaar/pharmvault/internal/core/domain"
)

// Cleanup removes archives older than the configured retention period,
// along with their records. It only runs when explicitly invoked (CLI or
// API); retention is never enforced automatically.
func (s *BackupService) Cleanup(ctx context.Context) (int, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load backup settings: %w", err)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -settings.RetentionDays)
	expired, err := s.records.FindOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, record := range expired {
		if record.Status == domain.BackupStatusCompleted {
			path := filepath.Join(s.archiveDir, record.Filename)
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				s.log.Warn().Err(err).Str("filename", record.Filename).Msg("failed to remove archive file")
				continue
			}
		}

		if err := s.records.Delete(ctx, record.ID); err != nil {
			s.log.Warn().Err(err).Int64("record_id", record.ID).Msg("failed to delete backup record")
			continue
		}

		removed++
	}

	s.log.Info().
		Int("removed", removed).
		Int("retention_days", settings.RetentionDays).
		Msg("cleanup finished")

	return removed, nil
}
