package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jmolenaar/pharmvault/internal/core/domain"
	"github.com/jmolenaar/pharmvault/internal/core/repository"
	"github.com/jmolenaar/pharmvault/internal/core/store"
)

type BackupService struct {
	store      *store.Store
	records    repository.RecordRepository
	settings   repository.SettingsRepository
	archiveDir string
	log        zerolog.Logger
}

func NewBackupService(
	st *store.Store,
	records repository.RecordRepository,
	settings repository.SettingsRepository,
	archiveDir string,
	log zerolog.Logger,
) *BackupService {
	return &BackupService{
		store:      st,
		records:    records,
		settings:   settings,
		archiveDir: archiveDir,
		log:        log.With().Str("component", "backup").Logger(),
	}
}

// PerformBackup snapshots the store to an archive file and records the
// attempt. It never returns an error: any failure is absorbed into a
// record with status "failed", so a scheduled run or an HTTP handler can
// not be crashed by a backup. Callers inspect record.Status.
func (s *BackupService) PerformBackup(ctx context.Context, backupType domain.BackupType) *domain.BackupRecord {
	now := time.Now().UTC()
	filename := archiveFilename(backupType, now)

	record := &domain.BackupRecord{
		Type:      backupType,
		CreatedAt: now,
	}

	if err := s.writeArchive(filename, now, record); err != nil {
		s.log.Error().Err(err).Str("type", string(backupType)).Msg("backup failed")
		record.Status = domain.BackupStatusFailed
		record.SizeBytes = 0
		record.Filename = "failed-" + filename
	} else {
		record.Status = domain.BackupStatusCompleted
		record.Filename = filename
		s.log.Info().
			Str("type", string(backupType)).
			Str("filename", filename).
			Int64("size_bytes", record.SizeBytes).
			Msg("backup completed")
	}

	if err := s.records.Create(ctx, record); err != nil {
		// The attempt itself is already done; losing the history row is
		// logged but does not change the outcome for the caller.
		s.log.Error().Err(err).Msg("failed to persist backup record")
	}

	return record
}

func (s *BackupService) writeArchive(filename string, now time.Time, record *domain.BackupRecord) error {
	if err := os.MkdirAll(s.archiveDir, 0o755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	archive := s.store.Snapshot()
	archive.Timestamp = now.Format(time.RFC3339)

	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize archive: %w", err)
	}

	path := filepath.Join(s.archiveDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write archive file: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat archive file: %w", err)
	}
	record.SizeBytes = info.Size()

	return nil
}

// RestoreFromBackup replaces the store contents with the archive referenced
// by the record. On any failure the store is left untouched.
func (s *BackupService) RestoreFromBackup(ctx context.Context, id int64) error {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up backup record: %w", err)
	}
	if record == nil {
		return ErrRecordNotFound
	}

	path := filepath.Join(s.archiveDir, record.Filename)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrArchiveMissing, record.Filename)
	}
	if err != nil {
		return fmt.Errorf("failed to read archive file: %w", err)
	}

	var archive domain.Archive
	if err := json.Unmarshal(data, &archive); err != nil {
		return fmt.Errorf("%w: %s", ErrArchiveCorrupt, record.Filename)
	}

	s.store.Replace(archive)

	s.log.Info().
		Int64("record_id", id).
		Str("filename", record.Filename).
		Int("users", len(archive.Users)).
		Int("categories", len(archive.Categories)).
		Int("expenses", len(archive.Expenses)).
		Msg("restore completed")

	return nil
}

// GetBackup retrieves a record by ID.
func (s *BackupService) GetBackup(ctx context.Context, id int64) (*domain.BackupRecord, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

// ListBackups returns all records, newest first.
func (s *BackupService) ListBackups(ctx context.Context) ([]*domain.BackupRecord, error) {
	return s.records.List(ctx)
}

// LatestBackup returns the most recent record, or nil when none exist.
func (s *BackupService) LatestBackup(ctx context.Context) (*domain.BackupRecord, error) {
	return s.records.FindLatest(ctx)
}

// archiveFilename builds the deterministic archive name. The timestamp has
// filesystem-unsafe characters replaced and a short random token avoids
// collisions between two backups of the same type in the same clock tick.
func archiveFilename(backupType domain.BackupType, now time.Time) string {
	stamp := now.Format(time.RFC3339)
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("backup-%s-%s-%s.json", backupType, stamp, token)
}
