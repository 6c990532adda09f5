package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmolenaar/pharmvault/internal/core/domain"
	"github.com/jmolenaar/pharmvault/internal/core/repository"
)

type recordRepository struct {
	db *DB
}

func NewRecordRepository(db *DB) repository.RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Create(ctx context.Context, record *domain.BackupRecord) error {
	query := `
		INSERT INTO backup_record (filename, size_bytes, status, type, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		record.Filename,
		record.SizeBytes,
		record.Status,
		record.Type,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create backup record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get backup record id: %w", err)
	}
	record.ID = id

	return nil
}

func (r *recordRepository) FindByID(ctx context.Context, id int64) (*domain.BackupRecord, error) {
	query := `
		SELECT id, filename, size_bytes, status, type, created_at
		FROM backup_record
		WHERE id = ?
	`

	var record domain.BackupRecord
	err := r.db.GetContext(ctx, &record, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find backup record: %w", err)
	}

	return &record, nil
}

func (r *recordRepository) FindLatest(ctx context.Context) (*domain.BackupRecord, error) {
	query := `
		SELECT id, filename, size_bytes, status, type, created_at
		FROM backup_record
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var record domain.BackupRecord
	err := r.db.GetContext(ctx, &record, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest backup record: %w", err)
	}

	return &record, nil
}

func (r *recordRepository) List(ctx context.Context) ([]*domain.BackupRecord, error) {
	query := `
		SELECT id, filename, size_bytes, status, type, created_at
		FROM backup_record
		ORDER BY created_at DESC, id DESC
	`

	var records []*domain.BackupRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to list backup records: %w", err)
	}

	return records, nil
}

func (r *recordRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM backup_record WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete backup record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("backup record not found: %d", id)
	}

	return nil
}

func (r *recordRepository) FindOlderThan(ctx context.Context, cutoff time.Time) ([]*domain.BackupRecord, error) {
	query := `
		SELECT id, filename, size_bytes, status, type, created_at
		FROM backup_record
		WHERE created_at < ?
		ORDER BY created_at ASC, id ASC
	`

	var records []*domain.BackupRecord
	if err := r.db.SelectContext(ctx, &records, query, cutoff); err != nil {
		return nil, fmt.Errorf("failed to find expired backup records: %w", err)
	}

	return records, nil
}
