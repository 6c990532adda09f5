package dto

import "time"

// CreateBackupRequest triggers a backup. Type defaults to "manual".
type CreateBackupRequest struct {
	Type string `json:"type" binding:"omitempty,oneof=manual daily weekly monthly"`
}

// BackupRecordResponse represents one backup attempt.
type BackupRecordResponse struct {
	ID        int64     `json:"id"`
	Filename  string    `json:"filename"`
	SizeBytes int64     `json:"sizeBytes"`
	Status    string    `json:"status"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

// CleanupResponse reports how many archives retention removed.
type CleanupResponse struct {
	Removed int `json:"removed"`
}
