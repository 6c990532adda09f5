package domain

import "time"

type BackupStatus string

const (
	BackupStatusCompleted BackupStatus = "completed"
	BackupStatusFailed    BackupStatus = "failed"
)

type BackupType string

const (
	BackupTypeManual  BackupType = "manual"
	BackupTypeDaily   BackupType = "daily"
	BackupTypeWeekly  BackupType = "weekly"
	BackupTypeMonthly BackupType = "monthly"
)

// BackupRecord describes one backup attempt. Records are immutable after
// creation; a failed attempt is recorded the same way as a successful one.
type BackupRecord struct {
	ID        int64        `db:"id" json:"id"`
	Filename  string       `db:"filename" json:"filename"`
	SizeBytes int64        `db:"size_bytes" json:"sizeBytes"`
	Status    BackupStatus `db:"status" json:"status"`
	Type      BackupType   `db:"type" json:"type"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
}

// Archive is the on-disk JSON snapshot shape.
type Archive struct {
	Users      []User     `json:"users"`
	Categories []Category `json:"categories"`
	Expenses   []Expense  `json:"expenses"`
	Timestamp  string     `json:"timestamp"`
}
