package dto

// UpdateBackupSettingsRequest is a partial update; omitted fields keep
// their current value.
type UpdateBackupSettingsRequest struct {
	DailyBackupEnabled   *bool   `json:"dailyBackupEnabled"`
	WeeklyBackupEnabled  *bool   `json:"weeklyBackupEnabled"`
	MonthlyBackupEnabled *bool   `json:"monthlyBackupEnabled"`
	BackupTimeOfDay      *string `json:"backupTimeOfDay" binding:"omitempty,len=5"`
	RetentionDays        *int    `json:"retentionDays" binding:"omitempty,min=1"`
}

// BackupSettingsResponse represents the settings singleton.
type BackupSettingsResponse struct {
	ID                   int64  `json:"id"`
	DailyBackupEnabled   bool   `json:"dailyBackupEnabled"`
	WeeklyBackupEnabled  bool   `json:"weeklyBackupEnabled"`
	MonthlyBackupEnabled bool   `json:"monthlyBackupEnabled"`
	BackupTimeOfDay      string `json:"backupTimeOfDay"`
	RetentionDays        int    `json:"retentionDays"`
}
