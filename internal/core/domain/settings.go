package domain

// BackupSettings is a singleton: exactly one row exists, seeded with
// defaults at schema creation and mutated only via partial merge.
type BackupSettings struct {
	ID             int64  `db:"id" json:"id"`
	DailyEnabled   bool   `db:"daily_enabled" json:"dailyBackupEnabled"`
	WeeklyEnabled  bool   `db:"weekly_enabled" json:"weeklyBackupEnabled"`
	MonthlyEnabled bool   `db:"monthly_enabled" json:"monthlyBackupEnabled"`
	TimeOfDay      string `db:"time_of_day" json:"backupTimeOfDay"`
	RetentionDays  int    `db:"retention_days" json:"retentionDays"`
}

// BackupSettingsPatch carries a partial update; nil fields are left as-is.
type BackupSettingsPatch struct {
	DailyEnabled   *bool
	WeeklyEnabled  *bool
	MonthlyEnabled *bool
	TimeOfDay      *string
	RetentionDays  *int
}

func (s *BackupSettings) Apply(p BackupSettingsPatch) {
	if p.DailyEnabled != nil {
		s.DailyEnabled = *p.DailyEnabled
	}
	if p.WeeklyEnabled != nil {
		s.WeeklyEnabled = *p.WeeklyEnabled
	}
	if p.MonthlyEnabled != nil {
		s.MonthlyEnabled = *p.MonthlyEnabled
	}
	if p.TimeOfDay != nil {
		s.TimeOfDay = *p.TimeOfDay
	}
	if p.RetentionDays != nil {
		s.RetentionDays = *p.RetentionDays
	}
}
