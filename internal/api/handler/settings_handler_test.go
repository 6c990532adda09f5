package handler

import (
	"net/http"
	"testing"

	"github.com/jmolenaar/pharmvault/internal/api/dto"
	"github.com/jmolenaar/pharmvault/internal/core/domain"
)

func settingsBoolPtr(b bool) *bool    { return &b }
func settingsStrPtr(s string) *string { return &s }
func settingsIntPtr(i int) *int       { return &i }

func TestGetSettingsReturnsDefaults(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/backup-settings", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	settings := parseSettings(t, w)
	if !settings.DailyBackupEnabled || settings.WeeklyBackupEnabled || settings.MonthlyBackupEnabled {
		t.Errorf("unexpected default flags: %+v", settings)
	}
	if settings.BackupTimeOfDay != "02:00" || settings.RetentionDays != 30 {
		t.Errorf("unexpected defaults: %+v", settings)
	}
}

func TestUpdateSettingsMergesAndPersists(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPatch, "/api/backup-settings", dto.UpdateBackupSettingsRequest{
		WeeklyBackupEnabled: settingsBoolPtr(true),
		RetentionDays:       settingsIntPtr(14),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	settings := parseSettings(t, w)
	if !settings.WeeklyBackupEnabled || settings.RetentionDays != 14 {
		t.Errorf("patched fields not applied: %+v", settings)
	}
	if !settings.DailyBackupEnabled || settings.BackupTimeOfDay != "02:00" {
		t.Errorf("untouched fields changed: %+v", settings)
	}

	// A fresh GET sees the merge.
	reloaded := parseSettings(t, env.request(t, http.MethodGet, "/api/backup-settings", nil))
	if reloaded != settings {
		t.Errorf("persisted settings differ: %+v vs %+v", reloaded, settings)
	}
}

func TestUpdateSettingsRearmsScheduler(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPatch, "/api/backup-settings", dto.UpdateBackupSettingsRequest{
		DailyBackupEnabled:   settingsBoolPtr(true),
		WeeklyBackupEnabled:  settingsBoolPtr(false),
		MonthlyBackupEnabled: settingsBoolPtr(false),
		BackupTimeOfDay:      settingsStrPtr("02:30"),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	armed := env.scheduler.ArmedCadences()
	if len(armed) != 1 || armed[0] != domain.BackupTypeDaily {
		t.Errorf("expected exactly one daily trigger, got %v", armed)
	}
}

func TestUpdateSettingsRejectsInvalidTimeOfDay(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPatch, "/api/backup-settings", dto.UpdateBackupSettingsRequest{
		BackupTimeOfDay: settingsStrPtr("25:99"),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	// The invalid value was never persisted.
	settings := parseSettings(t, env.request(t, http.MethodGet, "/api/backup-settings", nil))
	if settings.BackupTimeOfDay != "02:00" {
		t.Errorf("invalid time of day leaked into settings: %+v", settings)
	}
}

func TestUpdateSettingsRejectsMalformedBody(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPatch, "/api/backup-settings", map[string]interface{}{
		"retentionDays": 0,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero retention, got %d: %s", w.Code, w.Body.String())
	}
}
