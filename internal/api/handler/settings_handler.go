package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jmolenaar/pharmvault/internal/api/dto"
	"github.com/jmolenaar/pharmvault/internal/core/domain"
	"github.com/jmolenaar/pharmvault/internal/core/service"
	"github.com/jmolenaar/pharmvault/internal/scheduler"
)

type SettingsHandler struct {
	backupService *service.BackupService
	scheduler     *scheduler.Scheduler
	log           zerolog.Logger
}

func NewSettingsHandler(backupService *service.BackupService, sched *scheduler.Scheduler, log zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		backupService: backupService,
		scheduler:     sched,
		log:           log.With().Str("component", "api").Logger(),
	}
}

// GetSettings handles GET /api/backup-settings.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.backupService.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, toSettingsResponse(settings))
}

// UpdateSettings handles PATCH /api/backup-settings. The partial update
// is merged, persisted, and the scheduler re-armed from the result.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateBackupSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	if req.BackupTimeOfDay != nil {
		if _, _, err := scheduler.ParseTimeOfDay(*req.BackupTimeOfDay); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad Request",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}
	}

	patch := domain.BackupSettingsPatch{
		DailyEnabled:   req.DailyBackupEnabled,
		WeeklyEnabled:  req.WeeklyBackupEnabled,
		MonthlyEnabled: req.MonthlyBackupEnabled,
		TimeOfDay:      req.BackupTimeOfDay,
		RetentionDays:  req.RetentionDays,
	}

	settings, err := h.backupService.UpdateSettings(c.Request.Context(), patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	// The settings are saved either way; a reconcile failure only means
	// the triggers kept their previous arming.
	if err := h.scheduler.Reconcile(c.Request.Context()); err != nil {
		h.log.Error().Err(err).Msg("failed to reconcile schedule after settings update")
	}

	c.JSON(http.StatusOK, toSettingsResponse(settings))
}

func toSettingsResponse(settings *domain.BackupSettings) dto.BackupSettingsResponse {
	return dto.BackupSettingsResponse{
		ID:                   settings.ID,
		DailyBackupEnabled:   settings.DailyEnabled,
		WeeklyBackupEnabled:  settings.WeeklyEnabled,
		MonthlyBackupEnabled: settings.MonthlyEnabled,
		BackupTimeOfDay:      settings.TimeOfDay,
		RetentionDays:        settings.RetentionDays,
	}
}
