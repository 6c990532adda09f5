package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jmolenaar/pharmvault/internal/api/dto"
	"github.com/jmolenaar/pharmvault/internal/core/domain"
	"github.com/jmolenaar/pharmvault/internal/core/service"
)

type BackupHandler struct {
	backupService *service.BackupService
}

func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// CreateBackup handles POST /api/backups. The response is always 201;
// a failed attempt is reported through the record's status field.
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	// An empty body means a manual backup. EOF is the only error that
	// counts as empty: a chunked request still goes through validation.
	var req dto.CreateBackupRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	backupType := domain.BackupTypeManual
	if req.Type != "" {
		backupType = domain.BackupType(req.Type)
	}

	record := h.backupService.PerformBackup(c.Request.Context(), backupType)
	c.JSON(http.StatusCreated, toBackupRecordResponse(record))
}

// ListBackups handles GET /api/backups.
func (h *BackupHandler) ListBackups(c *gin.Context) {
	records, err := h.backupService.ListBackups(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	response := make([]dto.BackupRecordResponse, len(records))
	for i, record := range records {
		response[i] = toBackupRecordResponse(record)
	}
	c.JSON(http.StatusOK, response)
}

// GetBackup handles GET /api/backups/:id.
func (h *BackupHandler) GetBackup(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: "invalid backup id",
			Code:    http.StatusBadRequest,
		})
		return
	}

	record, err := h.backupService.GetBackup(c.Request.Context(), id)
	if errors.Is(err, service.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not Found",
			Message: fmt.Sprintf("backup not found: %d", id),
			Code:    http.StatusNotFound,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, toBackupRecordResponse(record))
}

// LatestBackup handles GET /api/backups/latest.
func (h *BackupHandler) LatestBackup(c *gin.Context) {
	record, err := h.backupService.LatestBackup(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not Found",
			Message: "no backups exist",
			Code:    http.StatusNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, toBackupRecordResponse(record))
}

// RestoreBackup handles POST /api/backups/:id/restore.
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: "invalid backup id",
			Code:    http.StatusBadRequest,
		})
		return
	}

	err = h.backupService.RestoreFromBackup(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.MessageResponse{
			Message: fmt.Sprintf("restored from backup %d", id),
		})
	case errors.Is(err, service.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not Found",
			Message: fmt.Sprintf("backup not found: %d", id),
			Code:    http.StatusNotFound,
		})
	default:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
}

// Cleanup handles POST /api/backups/cleanup.
func (h *BackupHandler) Cleanup(c *gin.Context) {
	removed, err := h.backupService.Cleanup(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, dto.CleanupResponse{Removed: removed})
}

func toBackupRecordResponse(record *domain.BackupRecord) dto.BackupRecordResponse {
	return dto.BackupRecordResponse{
		ID:        record.ID,
		Filename:  record.Filename,
		SizeBytes: record.SizeBytes,
		Status:    string(record.Status),
		Type:      string(record.Type),
		CreatedAt: record.CreatedAt,
	}
}
