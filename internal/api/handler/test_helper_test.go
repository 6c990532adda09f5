package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jmolenaar/pharmvault/internal/api/dto"
	"github.com/jmolenaar/pharmvault/internal/core/domain"
	"github.com/jmolenaar/pharmvault/internal/core/service"
	"github.com/jmolenaar/pharmvault/internal/core/store"
	"github.com/jmolenaar/pharmvault/internal/infrastructure/sqlite"
	"github.com/jmolenaar/pharmvault/internal/scheduler"
)

// testEnv holds all test dependencies.
type testEnv struct {
	store     *store.Store
	service   *service.BackupService
	scheduler *scheduler.Scheduler
	router    *gin.Engine
}

// setupTestEnv wires handlers over an in-memory database and a temp
// archive directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	st := store.New()
	svc := service.NewBackupService(
		st,
		sqlite.NewRecordRepository(db),
		sqlite.NewSettingsRepository(db),
		t.TempDir(),
		zerolog.Nop(),
	)
	sched := scheduler.New(svc, zerolog.Nop())
	t.Cleanup(sched.Stop)

	backupHandler := NewBackupHandler(svc)
	settingsHandler := NewSettingsHandler(svc, sched, zerolog.Nop())
	storeHandler := NewStoreHandler(st)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	apiGroup := router.Group("/api")
	apiGroup.GET("/backups", backupHandler.ListBackups)
	apiGroup.POST("/backups", backupHandler.CreateBackup)
	apiGroup.GET("/backups/latest", backupHandler.LatestBackup)
	apiGroup.GET("/backups/:id", backupHandler.GetBackup)
	apiGroup.POST("/backups/:id/restore", backupHandler.RestoreBackup)
	apiGroup.POST("/backups/cleanup", backupHandler.Cleanup)
	apiGroup.GET("/backup-settings", settingsHandler.GetSettings)
	apiGroup.PATCH("/backup-settings", settingsHandler.UpdateSettings)
	apiGroup.POST("/users", storeHandler.CreateUser)
	apiGroup.GET("/users", storeHandler.ListUsers)
	apiGroup.PUT("/users/:id/password", storeHandler.UpdateUserPassword)
	apiGroup.DELETE("/users/:id", storeHandler.DeleteUser)
	apiGroup.POST("/categories", storeHandler.CreateCategory)
	apiGroup.GET("/categories", storeHandler.ListCategories)
	apiGroup.DELETE("/categories/:id", storeHandler.DeleteCategory)
	apiGroup.POST("/expenses", storeHandler.CreateExpense)
	apiGroup.GET("/expenses", storeHandler.ListExpenses)
	apiGroup.DELETE("/expenses/:id", storeHandler.DeleteExpense)

	return &testEnv{
		store:     st,
		service:   svc,
		scheduler: sched,
		router:    router,
	}
}

// seedStore populates the store with the standard test scenario:
// 2 users, 3 categories, 5 expenses.
func (env *testEnv) seedStore(t *testing.T) {
	t.Helper()

	env.store.CreateUser(domain.User{Username: "alice", Role: "admin"})
	env.store.CreateUser(domain.User{Username: "bob", Role: "staff"})
	for _, name := range []string{"antibiotics", "analgesics", "supplies"} {
		env.store.CreateCategory(domain.Category{Name: name})
	}
	date := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		env.store.CreateExpense(domain.Expense{
			Description: "expense",
			Amount:      float64(i+1) * 10,
			CategoryID:  1,
			Date:        date.AddDate(0, 0, i),
		})
	}
}

func (env *testEnv) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func parseRecord(t *testing.T, w *httptest.ResponseRecorder) dto.BackupRecordResponse {
	t.Helper()

	var resp dto.BackupRecordResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

func parseRecordList(t *testing.T, w *httptest.ResponseRecorder) []dto.BackupRecordResponse {
	t.Helper()

	var resp []dto.BackupRecordResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

func parseSettings(t *testing.T, w *httptest.ResponseRecorder) dto.BackupSettingsResponse {
	t.Helper()

	var resp dto.BackupSettingsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

func parseError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}
