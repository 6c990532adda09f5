// Package client is the HTTP client for a running pharmvault server.
// The pharmacy collections live in the server's memory, so the CLI
// commands that touch them must go through the API rather than wiring
// their own empty store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jmolenaar/pharmvault/internal/api/dto"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateBackup triggers a backup on the server. The record comes back
// even when the attempt failed; callers inspect Status.
func (c *Client) CreateBackup(ctx context.Context, backupType string) (*dto.BackupRecordResponse, error) {
	var record dto.BackupRecordResponse
	req := dto.CreateBackupRequest{Type: backupType}
	if err := c.do(ctx, http.MethodPost, "/api/backups", req, &record, http.StatusCreated); err != nil {
		return nil, err
	}
	return &record, nil
}

// RestoreBackup replaces the server's collections from the archive
// referenced by the record.
func (c *Client) RestoreBackup(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/backups/%d/restore", id)
	return c.do(ctx, http.MethodPost, path, nil, nil, http.StatusOK)
}

// Cleanup removes archives past the retention period and reports how
// many were removed.
func (c *Client) Cleanup(ctx context.Context) (int, error) {
	var resp dto.CleanupResponse
	if err := c.do(ctx, http.MethodPost, "/api/backups/cleanup", nil, &resp, http.StatusOK); err != nil {
		return 0, err
	}
	return resp.Removed, nil
}

// ListBackups returns all backup records, newest first.
func (c *Client) ListBackups(ctx context.Context) ([]dto.BackupRecordResponse, error) {
	var records []dto.BackupRecordResponse
	if err := c.do(ctx, http.MethodGet, "/api/backups", nil, &records, http.StatusOK); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) CreateUser(ctx context.Context, username, password, role string) (*dto.UserResponse, error) {
	var user dto.UserResponse
	req := dto.CreateUserRequest{Username: username, Password: password, Role: role}
	if err := c.do(ctx, http.MethodPost, "/api/users", req, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	var users []dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users, http.StatusOK); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUserPassword(ctx context.Context, id int64, password string) error {
	path := fmt.Sprintf("/api/users/%d/password", id)
	req := dto.UpdateUserPasswordRequest{Password: password}
	return c.do(ctx, http.MethodPut, path, req, nil, http.StatusOK)
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/users/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent)
}

// do performs one JSON round trip. A non-expected status is turned into
// an error carrying the server's error envelope message.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, wantStatus int) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("failed to build request URL: %w", err)
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var envelope dto.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil && envelope.Message != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, envelope.Message)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
