package service

import "errors"

// Restore failures are distinguishable so callers can map an unknown
// record to not-found and a damaged archive to a bad request.
var (
	ErrRecordNotFound = errors.New("backup record not found")
	ErrArchiveMissing = errors.New("backup archive file missing")
	ErrArchiveCorrupt = errors.New("backup archive corrupt")
)
