package backup

import "errors"

var (
	// ErrNotFound indicates an unknown backup name or a missing source path.
	ErrNotFound = errors.New("backup not found")
	// ErrInvalidBackup indicates a backup that fails structural validation.
	ErrInvalidBackup = errors.New("invalid backup")
	// ErrBadMetadata indicates a metadata sidecar that exists but cannot
	// be decoded.
	ErrBadMetadata = errors.New("unreadable backup metadata")
)
