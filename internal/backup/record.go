package backup

import (
	"strings"
	"time"
)

const (
	// MetadataFilename is the sidecar file persisted next to the copied
	// store files inside each backup directory.
	MetadataFilename = "metadata.json"
	// SentinelFilename is the store's own manifest pointer. Its presence
	// in a backup directory is evidence the copy captured a complete,
	// recognizable store dump.
	SentinelFilename = "CURRENT"

	// PrefixBackup names normal backups.
	PrefixBackup = "dmpool_backup_"
	// PrefixPreRestore names safety snapshots taken before a restore.
	PrefixPreRestore = "pre_restore_"

	timestampLayout = "20060102_150405"
)

// Record describes one point-in-time copy of the store. It is written
// once by the snapshot path and never mutated afterwards; SizeBytes is
// the measurement taken at creation time, not a live recomputation.
type Record struct {
	BackupName string    `json:"backup_name"`
	CreatedAt  time.Time `json:"created_at"`
	StorePath  string    `json:"store_path"`
	BackupPath string    `json:"backup_path"`
	SizeBytes  uint64    `json:"size_bytes"`
	Version    string    `json:"version"`
}

// Recognized reports whether name carries one of the backup prefixes.
func Recognized(name string) bool {
	return strings.HasPrefix(name, PrefixBackup) ||
		strings.HasPrefix(name, PrefixPreRestore)
}
