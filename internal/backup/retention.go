package backup

import (
	"fmt"
	"strings"
)

// Cleanup trims the catalog down to the configured keep-last count and
// returns the number of backups removed. Pre-restore safety snapshots
// are never reclaimed here; they persist until an operator deletes
// them explicitly.
//
// Deletion is fail-fast: the first failure aborts the remaining
// deletions and is surfaced, leaving the catalog partially trimmed.
func (m *Manager) Cleanup() (int, error) {
	records, err := m.catalog.List()
	if err != nil {
		return 0, err
	}

	var normal []Record
	for _, record := range records {
		if strings.HasPrefix(record.BackupName, PrefixBackup) {
			normal = append(normal, record)
		}
	}
	if len(normal) <= m.keepLast {
		return 0, nil
	}

	removed := 0
	// The list is newest first, so everything past keepLast is excess.
	for _, record := range normal[m.keepLast:] {
		m.log.Info("removing old backup", "backup", record.BackupName)
		if err := m.catalog.Delete(record.BackupName); err != nil {
			return removed, fmt.Errorf("remove old backup %q: %w", record.BackupName, err)
		}
		removed++
	}
	return removed, nil
}
