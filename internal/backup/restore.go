package backup

import (
	"fmt"
	"os"
	"path/filepath"
)

// Restore replaces the live store contents with the files from the
// named backup. A pre-restore snapshot of the current store is taken
// first so the operation can be undone by hand; that snapshot is not
// subject to retention.
//
// The replace itself is not atomic: between the delete and the copy
// the store path holds partial contents. The caller must guarantee
// nothing reads or writes the store for the duration. A failure after
// the delete has started requires manual recovery from the pre-restore
// snapshot.
func (m *Manager) Restore(name, targetOverride string) error {
	record, err := m.catalog.Get(name)
	if err != nil {
		return err
	}

	// Structural validation only. The sentinel is required to proceed;
	// a full size check is not.
	if _, err := os.Stat(record.BackupPath); err != nil {
		return fmt.Errorf("%w: backup path %q does not exist", ErrInvalidBackup, record.BackupPath)
	}
	if _, err := os.Stat(filepath.Join(record.BackupPath, SentinelFilename)); err != nil {
		return fmt.Errorf("%w: missing %s file in %q",
			ErrInvalidBackup, SentinelFilename, record.BackupPath)
	}

	target := m.storePath
	if targetOverride != "" {
		target = targetOverride
	}

	m.log.Info("restore started",
		"backup", name,
		"target", target,
	)

	if _, err := os.Stat(target); err == nil {
		pre, err := m.snapshot(PrefixPreRestore, target)
		if err != nil {
			return fmt.Errorf("pre-restore backup: %w", err)
		}
		m.log.Info("pre-restore backup saved", "backup", pre.BackupName)
	} else {
		// Nothing to protect yet.
		m.log.Warn("target path missing, skipping pre-restore backup", "target", target)
	}

	if err := m.replaceFiles(record.BackupPath, target); err != nil {
		return err
	}

	m.log.Info("restore completed",
		"backup", name,
		"target", target,
	)
	return nil
}

// replaceFiles deletes every regular file under target, then copies
// the backup contents in. No directory swap is used.
func (m *Manager) replaceFiles(backupPath, target string) error {
	if _, err := os.Stat(target); err == nil {
		entries, err := os.ReadDir(target)
		if err != nil {
			return fmt.Errorf("read directory %q: %w", target, err)
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			path := filepath.Join(target, entry.Name())
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("remove %q: %w", path, err)
			}
		}
	} else if err := EnsureDirectoryExist(target); err != nil {
		return err
	}

	return m.copyFiles(backupPath, target)
}
