package backup

import (
	"os"
	"path/filepath"
)

// Verify runs the structural sanity check for one backup: the CURRENT
// sentinel must exist and a fresh size recomputation must match the
// recorded measurement. Same-size content corruption is not
// detectable here.
func (m *Manager) Verify(name string) (bool, error) {
	record, err := m.catalog.Get(name)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(filepath.Join(record.BackupPath, SentinelFilename)); err != nil {
		m.log.Warn("backup missing sentinel file",
			"backup", name,
			"file", SentinelFilename,
		)
		return false, nil
	}

	size, err := dirSize(record.BackupPath)
	if err != nil {
		return false, err
	}
	if size != record.SizeBytes {
		m.log.Warn("backup size mismatch",
			"backup", name,
			"expected", record.SizeBytes,
			"actual", size,
		)
		return false, nil
	}

	return true, nil
}
