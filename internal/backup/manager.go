package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kebairia/dmsave/internal/config"
	"github.com/kebairia/dmsave/internal/logger"
)

// Option lets you override default settings on a Manager.
type Option func(*Manager)

// Manager owns the backup lifecycle for one dmpool store: snapshot
// creation, retention, verification, and restore.
//
// The backups root is shared state with no application-level locking.
// Overlapping operations (a scheduled backup racing a manual cleanup,
// two restores of the same store) are not serialized here; the design
// assumes low-frequency, effectively serial operator-triggered use.
type Manager struct {
	storePath string
	backupDir string
	keepLast  int
	compress  bool
	version   string

	catalog Catalog
	log     logger.Logger
	now     func() time.Time
}

// NewManager returns a Manager configured from cfg plus any overrides.
// The backups root is created if missing.
func NewManager(cfg config.Config, opts ...Option) (*Manager, error) {
	m := &Manager{
		storePath: cfg.Store.Path,
		backupDir: cfg.Backup.Directory,
		keepLast:  cfg.Backup.KeepLast,
		compress:  cfg.Backup.Compress,
		version:   "unknown",
		log:       logger.Global(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.catalog == nil {
		m.catalog = NewFSCatalog(m.backupDir, m.storePath, m.log)
	}

	if err := EnsureDirectoryExist(m.backupDir); err != nil {
		return nil, err
	}
	if m.compress {
		// The flag is carried in metadata-relevant config but the copy
		// itself stays byte-for-byte.
		m.log.Debug("compression requested; backup contents are copied uncompressed")
	}
	return m, nil
}

// WithVersion records the producing software version on new backups.
func WithVersion(version string) Option {
	return func(m *Manager) {
		if version != "" {
			m.version = version
		}
	}
}

// WithLogger overrides the logger.
func WithLogger(log logger.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithCatalog overrides the record catalog.
func WithCatalog(catalog Catalog) Option {
	return func(m *Manager) {
		if catalog != nil {
			m.catalog = catalog
		}
	}
}

// WithClock overrides the time source used for backup names.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// Create takes a point-in-time backup of the store and registers it in
// the catalog. The copy is best-effort: concurrent writers are not
// fenced, so files may be captured mid-write, and a failure partway
// leaves a partial directory behind with no rollback.
func (m *Manager) Create() (Record, error) {
	record, err := m.snapshot(PrefixBackup, m.storePath)
	if err != nil {
		return Record{}, err
	}

	// Retention runs after every successful backup. Its failure is
	// logged, not propagated: the backup itself already succeeded.
	if _, err := m.Cleanup(); err != nil {
		m.log.Error("cleanup after backup failed", "error", err.Error())
	}
	return record, nil
}

// snapshot copies every regular file directly under sourcePath into a
// fresh timestamped directory and persists the metadata sidecar.
// Subdirectories under sourcePath are not traversed.
func (m *Manager) snapshot(prefix, sourcePath string) (Record, error) {
	timestamp := m.now().UTC().Truncate(time.Second)
	name := prefix + timestamp.Format(timestampLayout)
	backupPath := filepath.Join(m.backupDir, name)

	m.log.Info("backup started",
		"backup", name,
		"source", sourcePath,
	)

	if _, err := os.Stat(sourcePath); err != nil {
		if os.IsNotExist(err) {
			return Record{}, fmt.Errorf("%w: source path %s", ErrNotFound, sourcePath)
		}
		return Record{}, fmt.Errorf("stat source %q: %w", sourcePath, err)
	}
	if err := os.Mkdir(backupPath, 0o755); err != nil {
		return Record{}, fmt.Errorf("create backup directory %q: %w", backupPath, err)
	}

	if err := m.copyFiles(sourcePath, backupPath); err != nil {
		return Record{}, err
	}

	size, err := dirSize(backupPath)
	if err != nil {
		return Record{}, err
	}

	record := Record{
		BackupName: name,
		CreatedAt:  timestamp,
		StorePath:  sourcePath,
		BackupPath: backupPath,
		SizeBytes:  size,
		Version:    m.version,
	}
	if err := m.catalog.Put(record); err != nil {
		return Record{}, err
	}

	m.log.Info("backup completed",
		"backup", name,
		"size_bytes", size,
	)
	return record, nil
}

// copyFiles copies every regular file directly under src into dst,
// keeping filenames. The metadata sidecar is never part of the payload.
func (m *Manager) copyFiles(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("read directory %q: %w", src, err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || entry.Name() == MetadataFilename {
			continue
		}
		srcPath := filepath.Join(src, entry.Name())
		if err := copyFile(srcPath, filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
		m.log.Debug("copied", "file", entry.Name())
	}
	return nil
}

// List returns all backup records, newest first.
func (m *Manager) List() ([]Record, error) {
	return m.catalog.List()
}

// Get loads one backup record by name.
func (m *Manager) Get(name string) (Record, error) {
	return m.catalog.Get(name)
}

// Delete removes one backup and its record.
func (m *Manager) Delete(name string) error {
	if err := m.catalog.Delete(name); err != nil {
		return err
	}
	m.log.Info("backup deleted", "backup", name)
	return nil
}
