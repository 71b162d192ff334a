package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kebairia/dmsave/internal/logger"
)

// Catalog is the single source of truth for backup records. There is
// no cached index; implementations re-read their backing store on
// every call.
type Catalog interface {
	// List returns all records, newest first.
	List() ([]Record, error)
	// Get loads one record by backup name.
	Get(name string) (Record, error)
	// Put persists a record.
	Put(record Record) error
	// Delete removes a backup and its record.
	Delete(name string) error
}

// fsCatalog discovers records by scanning the backups root directory.
type fsCatalog struct {
	backupDir string
	storePath string
	log       logger.Logger
}

// NewFSCatalog returns a Catalog backed by the backups root at
// backupDir. storePath is recorded on synthesized legacy records.
func NewFSCatalog(backupDir, storePath string, log logger.Logger) Catalog {
	return &fsCatalog{backupDir: backupDir, storePath: storePath, log: log}
}

func (c *fsCatalog) List() ([]Record, error) {
	entries, err := os.ReadDir(c.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup directory %q: %w", c.backupDir, err)
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || !Recognized(entry.Name()) {
			continue
		}
		record, err := c.load(entry.Name())
		if err != nil {
			// One corrupt entry must not abort the whole listing.
			c.log.Warn("skipping unreadable backup",
				"backup", entry.Name(),
				"error", err.Error(),
			)
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (c *fsCatalog) Get(name string) (Record, error) {
	info, err := os.Stat(filepath.Join(c.backupDir, name))
	if err != nil || !info.IsDir() {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return c.load(name)
}

func (c *fsCatalog) Put(record Record) error {
	filePath := filepath.Join(record.BackupPath, MetadataFilename)

	jsonFile, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("create metadata file %q: %w", filePath, err)
	}
	defer jsonFile.Close()

	encoder := json.NewEncoder(jsonFile)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&record); err != nil {
		return fmt.Errorf("encode metadata JSON %q: %w", filePath, err)
	}
	return nil
}

func (c *fsCatalog) Delete(name string) error {
	path := filepath.Join(c.backupDir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("stat backup directory %q: %w", path, err)
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove backup %q: %w", path, err)
	}
	return nil
}

// load reads the metadata sidecar for one backup directory. A missing
// sidecar (legacy or externally created backup) falls back to a
// synthesized record; a sidecar that exists but cannot be decoded is
// an error.
func (c *fsCatalog) load(name string) (Record, error) {
	dirPath := filepath.Join(c.backupDir, name)
	sidecar := filepath.Join(dirPath, MetadataFilename)

	jsonFile, err := os.Open(sidecar)
	if err != nil {
		if os.IsNotExist(err) {
			return c.synthesize(name, dirPath)
		}
		return Record{}, fmt.Errorf("open metadata file %q: %w", sidecar, err)
	}
	defer jsonFile.Close()

	var record Record
	if err := json.NewDecoder(jsonFile).Decode(&record); err != nil {
		return Record{}, fmt.Errorf("%w: decode %q: %v", ErrBadMetadata, sidecar, err)
	}
	return record, nil
}

// synthesize derives a minimal record from the directory itself: its
// modification time and a fresh size recomputation. The result is
// never written back to disk.
func (c *fsCatalog) synthesize(name, dirPath string) (Record, error) {
	info, err := os.Stat(dirPath)
	if err != nil {
		return Record{}, fmt.Errorf("stat backup directory %q: %w", dirPath, err)
	}
	size, err := dirSize(dirPath)
	if err != nil {
		return Record{}, err
	}
	return Record{
		BackupName: name,
		CreatedAt:  info.ModTime().UTC(),
		StorePath:  c.storePath,
		BackupPath: dirPath,
		SizeBytes:  size,
		Version:    "unknown",
	}, nil
}
