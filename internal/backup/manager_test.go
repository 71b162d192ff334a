package backup

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kebairia/dmsave/internal/config"
	"github.com/kebairia/dmsave/internal/logger"
)

// fakeClock returns a time source that steps forward on every call, so
// consecutive snapshots get distinct names.
func fakeClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(step)
		return now
	}
}

// seedStore fills dir with the flat file set a dmpool store carries.
func seedStore(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, dir, SentinelFilename, "MANIFEST-000001\n")
	writeFile(t, dir, "MANIFEST-000001", "manifest contents")
	writeFile(t, dir, "000003.log", "write-ahead log data")
	writeFile(t, dir, "000004.sst", "sorted table data")
}

// storeContents reads the regular files directly under dir, excluding
// the metadata sidecar.
func storeContents(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read %s: %v", dir, err)
	}
	contents := make(map[string]string)
	for _, entry := range entries {
		if !entry.Type().IsRegular() || entry.Name() == MetadataFilename {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			t.Fatalf("read %s: %v", entry.Name(), err)
		}
		contents[entry.Name()] = string(data)
	}
	return contents
}

func sameContents(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for name, data := range a {
		if b[name] != data {
			return false
		}
	}
	return true
}

func newTestManager(t *testing.T, keepLast int, opts ...Option) (*Manager, string, string) {
	t.Helper()
	storePath := filepath.Join(t.TempDir(), "store")
	if err := os.Mkdir(storePath, 0o755); err != nil {
		t.Fatalf("mkdir store: %v", err)
	}
	seedStore(t, storePath)

	backupDir := filepath.Join(t.TempDir(), "backups")
	cfg := config.Config{
		Store:  config.StoreConfig{Path: storePath},
		Backup: config.BackupConfig{Directory: backupDir, KeepLast: keepLast},
	}

	base := []Option{
		WithLogger(logger.Nop()),
		WithVersion("1.2.3"),
		WithClock(fakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Hour)),
	}
	mgr, err := NewManager(cfg, append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}
	return mgr, storePath, backupDir
}

func TestCreateWritesBackup(t *testing.T) {
	mgr, storePath, backupDir := newTestManager(t, 10)

	record, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if record.BackupName != PrefixBackup+"20250101_000000" {
		t.Errorf("unexpected backup name: %s", record.BackupName)
	}
	if record.Version != "1.2.3" {
		t.Errorf("unexpected version: %s", record.Version)
	}
	if record.StorePath != storePath {
		t.Errorf("unexpected store path: %s", record.StorePath)
	}
	if record.BackupPath != filepath.Join(backupDir, record.BackupName) {
		t.Errorf("backup path %q is not a child of the backups root", record.BackupPath)
	}

	if !sameContents(storeContents(t, storePath), storeContents(t, record.BackupPath)) {
		t.Error("backup contents differ from the store")
	}
	if _, err := os.Stat(filepath.Join(record.BackupPath, MetadataFilename)); err != nil {
		t.Errorf("metadata sidecar missing: %v", err)
	}
}

func TestCreateMissingSource(t *testing.T) {
	backupDir := t.TempDir()
	cfg := config.Config{
		Store:  config.StoreConfig{Path: filepath.Join(t.TempDir(), "absent")},
		Backup: config.BackupConfig{Directory: backupDir, KeepLast: 3},
	}
	mgr, err := NewManager(cfg, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	if _, err := mgr.Create(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListCountsCreates(t *testing.T) {
	mgr, _, _ := newTestManager(t, 10)

	for i := 0; i < 3; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create %d returned error: %v", i, err)
		}
	}

	records, err := mgr.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if !records[i].CreatedAt.Before(records[i-1].CreatedAt) {
			t.Fatalf("records not strictly descending by creation time")
		}
	}
}

func TestVerifyAfterCreate(t *testing.T) {
	mgr, _, _ := newTestManager(t, 10)

	record, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	ok, err := mgr.Verify(record.BackupName)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected a fresh backup to verify")
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	mgr, _, _ := newTestManager(t, 10)

	record, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Truncating a copied file shrinks the recomputed size.
	if err := os.Truncate(filepath.Join(record.BackupPath, "000003.log"), 1); err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
	ok, err := mgr.Verify(record.BackupName)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if ok {
		t.Fatal("expected verification to fail after truncation")
	}
}

func TestVerifyMissingSentinel(t *testing.T) {
	mgr, _, _ := newTestManager(t, 10)

	record, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := os.Remove(filepath.Join(record.BackupPath, SentinelFilename)); err != nil {
		t.Fatalf("remove sentinel failed: %v", err)
	}

	ok, err := mgr.Verify(record.BackupName)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if ok {
		t.Fatal("expected verification to fail without the sentinel")
	}
}

func TestVerifyUnknownBackup(t *testing.T) {
	mgr, _, _ := newTestManager(t, 10)

	if _, err := mgr.Verify(PrefixBackup + "20990101_000000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteBackup(t *testing.T) {
	mgr, _, _ := newTestManager(t, 10)

	record, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := mgr.Delete(record.BackupName); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := mgr.Get(record.BackupName); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	mgr, storePath, _ := newTestManager(t, 10)

	record, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	want := storeContents(t, record.BackupPath)

	// Mutate the live store after the backup.
	writeFile(t, storePath, "000003.log", "newer log data")
	writeFile(t, storePath, "000005.sst", "later table")

	if err := mgr.Restore(record.BackupName, ""); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}

	if !sameContents(want, storeContents(t, storePath)) {
		t.Fatal("restored store differs from the backup contents")
	}

	// The mutated state was captured in a pre-restore safety snapshot.
	records, err := mgr.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	var pre *Record
	for i := range records {
		if strings.HasPrefix(records[i].BackupName, PrefixPreRestore) {
			pre = &records[i]
		}
	}
	if pre == nil {
		t.Fatal("expected a pre-restore snapshot in the catalog")
	}
	preContents := storeContents(t, pre.BackupPath)
	if preContents["000003.log"] != "newer log data" {
		t.Error("pre-restore snapshot did not capture the mutated store")
	}

	// A fresh backup of the restored store matches the original payload.
	again, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !sameContents(want, storeContents(t, again.BackupPath)) {
		t.Fatal("re-created backup differs from the restored contents")
	}
}

func TestRestoreRejectsMissingSentinel(t *testing.T) {
	mgr, _, _ := newTestManager(t, 10)

	record, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := os.Remove(filepath.Join(record.BackupPath, SentinelFilename)); err != nil {
		t.Fatalf("remove sentinel failed: %v", err)
	}

	if err := mgr.Restore(record.BackupName, ""); !errors.Is(err, ErrInvalidBackup) {
		t.Fatalf("expected ErrInvalidBackup, got %v", err)
	}
}

func TestRestoreUnknownBackup(t *testing.T) {
	mgr, _, _ := newTestManager(t, 10)

	if err := mgr.Restore(PrefixBackup+"20990101_000000", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRestoreIntoMissingTarget(t *testing.T) {
	mgr, _, _ := newTestManager(t, 10)

	record, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	target := filepath.Join(t.TempDir(), "fresh-store")
	if err := mgr.Restore(record.BackupName, target); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if !sameContents(storeContents(t, record.BackupPath), storeContents(t, target)) {
		t.Fatal("restored target differs from the backup contents")
	}

	// No pre-restore snapshot: there was nothing to protect.
	records, err := mgr.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	for _, r := range records {
		if strings.HasPrefix(r.BackupName, PrefixPreRestore) {
			t.Fatal("unexpected pre-restore snapshot for a missing target")
		}
	}
}
