package backup

import (
	"fmt"
	"sort"
	"sync"
)

// MemCatalog keeps records in memory. It exists so callers of Catalog
// can be exercised in tests without touching the filesystem.
type MemCatalog struct {
	mu      sync.Mutex
	records map[string]Record
}

var _ Catalog = (*MemCatalog)(nil)

// NewMemCatalog returns an empty in-memory catalog.
func NewMemCatalog() *MemCatalog {
	return &MemCatalog{records: make(map[string]Record)}
}

func (c *MemCatalog) List() ([]Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := make([]Record, 0, len(c.records))
	for _, record := range c.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (c *MemCatalog) Get(name string) (Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	record, ok := c.records[name]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return record, nil
}

func (c *MemCatalog) Put(record Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records[record.BackupName] = record
	return nil
}

func (c *MemCatalog) Delete(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.records[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(c.records, name)
	return nil
}
