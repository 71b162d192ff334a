package backup

import "time"

// Stats summarizes the backup catalog.
type Stats struct {
	Count          int
	TotalSizeBytes uint64
	Oldest         time.Time
	Newest         time.Time
}

// Stats derives catalog-wide totals. Safety snapshots count too.
func (m *Manager) Stats() (Stats, error) {
	records, err := m.catalog.List()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Count: len(records)}
	for _, record := range records {
		stats.TotalSizeBytes += record.SizeBytes
	}
	if len(records) > 0 {
		stats.Newest = records[0].CreatedAt
		stats.Oldest = records[len(records)-1].CreatedAt
	}
	return stats, nil
}
