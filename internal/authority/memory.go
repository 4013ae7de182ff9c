package authority

import "sort"

// MemoryStore is an in-memory Store backed by a slice kept sorted by
// NameNormalized. It honors the same lookup_exact/neighbors contract as
// SQLiteStore and is the default backend in unit tests of every component
// above it, and for callers that have no authority database file.
type MemoryStore struct {
	records []Record
}

// NewMemoryStore builds a MemoryStore from records, sorting them by
// NameNormalized as the index on the SQLite backend would present them.
func NewMemoryStore(records []Record) *MemoryStore {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].NameNormalized < sorted[j].NameNormalized
	})
	return &MemoryStore{records: sorted}
}

func (m *MemoryStore) LookupExact(normalized string) (Record, bool) {
	i := sort.Search(len(m.records), func(i int) bool {
		return m.records[i].NameNormalized >= normalized
	})
	if i < len(m.records) && m.records[i].NameNormalized == normalized {
		return m.records[i], true
	}
	return Record{}, false
}

func (m *MemoryStore) Neighbors(normalized string, k int) []Record {
	i := sort.Search(len(m.records), func(i int) bool {
		return m.records[i].NameNormalized >= normalized
	})

	out := make([]Record, 0, 2*k)
	up := 0
	for j := i; j < len(m.records) && up < k; j, up = j+1, up+1 {
		out = append(out, m.records[j])
	}
	down := 0
	for j := i - 1; j >= 0 && down < k; j, down = j-1, down+1 {
		out = append(out, m.records[j])
	}
	return out
}

func (m *MemoryStore) Close() error {
	return nil
}
