// Package authority defines the read-only author authority lookup contract
// and provides a SQLite-backed implementation plus an in-memory
// implementation for tests and for callers without a database file.
package authority

// Record is a single authority entry.
type Record struct {
	AuthorID       string
	Name           string
	NameNormalized string
	AlternateID    string
}

// Store is the contract every authority backend must satisfy: a single
// keyed lookup and a bounded neighbor scan around a normalized key, ordered
// by name_normalized.
type Store interface {
	// LookupExact returns the record whose NameNormalized equals normalized,
	// and true, or the zero Record and false if none exists.
	LookupExact(normalized string) (Record, bool)

	// Neighbors returns up to k records with NameNormalized >= normalized in
	// ascending order, followed by up to k records with NameNormalized <
	// normalized in descending order. k is fixed at 25 by callers per spec
	// but the method itself accepts it as a parameter for testability.
	Neighbors(normalized string, k int) []Record

	// Close releases any resources held by the store.
	Close() error
}

// NeighborLimit is the fixed window size used by the Matcher's neighbor scan.
const NeighborLimit = 25
