package authority

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is the production Store backend: a read-only SQLite database
// built ahead of time by the external authority-database builder, queried
// through database/sql against the authors/idx_name_norm schema.
type SQLiteStore struct {
	db *sql.DB

	lookupStmt      *sql.Stmt
	neighborsUpStmt *sql.Stmt
	neighborsDnStmt *sql.Stmt
}

// OpenSQLiteStore opens path read-only and prepares the statements used by
// LookupExact and Neighbors.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("authority: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("authority: ping %s: %w", path, err)
	}

	lookupStmt, err := db.Prepare(`
		SELECT author_id, name, name_normalized, alternate_id
		FROM authors WHERE name_normalized = ?`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("authority: prepare lookup: %w", err)
	}

	neighborsUpStmt, err := db.Prepare(`
		SELECT author_id, name, name_normalized, alternate_id
		FROM authors WHERE name_normalized >= ?
		ORDER BY name_normalized ASC LIMIT ?`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("authority: prepare neighbors up: %w", err)
	}

	neighborsDnStmt, err := db.Prepare(`
		SELECT author_id, name, name_normalized, alternate_id
		FROM authors WHERE name_normalized < ?
		ORDER BY name_normalized DESC LIMIT ?`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("authority: prepare neighbors down: %w", err)
	}

	return &SQLiteStore{
		db:              db,
		lookupStmt:      lookupStmt,
		neighborsUpStmt: neighborsUpStmt,
		neighborsDnStmt: neighborsDnStmt,
	}, nil
}

func (s *SQLiteStore) LookupExact(normalized string) (Record, bool) {
	var r Record
	row := s.lookupStmt.QueryRow(normalized)
	if err := row.Scan(&r.AuthorID, &r.Name, &r.NameNormalized, &r.AlternateID); err != nil {
		return Record{}, false
	}
	return r, true
}

func (s *SQLiteStore) Neighbors(normalized string, k int) []Record {
	out := make([]Record, 0, 2*k)

	up, err := s.neighborsUpStmt.Query(normalized, k)
	if err == nil {
		out = append(out, scanRecords(up)...)
	}

	down, err := s.neighborsDnStmt.Query(normalized, k)
	if err == nil {
		out = append(out, scanRecords(down)...)
	}

	return out
}

func scanRecords(rows *sql.Rows) []Record {
	defer rows.Close()
	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.AuthorID, &r.Name, &r.NameNormalized, &r.AlternateID); err != nil {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *SQLiteStore) Close() error {
	s.lookupStmt.Close()
	s.neighborsUpStmt.Close()
	s.neighborsDnStmt.Close()
	return s.db.Close()
}
