package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/rs/zerolog"
)

// DB is the shared durable address space: a single SQLite database holding
// one keyed record collection per entity namespace. Records survive process
// restarts; the schema is applied on open with no migration logic.
type DB struct {
	db  *sql.DB
	log zerolog.Logger
}

func Open(dataSourceName string, log zerolog.Logger) (*DB, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; one pooled connection also keeps
	// ":memory:" databases coherent across goroutines.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &DB{db: db, log: log}
	if err = s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	log.Debug().Str("dsn", dataSourceName).Msg("record store opened")
	return s, nil
}

func (s *DB) Close() error {
	return s.db.Close()
}

func (s *DB) initSchema() error {
	// seq is AUTOINCREMENT so insertion order is stable and never reused;
	// an upsert keeps the record's original position.
	schema := `
    CREATE TABLE IF NOT EXISTS records (
        seq INTEGER PRIMARY KEY AUTOINCREMENT,
        namespace TEXT NOT NULL,
        key TEXT NOT NULL,
        value TEXT NOT NULL,
        UNIQUE (namespace, key)
    );

    CREATE INDEX IF NOT EXISTS idx_records_namespace ON records (namespace, seq);
    `
	_, err := s.db.Exec(schema)
	return err
}

func (s *DB) put(namespace, key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO records (namespace, key, value) VALUES (?, ?, ?)
         ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value`,
		namespace, key, string(value))
	if err != nil {
		return fmt.Errorf("failed to upsert record %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *DB) get(namespace, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM records WHERE namespace = ? AND key = ?",
		namespace, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query record %s/%s: %w", namespace, key, err)
	}
	return []byte(value), true, nil
}

func (s *DB) remove(namespace, key string) error {
	_, err := s.db.Exec(
		"DELETE FROM records WHERE namespace = ? AND key = ?", namespace, key)
	if err != nil {
		return fmt.Errorf("failed to delete record %s/%s: %w", namespace, key, err)
	}
	return nil
}

func (s *DB) values(namespace string) ([][]byte, error) {
	rows, err := s.db.Query(
		"SELECT value FROM records WHERE namespace = ? ORDER BY seq ASC", namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to query records in %s: %w", namespace, err)
	}
	defer rows.Close()

	var out [][]byte
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		out = append(out, []byte(value))
	}
	return out, rows.Err()
}

func (s *DB) count(namespace string) (int, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM records WHERE namespace = ?", namespace).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count records in %s: %w", namespace, err)
	}
	return n, nil
}
