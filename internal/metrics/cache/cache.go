// Package cache persists accumulated feature moments in SQLite so that the
// expensive real-side statistics of a dataset only need to be computed
// once per classifier.
package cache

import (
	"bytes"
	"database/sql"
	"encoding/binary"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ganeval-ml/ganeval/internal/metrics"
)

// DB wraps a SQLite database holding cached moments.
type DB struct {
	db *sql.DB
}

// Open opens or creates a moments cache at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening moments cache: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating moments cache schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS moments (
			key TEXT PRIMARY KEY,
			dim INTEGER NOT NULL,
			count INTEGER NOT NULL,
			sum BLOB NOT NULL,
			outer BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Put stores the accumulator under the given key, replacing any previous
// entry.
func (d *DB) Put(key string, m *metrics.Moments) error {
	sum, outer, err := encodeMoments(m)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		INSERT INTO moments (key, dim, count, sum, outer, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			dim = excluded.dim,
			count = excluded.count,
			sum = excluded.sum,
			outer = excluded.outer,
			updated_at = excluded.updated_at`,
		key, m.Dim(), m.Count(), sum, outer, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("storing moments %q: %w", key, err)
	}
	return nil
}

// Get loads the accumulator stored under the given key. The second return
// value reports whether the key was present.
func (d *DB) Get(key string) (*metrics.Moments, bool, error) {
	var (
		dim, count int
		sum, outer []byte
	)
	err := d.db.QueryRow(
		`SELECT dim, count, sum, outer FROM moments WHERE key = ?`, key).
		Scan(&dim, &count, &sum, &outer)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading moments %q: %w", key, err)
	}

	m, err := decodeMoments(dim, count, sum, outer)
	if err != nil {
		return nil, false, fmt.Errorf("decoding moments %q: %w", key, err)
	}
	return m, true, nil
}

// Delete removes the entry stored under the given key, if any.
func (d *DB) Delete(key string) error {
	if _, err := d.db.Exec(`DELETE FROM moments WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting moments %q: %w", key, err)
	}
	return nil
}

// Keys lists all cached keys.
func (d *DB) Keys() ([]string, error) {
	rows, err := d.db.Query(`SELECT key FROM moments ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing moments keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func encodeMoments(m *metrics.Moments) (sum, outer []byte, err error) {
	sumVals, outerVals := m.State()
	return encodeFloat64s(sumVals), encodeFloat64s(outerVals), nil
}

func decodeMoments(dim, count int, sum, outer []byte) (*metrics.Moments, error) {
	sumVals, err := decodeFloat64s(sum, dim)
	if err != nil {
		return nil, err
	}
	outerVals, err := decodeFloat64s(outer, dim*dim)
	if err != nil {
		return nil, err
	}
	return metrics.RestoreMoments(dim, count, sumVals, outerVals)
}

func encodeFloat64s(vals []float64) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, len(vals)*8))
	for _, v := range vals {
		binary.Write(buf, binary.LittleEndian, v) //nolint:errcheck // bytes.Buffer cannot fail
	}
	return buf.Bytes()
}

func decodeFloat64s(data []byte, want int) ([]float64, error) {
	if len(data) != want*8 {
		return nil, fmt.Errorf("expected %d bytes, got %d", want*8, len(data))
	}
	vals := make([]float64, want)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, vals); err != nil {
		return nil, err
	}
	return vals, nil
}
