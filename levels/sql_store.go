package levels

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// SQLStore keeps levels in a single table of a SQLite or PostgreSQL
// database.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// OpenSQLStore connects to the database and makes sure the schema exists.
func OpenSQLStore(driver, dsn string) (*SQLStore, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("levels: unsupported sql driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("levels: open %s: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("levels: ping %s: %w", driver, err)
	}
	s := &SQLStore{db: db, driver: driver}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) initSchema() error {
	blob := "BLOB"
	if s.driver == DriverPostgres {
		blob = "BYTEA"
	}
	schema := `
	CREATE TABLE IF NOT EXISTS levels (
		name TEXT PRIMARY KEY,
		timestamp BIGINT NOT NULL,
		document TEXT NOT NULL,
		preview ` + blob + `
	);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("levels: create table: %w", err)
	}
	log.Println("Levels table ensured.")
	return nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLStore) Save(name string, doc *Document, preview []byte) error {
	name, err := CleanName(name)
	if err != nil {
		return err
	}
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	const upsert = `
	INSERT INTO levels (name, timestamp, document, preview)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (name) DO UPDATE SET
		timestamp = excluded.timestamp,
		document = excluded.document,
		preview = excluded.preview;`
	if _, err := s.db.Exec(s.rebind(upsert), name, doc.Timestamp, string(data), preview); err != nil {
		return fmt.Errorf("levels: save %s: %w", name, err)
	}
	log.Printf("Saved level: %s (%s)", name, s.driver)
	return nil
}

func (s *SQLStore) Load(name string) (*Document, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}
	var data string
	err = s.db.QueryRow(s.rebind(`SELECT document FROM levels WHERE name = ?;`), name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	doc, err := Unmarshal([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	if doc.Name == "" {
		doc.Name = name
	}
	return doc, nil
}

func (s *SQLStore) Preview(name string) ([]byte, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}
	var preview []byte
	err = s.db.QueryRow(s.rebind(`SELECT preview FROM levels WHERE name = ?;`), name).Scan(&preview)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && len(preview) == 0) {
		return nil, fmt.Errorf("%w: preview %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: preview %s: %w", name, err)
	}
	return preview, nil
}

func (s *SQLStore) List() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT name, timestamp FROM levels ORDER BY timestamp ASC, name ASC;`)
	if err != nil {
		return nil, fmt.Errorf("levels: list: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("levels: list: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("levels: list: %w", err)
	}
	return entries, nil
}

func (s *SQLStore) Delete(name string) error {
	name, err := CleanName(name)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(s.rebind(`DELETE FROM levels WHERE name = ?;`), name)
	if err != nil {
		return fmt.Errorf("levels: delete %s: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

// OpenStore returns the store configured by driver: "dir" (or empty) for a
// directory store, otherwise a SQL store.
func OpenStore(driver, dsn, dir, previewFormat string) (Store, error) {
	switch driver {
	case "", "dir":
		return NewDirStore(dir, previewFormat), nil
	default:
		return OpenSQLStore(driver, dsn)
	}
}
