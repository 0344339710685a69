// Package library reads book records from the Kindle.app BookData.sqlite
// database and flattens each row's archived sync metadata into attributes.
package library

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// lassenDBPath is where Kindle.app keeps its library database on macOS,
// relative to the user's home directory.
const lassenDBPath = "Library/Containers/com.amazon.Lassen/Data/Library/Protected/BookData.sqlite"

// Library wraps a read-only connection to a BookData.sqlite database.
type Library struct {
	db *sql.DB
}

// Open opens the database at path in read-only mode. The file must already
// exist; this tool never creates or writes the source database.
func Open(path string) (*Library, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("library database: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open library database: %w", err)
	}
	// sql.Open is lazy; ping now so an unreadable file fails here, not on
	// the first query.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open library database: %w", err)
	}

	return &Library{db: db}, nil
}

// Close closes the database connection.
func (l *Library) Close() error {
	return l.db.Close()
}

// DefaultPath probes the standard locations for BookData.sqlite: the Kindle
// app container under the home directory, then ./data in the working
// directory.
func DefaultPath() (string, error) {
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, filepath.FromSlash(lassenDBPath))
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	p := filepath.Join("data", "BookData.sqlite")
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}

	return "", errors.New("no BookData.sqlite found in the default locations; pass --db-path")
}

// Books loads every ZBOOK row and extracts its metadata attributes. Rows
// whose metadata blob is missing or malformed still appear in the result with
// absent attributes; only a failure to read the table itself is an error.
func (l *Library) Books() ([]Book, error) {
	rows, err := l.db.Query(`SELECT Z_PK, ZSYNCMETADATAATTRIBUTES FROM ZBOOK ORDER BY Z_PK`)
	if err != nil {
		return nil, fmt.Errorf("query ZBOOK: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var (
			rowID int64
			blob  []byte
		)
		if err := rows.Scan(&rowID, &blob); err != nil {
			return nil, fmt.Errorf("scan ZBOOK row: %w", err)
		}
		books = append(books, newBook(rowID, blob))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ZBOOK rows: %w", err)
	}

	return books, nil
}

// RawMetadata returns one row's metadata blob, nil when the column is NULL.
func (l *Library) RawMetadata(rowID int64) ([]byte, error) {
	var blob []byte
	err := l.db.QueryRow(`SELECT ZSYNCMETADATAATTRIBUTES FROM ZBOOK WHERE Z_PK = ?`, rowID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %d not found", rowID)
	}
	if err != nil {
		return nil, fmt.Errorf("query book %d: %w", rowID, err)
	}
	return blob, nil
}
