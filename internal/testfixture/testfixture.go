// Package testfixture builds real on-disk SQLite database files for tests,
// using database/sql against github.com/mattn/go-sqlite3 so the byte
// layout pagescan reads is the genuine on-disk format rather than a
// hand-encoded approximation of it.
package testfixture

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// Build creates a new database file at path and runs statements against it
// (typically CREATE TABLE / CREATE INDEX / INSERT), then closes the
// connection so path holds the complete, final file contents.
func Build(path string, statements ...string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
