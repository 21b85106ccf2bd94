package credentials

import (
	"database/sql"
	"errors"

	// register sqlite3 for database/sql
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

// Directory is a Store kept in a sqlite database. Only bcrypt hashes of the
// passwords are stored.
type Directory struct {
	db *sql.DB
}

// Open the sqlite database at path, creating the credential table if needed.
func Open(path string) (*Directory, error) {
	sqlite, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// each connection to ":memory:" would otherwise see its own database
	sqlite.SetMaxOpenConns(1)

	d := &Directory{db: sqlite}

	return d, d.migrate()
}

func (d *Directory) migrate() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS credential (
			Username TEXT PRIMARY KEY,
			Password TEXT
		);
	`)

	return err
}

// Put adds a user, replacing the password of an existing one.
func (d *Directory) Put(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`INSERT OR REPLACE INTO credential(Username, Password) VALUES (?, ?)`,
		username,
		string(hash))

	return err
}

// Check reports whether password is the one stored for username. Unknown users
// do not match.
func (d *Directory) Check(username, password string) (bool, error) {
	var expected string

	row := d.db.QueryRow(`SELECT Password FROM credential WHERE Username = ?`, username)
	if err := row.Scan(&expected); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	err := bcrypt.CompareHashAndPassword([]byte(expected), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// Close the database.
func (d *Directory) Close() error {
	return d.db.Close()
}
