package ingest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "katalog.sqlite3")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	schema := `
	CREATE TABLE authors (id INTEGER PRIMARY KEY, name TEXT);
	CREATE TABLE publishers (id INTEGER PRIMARY KEY, name TEXT);
	CREATE TABLE books (
		id INTEGER PRIMARY KEY,
		title TEXT,
		author_id INTEGER,
		publisher_id INTEGER,
		publication_year TEXT,
		language TEXT,
		isbn_13 TEXT,
		isbn_10 TEXT,
		description TEXT
	);
	CREATE TABLE copies (
		book_id INTEGER,
		signatur TEXT,
		regal TEXT,
		fach TEXT,
		zustand TEXT,
		status_digitalisierung TEXT,
		cover_local TEXT,
		cover_online TEXT
	);`
	_, err = db.Exec(schema)
	require.NoError(t, err)

	_, err = db.Exec(`
	INSERT INTO authors (id, name) VALUES (1, 'Ende, Michael');
	INSERT INTO publishers (id, name) VALUES (1, 'Thienemann');
	INSERT INTO books (id, title, author_id, publisher_id, publication_year, language, isbn_13, description)
		VALUES (42, 'Momo', 1, 1, '1973', 'de', '978-3-522-20210-2', 'Ein Märchen-Roman');
	INSERT INTO books (id, title) VALUES (43, 'Ohne alles');
	INSERT INTO copies (book_id, signatur, regal, fach, status_digitalisierung)
		VALUES (42, 'Ju 5 End', 'R3', 'Kinderbuch', 'Gemini-Import');`)
	require.NoError(t, err)
	return path
}

func TestSQLiteSource_Fetch(t *testing.T) {
	src := &SQLiteSource{Path: newCatalogDB(t)}

	rows, dropped, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, rows, 2)

	// Ordered by signature: the copyless book sorts first on ''.
	assert.Equal(t, "43", rows[0].ID)
	assert.Empty(t, rows[0].Author)

	momo := rows[1]
	assert.Equal(t, "42", momo.ID)
	assert.Equal(t, "Ende, Michael", momo.Author)
	assert.Equal(t, "Ju 5 End", momo.Signature)
	assert.Equal(t, "Kinderbuch", momo.Subject)
	assert.Equal(t, "Gemini-Import", momo.Status)
	assert.Equal(t, "978-3-522-20210-2", momo.ISBN)
	assert.Equal(t, "Thienemann", momo.Publisher)
}

func TestSQLiteSource_MissingDBIsTerminal(t *testing.T) {
	src := &SQLiteSource{Path: filepath.Join(t.TempDir(), "fehlt.sqlite3")}
	_, _, err := src.Fetch(context.Background())
	assert.Error(t, err)
}
