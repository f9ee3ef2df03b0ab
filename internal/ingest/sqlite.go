package ingest

import (
	"context"
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/katalogapp/katalog-server/internal/domain"
	"github.com/katalogapp/katalog-server/internal/errors"
)

// catalogQuery flattens the cataloging schema (books joined with
// authors, publishers and physical copies) into the raw row shape the
// CSV export produces, so both sources feed the same curation pipeline.
const catalogQuery = `
SELECT
	b.id,
	COALESCE(a.name, '') AS author,
	COALESCE(b.title, '') AS title,
	COALESCE(c.signatur, '') AS signatur,
	COALESCE(c.regal, '') AS regal,
	COALESCE(c.fach, '') AS fach,
	COALESCE(c.zustand, '') AS zustand,
	COALESCE(c.status_digitalisierung, '') AS status_digitalisierung,
	COALESCE(c.cover_local, '') AS cover_local,
	COALESCE(c.cover_online, '') AS cover_online,
	COALESCE(b.publication_year, '') AS year,
	COALESCE(b.language, '') AS language,
	COALESCE(b.isbn_13, b.isbn_10, '') AS isbn,
	COALESCE(p.name, '') AS publisher,
	COALESCE(b.description, '') AS description
FROM books b
LEFT JOIN authors a ON b.author_id = a.id
LEFT JOIN publishers p ON b.publisher_id = p.id
LEFT JOIN copies c ON b.id = c.book_id
ORDER BY COALESCE(c.signatur, ''), a.name, b.title`

// SQLiteSource reads raw rows straight from the cataloging database
// instead of its CSV export.
type SQLiteSource struct {
	Path   string
	Logger *slog.Logger
}

// Fetch opens the database read-only and runs the flattening query.
// Rows that fail to scan are dropped and counted, matching the
// tolerant per-row policy of the text sources.
func (s *SQLiteSource) Fetch(ctx context.Context) ([]domain.RawRecord, int, error) {
	db, err := sql.Open("sqlite", "file:"+s.Path+"?mode=ro")
	if err != nil {
		return nil, 0, errors.Wrapf(err, errors.CodeUnavailable, "open catalog db %s", s.Path)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, catalogQuery)
	if err != nil {
		return nil, 0, errors.Wrapf(err, errors.CodeUnavailable, "query catalog db %s", s.Path)
	}
	defer rows.Close()

	var (
		out     []domain.RawRecord
		dropped int
	)
	for rows.Next() {
		var raw domain.RawRecord
		err := rows.Scan(
			&raw.ID,
			&raw.Author,
			&raw.Title,
			&raw.Signature,
			&raw.Shelf,
			&raw.Subject,
			&raw.Condition,
			&raw.Status,
			&raw.CoverLocal,
			&raw.CoverOnline,
			&raw.Year,
			&raw.Language,
			&raw.ISBN,
			&raw.Publisher,
			&raw.Description,
		)
		if err != nil {
			dropped++
			if s.Logger != nil {
				s.Logger.Warn("dropping unscannable row", "error", err)
			}
			continue
		}
		out = append(out, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrapf(err, errors.CodeUnavailable, "iterate catalog db %s", s.Path)
	}
	return out, dropped, nil
}
