package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/katalogapp/katalog-server/internal/domain"
	"github.com/katalogapp/katalog-server/internal/id"
)

// RowErrorFunc reports one malformed row. line is 1-based and counts
// the header.
type RowErrorFunc func(line int, err error)

// ParseRecords converts delimited text into raw records. The first row
// names the fields; both the upstream German column names and their
// English aliases are understood, in any order. Malformed rows are
// reported through onRowError and skipped, never aborting the parse.
// Rows arriving without an identifier get one minted so deep links can
// address them.
func ParseRecords(text string, onRowError RowErrorFunc) ([]domain.RawRecord, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
	}

	var rows []domain.RawRecord
	line := 1
	for {
		line++
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if onRowError != nil {
				onRowError(line, err)
			}
			continue
		}

		var raw domain.RawRecord
		empty := true
		for i, value := range fields {
			if i >= len(columns) {
				break
			}
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			empty = false
			setField(&raw, columns[i], value)
		}
		if empty {
			continue
		}
		if raw.ID == "" {
			raw.ID = id.MustGenerate(id.BookPrefix)
		}
		rows = append(rows, raw)
	}
	return rows, nil
}

// setField assigns one named column into the record, mirroring the
// names domain.RawRecord.Field accepts. Unknown columns are ignored.
func setField(raw *domain.RawRecord, column, value string) {
	switch column {
	case "id":
		raw.ID = value
	case "author":
		raw.Author = value
	case "title":
		raw.Title = value
	case "signatur", "signature":
		raw.Signature = value
	case "regal", "shelf":
		raw.Shelf = value
	case "fach", "subject":
		raw.Subject = value
	case "zustand", "condition":
		raw.Condition = value
	case "status_digitalisierung", "status":
		raw.Status = value
	case "cover_local":
		raw.CoverLocal = value
	case "cover_online":
		raw.CoverOnline = value
	case "year":
		raw.Year = value
	case "language":
		raw.Language = value
	case "isbn":
		raw.ISBN = value
	case "publisher":
		raw.Publisher = value
	case "description":
		raw.Description = value
	}
}
