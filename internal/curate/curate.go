package curate

import (
	"github.com/katalogapp/katalog-server/internal/domain"
)

// Enrich derives the display fields for a raw row. Enrichment is
// deterministic: the same input always yields the same Record.
func Enrich(raw domain.RawRecord) *domain.Record {
	return &domain.Record{
		RawRecord:     raw,
		AuthorDisplay: AuthorDisplay(raw.Author),
		Category:      Classify(&raw),
	}
}

// BuildDataset runs validation then enrichment over the acquired rows
// and returns the canonical dataset. Validation runs exactly once per
// row; rejected rows never enter the dataset and are not revisited.
func BuildDataset(rows []domain.RawRecord, parseErrors int) *domain.Dataset {
	ds := &domain.Dataset{
		Records:     make([]*domain.Record, 0, len(rows)),
		ParseErrors: parseErrors,
	}
	for i := range rows {
		if !ShouldKeep(&rows[i]) {
			ds.Rejected++
			continue
		}
		ds.Records = append(ds.Records, Enrich(rows[i]))
	}
	return ds
}
