package curate

import (
	"strings"

	"github.com/katalogapp/katalog-server/internal/domain"
)

// QualityScore rates how complete a record's metadata is. The score is
// a pure function of the record and is recomputed wherever needed
// instead of being stored, so it can never go stale.
//
// Weights: description 3, any cover 2, ISBN 2, publisher 1, year 1,
// signature 0.5. Nothing else contributes.
func QualityScore(rec *domain.Record) float64 {
	score := 0.0
	if strings.TrimSpace(rec.Description) != "" {
		score += 3
	}
	if rec.HasCover() {
		score += 2
	}
	if strings.TrimSpace(rec.ISBN) != "" {
		score += 2
	}
	if strings.TrimSpace(rec.Publisher) != "" {
		score += 1
	}
	if strings.TrimSpace(rec.Year) != "" {
		score += 1
	}
	if strings.TrimSpace(rec.Signature) != "" {
		score += 0.5
	}
	return score
}
