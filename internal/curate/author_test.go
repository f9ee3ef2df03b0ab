package curate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalogapp/katalog-server/internal/domain"
)

func TestAuthorDisplay(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"single token", "Homer", "Homer"},
		{"given family", "Michael Ende", "Ende, Michael"},
		{"middle names stay after the comma", "Johann Wolfgang Goethe", "Goethe, Johann Wolfgang"},
		{"already family-first is untouched", "Meyer, Hans", "Meyer, Hans"},
		{"und conjunction", "Meyer, Hans und Schmidt, Lena", "Meyer, Hans · Schmidt, Lena"},
		{"ampersand", "Hans Meyer & Lena Schmidt", "Meyer, Hans · Schmidt, Lena"},
		{"semicolon", "Hans Meyer; Lena Schmidt", "Meyer, Hans · Schmidt, Lena"},
		{"slash", "Hans Meyer/Lena Schmidt", "Meyer, Hans · Schmidt, Lena"},
		{"empties between separators are dropped", "Hans Meyer;;Lena Schmidt", "Meyer, Hans · Schmidt, Lena"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AuthorDisplay(tt.raw))
		})
	}
}

func TestAuthorDisplay_Idempotent(t *testing.T) {
	once := AuthorDisplay("Antoine de Saint-Exupéry")
	assert.Equal(t, once, AuthorDisplay(once))
}

func TestAuthorSortKey(t *testing.T) {
	rec := &domain.Record{
		RawRecord:     domain.RawRecord{Author: "Meyer, Hans und Schmidt, Lena"},
		AuthorDisplay: AuthorDisplay("Meyer, Hans und Schmidt, Lena"),
	}
	assert.Equal(t, "meyer, hans", AuthorSortKey(rec))

	// Falls back to the raw field when display is empty.
	rec = &domain.Record{RawRecord: domain.RawRecord{Author: "Homer"}}
	assert.Equal(t, "homer", AuthorSortKey(rec))

	// Empty everywhere yields empty.
	rec = &domain.Record{}
	assert.Equal(t, "", AuthorSortKey(rec))
}
