// Package domain contains the core data model for the catalog server.
package domain

import "strings"

// RawRecord is one row of acquired tabular data before curation.
// Every field is an optional string; OCR output carries no typing
// guarantees, so even year and ISBN stay strings for display.
type RawRecord struct {
	ID          string `json:"id"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Signature   string `json:"signature"`
	Shelf       string `json:"shelf"`
	Subject     string `json:"subject"`
	Condition   string `json:"condition"`
	Status      string `json:"status"`
	CoverLocal  string `json:"cover_local"`
	CoverOnline string `json:"cover_online"`
	Year        string `json:"year"`
	Language    string `json:"language"`
	ISBN        string `json:"isbn"`
	Publisher   string `json:"publisher"`
	Description string `json:"description"`
}

// Field returns a raw field by its column name, or "" for unknown names.
// Both the upstream German column names and their English aliases are
// accepted so sort keys and grouping dimensions can use either.
func (r *RawRecord) Field(name string) string {
	switch name {
	case "id":
		return r.ID
	case "author":
		return r.Author
	case "title":
		return r.Title
	case "signatur", "signature":
		return r.Signature
	case "regal", "shelf":
		return r.Shelf
	case "fach", "subject":
		return r.Subject
	case "zustand", "condition":
		return r.Condition
	case "status_digitalisierung", "status":
		return r.Status
	case "cover_local":
		return r.CoverLocal
	case "cover_online":
		return r.CoverOnline
	case "year":
		return r.Year
	case "language":
		return r.Language
	case "isbn":
		return r.ISBN
	case "publisher":
		return r.Publisher
	case "description":
		return r.Description
	default:
		return ""
	}
}

// HasCover reports whether the record references any cover image,
// local or online.
func (r *RawRecord) HasCover() bool {
	return strings.TrimSpace(r.CoverLocal) != "" || strings.TrimSpace(r.CoverOnline) != ""
}

// Record is a curated catalog entry: the raw row plus derived display
// fields computed exactly once during enrichment.
type Record struct {
	RawRecord

	// AuthorDisplay is the normalized "Family, Given" form, multiple
	// authors joined with the display separator.
	AuthorDisplay string `json:"author_display"`

	// Category is one label from the closed classification set.
	Category string `json:"category"`
}

// Dataset is the canonical in-memory record set for one acquisition.
// It is immutable after construction; views are recomputed projections.
type Dataset struct {
	Records []*Record

	// Rejected counts rows the validator dropped during curation.
	Rejected int

	// ParseErrors counts rows the structured parse dropped.
	ParseErrors int
}

// Lookup returns the record with the given identifier, or nil.
func (d *Dataset) Lookup(id string) *Record {
	if d == nil || id == "" {
		return nil
	}
	for _, rec := range d.Records {
		if rec.ID == id {
			return rec
		}
	}
	return nil
}

// Len returns the number of curated records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}
