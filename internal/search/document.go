// Package search provides full-text search over the curated catalog
// using Bleve, with fuzzy matching and category faceting.
package search

import (
	"strconv"
	"strings"

	"github.com/katalogapp/katalog-server/internal/curate"
	"github.com/katalogapp/katalog-server/internal/domain"
)

// BookDocument is the document structure for the Bleve index, one per
// curated record. Display fields are denormalized so hits can be
// rendered without touching the dataset.
type BookDocument struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Publisher   string  `json:"publisher"`
	Description string  `json:"description"`
	Signature   string  `json:"signature"`
	Category    string  `json:"category"`
	Year        int     `json:"year,omitempty"`
	Quality     float64 `json:"quality"`
}

// FromRecord builds the index document for a curated record.
func FromRecord(rec *domain.Record) *BookDocument {
	doc := &BookDocument{
		ID:          rec.ID,
		Title:       rec.Title,
		Author:      rec.AuthorDisplay,
		Publisher:   rec.Publisher,
		Description: rec.Description,
		Signature:   rec.Signature,
		Category:    rec.Category,
		Quality:     curate.QualityScore(rec),
	}
	if y, err := strconv.Atoi(strings.TrimSpace(rec.Year)); err == nil {
		doc.Year = y
	}
	return doc
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but the
// mapping uses lowercase names, so we convert explicitly.
func (d *BookDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":       d.ID,
		"title":    d.Title,
		"category": d.Category,
		"quality":  d.Quality,
	}
	if d.Author != "" {
		m["author"] = d.Author
	}
	if d.Publisher != "" {
		m["publisher"] = d.Publisher
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.Signature != "" {
		m["signature"] = d.Signature
	}
	if d.Year != 0 {
		m["year"] = d.Year
	}
	return m
}
