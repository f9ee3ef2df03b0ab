package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/de"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for book documents.
// The catalog is German, so text fields use the German analyzer for
// stemming and umlaut folding; category stays a keyword for faceting.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = de.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// Title - primary search target, boosted at query time.
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = de.AnalyzerName
	titleFieldMapping.Store = true
	titleFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	// Author - normalized display form.
	authorFieldMapping := bleve.NewTextFieldMapping()
	authorFieldMapping.Analyzer = de.AnalyzerName
	authorFieldMapping.Store = true
	authorFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("author", authorFieldMapping)

	// Description - searchable but not stored (too large).
	descFieldMapping := bleve.NewTextFieldMapping()
	descFieldMapping.Analyzer = de.AnalyzerName
	descFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("description", descFieldMapping)

	// Publisher - no stemming; imprint names are proper nouns.
	publisherFieldMapping := bleve.NewTextFieldMapping()
	publisherFieldMapping.Analyzer = simple.Name
	publisherFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("publisher", publisherFieldMapping)

	// Signature - exact shelving code, no analysis.
	signatureFieldMapping := bleve.NewTextFieldMapping()
	signatureFieldMapping.Analyzer = keyword.Name
	signatureFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("signature", signatureFieldMapping)

	// ID - stored but not analyzed.
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Category - exact match, facetable.
	categoryFieldMapping := bleve.NewTextFieldMapping()
	categoryFieldMapping.Analyzer = keyword.Name
	categoryFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("category", categoryFieldMapping)

	// Year - for range filtering.
	yearFieldMapping := bleve.NewNumericFieldMapping()
	yearFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("year", yearFieldMapping)

	// Quality - for sorting hits by metadata completeness.
	qualityFieldMapping := bleve.NewNumericFieldMapping()
	qualityFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("quality", qualityFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}
