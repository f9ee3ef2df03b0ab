// Command curate runs the curation pipeline over a CSV export and
// reports what the server would keep, reject and derive, without
// starting anything.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/katalogapp/katalog-server/internal/curate"
	"github.com/katalogapp/katalog-server/internal/domain"
	"github.com/katalogapp/katalog-server/internal/ingest"
)

func main() {
	path := flag.String("path", "", "CSV export to curate")
	sqlite := flag.Bool("sqlite", false, "treat path as a SQLite database instead of CSV")
	showRejects := flag.Bool("rejects", false, "list rejected row IDs")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: curate -path <export.csv> [-sqlite] [-rejects]")
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var source ingest.Source
	if *sqlite {
		source = &ingest.SQLiteSource{Path: *path, Logger: logger}
	} else {
		source = &ingest.FileSource{Path: *path, Logger: logger}
	}

	rows, parseErrors, err := source.Fetch(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "acquisition failed: %v\n", err)
		os.Exit(1)
	}

	var rejected []string
	kept := make([]domain.RawRecord, 0, len(rows))
	for i := range rows {
		if curate.ShouldKeep(&rows[i]) {
			kept = append(kept, rows[i])
		} else {
			rejected = append(rejected, rows[i].ID)
		}
	}

	ds := curate.BuildDataset(rows, parseErrors)

	fmt.Println("=== Curation Report ===")
	fmt.Printf("rows acquired:  %d\n", len(rows)+parseErrors)
	fmt.Printf("parse errors:   %d\n", parseErrors)
	fmt.Printf("kept:           %d\n", len(kept))
	fmt.Printf("rejected:       %d\n", len(rejected))
	fmt.Println()

	byCategory := make(map[string]int)
	withCover, withDescription := 0, 0
	var quality float64
	for _, rec := range ds.Records {
		byCategory[rec.Category]++
		if rec.HasCover() {
			withCover++
		}
		if rec.Description != "" {
			withDescription++
		}
		quality += curate.QualityScore(rec)
	}

	fmt.Println("categories:")
	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-20s %d\n", name, byCategory[name])
	}
	fmt.Println()

	fmt.Printf("with cover:       %d\n", withCover)
	fmt.Printf("with description: %d\n", withDescription)
	if ds.Len() > 0 {
		fmt.Printf("avg quality:      %.2f\n", quality/float64(ds.Len()))
	}

	if *showRejects && len(rejected) > 0 {
		fmt.Println()
		fmt.Println("rejected row IDs:")
		for _, id := range rejected {
			fmt.Printf("  %s\n", id)
		}
	}
}
