// Command seednormativa converts a spreadsheet of reference legal norms into
// a SQL seed file for the normativa table.
// The first sheet must hold a header row followed by one norm per row with
// columns: código, título, categoría, descripción.
// Usage: go run ./cmd/seednormativa -in normativa.xlsx -out db/seeds/normativa.sql
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"munidocs/internal/logger"
)

const batchSize = 500

type normaEntry struct {
	code        string
	title       string
	category    string
	description string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	inPath := flag.String("in", "normativa.xlsx", "source spreadsheet")
	outPath := flag.String("out", "db/seeds/normativa.sql", "generated SQL file")
	flag.Parse()

	zl, err := logger.New("info", "console")
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	f, err := excelize.OpenFile(*inPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, skipped, err := parseSheet(f)
	if err != nil {
		return fmt.Errorf("parse sheet: %w", err)
	}
	zl.Info("sheet parsed", zap.Int("entries", len(entries)), zap.Int("skipped", skipped))

	out, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	if err := writeSeed(out, entries); err != nil {
		return err
	}

	zl.Info("seed written",
		zap.String("path", *outPath),
		zap.Int("batches", (len(entries)+batchSize-1)/batchSize),
	)
	return nil
}

// parseSheet reads the first sheet, skipping the header row. Rows without a
// code, title or category are skipped; duplicate codes keep the first row.
func parseSheet(f *excelize.File) ([]normaEntry, int, error) {
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, 0, err
	}

	seen := make(map[string]bool)
	var entries []normaEntry
	skipped := 0
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		e := normaEntry{
			code:        strings.TrimSpace(cellVal(row, 0)),
			title:       strings.TrimSpace(cellVal(row, 1)),
			category:    strings.ToLower(strings.TrimSpace(cellVal(row, 2))),
			description: strings.TrimSpace(cellVal(row, 3)),
		}
		if e.code == "" || e.title == "" || e.category == "" || seen[e.code] {
			skipped++
			continue
		}
		seen[e.code] = true
		entries = append(entries, e)
	}
	return entries, skipped, nil
}

func writeSeed(out io.Writer, entries []normaEntry) error {
	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- Normativa seed data generated from a spreadsheet.",
		fmt.Sprintf("-- %d entries in batches of %d.", len(entries), batchSize),
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}
	return nil
}

func writeBatch(out io.Writer, batch []normaEntry) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO normativa (code, title, category, description) VALUES\n")

	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s')",
			escapeSQL(e.code), escapeSQL(e.title), escapeSQL(e.category), escapeSQL(e.description))
	}

	b.WriteString("\nON CONFLICT (code) DO NOTHING;\n")

	_, err := io.WriteString(out, b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
