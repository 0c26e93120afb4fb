// Command-line entry point for the boarding pass parser.
//
// The scan command reads one or more documents (plain text dumps, PDFs, or
// images when built with the tesseract tag), runs the extraction pipeline
// and prints the resulting flight records as JSON. Results can optionally be
// logged to a local SQLite database, which also feeds the review queue
// served by review-api.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"boardingpass_parser/internal/pipeline"
	"boardingpass_parser/internal/recognize"
	"boardingpass_parser/internal/storage"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "boardingpass_parser - commands:")
	fmt.Fprintln(w, "  scan   - extract flight records from documents")
	fmt.Fprintln(w, "  stats  - print statistics from a result database")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  boardingpass_parser scan [-strict] [-pretty] [-db results.db] FILE...")
	fmt.Fprintln(w, "  boardingpass_parser scan < pass.txt")
	fmt.Fprintln(w, "  boardingpass_parser stats -db results.db")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - With no FILE arguments, scan reads a single document from stdin.")
	fmt.Fprintln(w, "  - Image OCR requires a binary built with the tesseract tag.")
	fmt.Fprintln(w, "")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	switch strings.ToLower(os.Args[1]) {
	case "scan":
		runScan(os.Args[2:])
	case "stats":
		runStats(os.Args[2:])
	case "-h", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}
}

func runScan(args []string) {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	strict := fs.Bool("strict", false, "Fail on the first unresolved required field instead of returning a partial record")
	pretty := fs.Bool("pretty", false, "Pretty-print JSON output")
	dbPath := fs.String("db", envOrDefault("BOARDINGPASS_DB", ""), "Optional SQLite database to log results to")
	outPath := fs.String("output", "", "Output file (default: stdout)")
	_ = fs.Parse(args)

	mode := pipeline.Lenient
	if *strict {
		mode = pipeline.Strict
	}
	p := pipeline.New(recognize.NewRegistry(
		recognize.NewPlainText(),
		recognize.NewPDFText(),
		recognize.NewTesseract(),
	), pipeline.Options{Mode: mode}, nil)

	var db *storage.DB
	if *dbPath != "" {
		var err error
		db, err = storage.Open(*dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	enc := json.NewEncoder(out)
	if *pretty {
		enc.SetIndent("", "  ")
	}

	inputs := fs.Args()
	failed := 0
	if len(inputs) == 0 {
		if !scanOne(p, db, "stdin", os.Stdin, enc, mode) {
			failed++
		}
	}
	for _, path := range inputs {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", path, err)
			failed++
			continue
		}
		if !scanOne(p, db, path, f, enc, mode) {
			failed++
		}
		_ = f.Close()
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func scanOne(p *pipeline.Pipeline, db *storage.DB, name string, r io.Reader, enc *json.Encoder, mode pipeline.Mode) bool {
	data, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", name, err)
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	res := p.Parse(ctx, data)
	_ = enc.Encode(res)

	if db != nil {
		storeResult(db, string(data), res, mode)
	}
	return res.Success
}

func storeResult(db *storage.DB, rawText string, res pipeline.Result, mode pipeline.Mode) {
	params := storage.InsertParams{
		ScannedAt:      time.Now(),
		Mode:           string(mode),
		RawText:        rawText,
		Record:         res.Record,
		MissingFields:  res.RequiresManualEntry,
		ReviewPriority: res.ReviewPriority,
	}
	if res.Record != nil {
		params.Backend = res.Record.Meta.Backend
		params.Flight = res.Record.FlightNumber
		params.Airline = res.Record.Airline
		params.Origin = res.Record.Origin
		params.Destination = res.Record.Destination
		params.FlightDate = res.Record.FlightDate
		params.Confidence = res.Record.Meta.Confidence
	}
	if _, err := db.Insert(params); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to store result: %v\n", err)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	dbPath := fs.String("db", envOrDefault("BOARDINGPASS_DB", "results.db"), "SQLite database path")
	_ = fs.Parse(args)

	db, err := storage.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	stats, err := db.GetStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Total extractions:  %d\n", stats.Total)
	fmt.Printf("With missing:       %d\n", stats.WithMissing)
	fmt.Printf("Pending review:     %d\n", stats.PendingReview)
	fmt.Println("By backend:")
	for backend, count := range stats.ByBackend {
		fmt.Printf("  %-12s %d\n", backend, count)
	}
	fmt.Println("Top missing fields:")
	for field, count := range stats.TopMissingFields {
		fmt.Printf("  %-16s %d\n", field, count)
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
