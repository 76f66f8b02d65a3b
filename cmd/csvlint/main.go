// Command csvlint validates delimited text files against a JSON-described
// schema and prints a human-readable report per file.
//
// Usage:
//
//	csvlint -config run.json data.csv [more.csv ...]
//
// The config document carries the schema, reader options, report settings
// and an optional per-error CSV log. Flags override the corresponding
// options for the run. Files are validated concurrently; reports are
// printed in argument order. The process exits 1 when any file is invalid
// and 2 on usage or configuration errors.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"csvlint/internal/config"
	"csvlint/internal/errlog"
	"csvlint/internal/metrics"
	"csvlint/internal/metrics/prompush"
	"csvlint/internal/report"
	"csvlint/internal/validator"
)

func main() {
	var (
		configPath     = flag.String("config", "", "path to the JSON run document (required)")
		verbose        = flag.Bool("verbose", false, "print per-error detail lines (overrides config)")
		fingerprint    = flag.Bool("fingerprint", false, "print each result's content fingerprint")
		encoding       = flag.String("encoding", "", "override the configured input encoding (IANA name)")
		delimiter      = flag.String("delimiter", "", "override the configured field delimiter")
		maxErrors      = flag.Int("max-errors", -1, "override the configured error cap; 0 means unlimited")
		metricsBackend = flag.String("metrics-backend", "none", "metrics backend: none or prompush")
		pushgatewayURL = flag.String("pushgateway-url", "", "Pushgateway base URL for -metrics-backend=prompush")
		concurrency    = flag.Int("concurrency", 4, "maximum number of files validated in parallel")
	)
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "csvlint: -config is required")
		flag.Usage()
		os.Exit(2)
	}
	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "csvlint: at least one input file is required")
		flag.Usage()
		os.Exit(2)
	}

	doc, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("csvlint: %v", err)
	}
	applyOverrides(&doc, *encoding, *delimiter, *maxErrors, *verbose)

	fatal := false
	for _, issue := range config.Validate(doc) {
		log.Printf("csvlint: config %s", issue.Error())
		if issue.Severity == config.SeverityError {
			fatal = true
		}
	}
	if fatal {
		os.Exit(2)
	}

	switch *metricsBackend {
	case "none", "":
	case "prompush":
		b, err := prompush.NewBackend("csvlint", *pushgatewayURL)
		if err != nil {
			log.Fatalf("csvlint: %v", err)
		}
		metrics.SetBackend(b)
	default:
		log.Fatalf("csvlint: unknown metrics backend %q", *metricsBackend)
	}

	v := &validator.Validator{
		Schema:    doc.Schema,
		Encoding:  doc.Options.Encoding,
		Delimiter: doc.Options.DelimiterRune(),
		MaxErrors: doc.Options.MaxErrors,
	}

	// The error log is strictly secondary: failure to open it downgrades to
	// a warning and a nil sink, which records nothing.
	var sink *errlog.Sink
	if doc.ErrorLog.Path != "" {
		sink, err = errlog.Open(doc.ErrorLog.Path)
		if err != nil {
			log.Printf("csvlint: error log disabled: %v", err)
		}
	}

	ctx := context.Background()
	results := make([]validator.Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*concurrency)
	for i, path := range files {
		g.Go(func() error {
			start := time.Now()
			res := v.Validate(gctx, path)
			recordMetrics(res, time.Since(start))
			results[i] = res
			return nil
		})
	}
	// Workers never return errors; findings live in the Results.
	_ = g.Wait()

	renderer := report.Renderer{
		Verbose:    doc.Report.Verbose,
		MaxDisplay: doc.Report.MaxDisplay,
	}
	anyInvalid := false
	for _, res := range results {
		renderer.Render(os.Stdout, res)
		if *fingerprint {
			fmt.Printf("Fingerprint: %016x\n", res.Fingerprint())
		}
		sink.RecordResult(res)
		if !res.Valid {
			anyInvalid = true
		}
	}

	if err := sink.Close(); err != nil {
		log.Printf("csvlint: error log: %v", err)
	}
	if err := metrics.Flush(); err != nil {
		log.Printf("csvlint: metrics flush: %v", err)
	}

	if anyInvalid {
		os.Exit(1)
	}
}

// applyOverrides layers flag values over the loaded document. A max-errors
// value below zero means the flag was not set.
func applyOverrides(doc *config.Document, encoding, delimiter string, maxErrors int, verbose bool) {
	if encoding != "" {
		doc.Options.Encoding = encoding
	}
	if delimiter != "" {
		doc.Options.Delimiter = delimiter
	}
	if maxErrors >= 0 {
		doc.Options.MaxErrors = maxErrors
	}
	if verbose {
		doc.Report.Verbose = true
	}
}

// recordMetrics reports one run's outcome to the metrics backend.
func recordMetrics(res validator.Result, d time.Duration) {
	metrics.RecordRun(res.FilePath, res.Valid, d)
	metrics.RecordRows(res.FilePath, "seen", int64(res.TotalRows))
	metrics.RecordRows(res.FilePath, "validated", int64(res.RowsValidated))
	for kind, n := range res.Summary {
		metrics.RecordErrors(res.FilePath, string(kind), int64(n))
	}
}
