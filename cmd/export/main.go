package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aosman25/islam-ai/internal/catalog"
	"github.com/aosman25/islam-ai/internal/export"
	"github.com/aosman25/islam-ai/internal/index"
	"github.com/aosman25/islam-ai/internal/publish"
	"github.com/aosman25/islam-ai/internal/structure"
)

type mode int

const (
	modeIDs mode = iota
	modeList
	modeAll
	modeStdout
)

type options struct {
	mode    mode
	ids     []int
	workers int
	upload  bool
}

const usage = `Usage:
  export -list              # List all books
  export <id> [id...]       # Export specific books to files
  export -stdout <id>       # Export single book as JSON to stdout
  export -all               # Export all books to files

Flags:
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}
	if opts.mode == modeIDs && len(opts.ids) == 0 {
		return nil
	}

	loadEnvFiles()
	cfg, err := loadConfig(getEnv("EXPORT_CONFIG", "export.yaml"))
	if err != nil {
		return err
	}
	if opts.workers == 0 {
		opts.workers = cfg.Workers
	}

	// Keep stdout clean for the payload.
	logOut := stdout
	if opts.mode == modeStdout {
		logOut = stderr
	}
	logger := log.New(logOut, "", 0)

	catalogPool, err := openPool(ctx, cfg.CatalogDSN)
	if err != nil {
		return err
	}
	defer catalogPool.Close()
	books := catalog.NewService(catalog.NewPostgresRepo(catalogPool))

	if opts.mode == modeList {
		summaries, err := books.ListBooks(ctx)
		if err != nil {
			return err
		}
		printBooks(stdout, summaries)
		return nil
	}

	structureDB, err := structure.Open(ctx, cfg.StructureDriver, cfg.StructureDSN)
	if err != nil {
		return fmt.Errorf("open structure store (%s): %w", redactDSN(cfg.StructureDSN), err)
	}
	defer structureDB.Close()

	handles, err := index.Open(ctx, cfg.TextIndexDSN, cfg.MetaIndexDSN)
	if err != nil {
		return err
	}
	defer handles.Close()

	exporterCfg := export.Config{Root: cfg.ExportDir, Logger: logger}
	if opts.upload {
		sink, err := publish.NewS3Sink(cfg.publishConfig())
		if err != nil {
			return err
		}
		exporterCfg.Sink = sink
	}
	exporter := export.New(books, structure.NewSQLRepo(structureDB, cfg.StructureDriver), handles, exporterCfg)

	switch opts.mode {
	case modeStdout:
		book, err := exporter.RenderBook(ctx, opts.ids[0])
		if err != nil {
			return err
		}
		logger.Printf("  Exported %d files to memory", len(book.Documents))
		return export.WritePayload(stdout, opts.ids[0], book.Documents)

	case modeAll:
		summaries, err := books.ListBooks(ctx)
		if err != nil {
			return err
		}
		ids := make([]int, len(summaries))
		for i, s := range summaries {
			ids[i] = s.ID
		}
		logger.Printf("\nExporting %d books...\n", len(ids))
		return exporter.ExportBatch(ctx, ids, opts.workers).Err()

	default:
		logger.Printf("\nExporting %d book(s)...\n", len(opts.ids))
		return exporter.ExportBatch(ctx, opts.ids, opts.workers).Err()
	}
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	var (
		list    = fs.Bool("list", false, "List all books")
		all     = fs.Bool("all", false, "Export all books to files")
		stdout  = fs.Int("stdout", 0, "Export a single book as JSON to stdout")
		workers = fs.Int("workers", 0, "Books exported concurrently (default EXPORT_WORKERS or 1)")
		upload  = fs.Bool("upload", false, "Upload exported books to S3")
	)
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	opts := options{workers: *workers, upload: *upload}
	selected := 0
	if *list {
		opts.mode = modeList
		selected++
	}
	if *all {
		opts.mode = modeAll
		selected++
	}
	if set["stdout"] {
		opts.mode = modeStdout
		opts.ids = []int{*stdout}
		selected++
	}
	if fs.NArg() > 0 {
		if selected > 0 {
			return options{}, errors.New("book ids cannot be combined with -list, -all or -stdout")
		}
		for _, arg := range fs.Args() {
			id, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Fprintf(stderr, "Invalid book ID: %s\n", arg)
				continue
			}
			opts.ids = append(opts.ids, id)
		}
		return opts, validate(opts)
	}

	switch selected {
	case 0:
		fs.Usage()
		return options{}, flag.ErrHelp
	case 1:
		return opts, validate(opts)
	default:
		return options{}, errors.New("-list, -all and -stdout are mutually exclusive")
	}
}

func validate(opts options) error {
	if opts.workers < 0 {
		return errors.New("-workers must not be negative")
	}
	if opts.upload && (opts.mode == modeList || opts.mode == modeStdout) {
		return errors.New("-upload only applies when exporting to files")
	}
	return nil
}

func printBooks(w io.Writer, books []catalog.BookSummary) {
	fmt.Fprintf(w, "\nAvailable books (%d total):\n\n", len(books))
	fmt.Fprintf(w, "%6s  %s\n", "ID", "Name")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, b := range books {
		fmt.Fprintf(w, "%6d  %s\n", b.ID, b.Name)
	}
}

func openPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("cannot ping database (%s): %w", redactDSN(dsn), err)
	}
	return pool, nil
}
