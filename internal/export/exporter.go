// Package export drives the conversion of books into legacy HTML documents:
// one book at a time, a batch of books, or a single book serialized for
// another process.
package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/aosman25/islam-ai/internal/alias"
	"github.com/aosman25/islam-ai/internal/catalog"
	"github.com/aosman25/islam-ai/internal/document"
	"github.com/aosman25/islam-ai/internal/index"
	"github.com/aosman25/islam-ai/internal/structure"
)

// Catalog is the part of the catalog service the exporter reads.
type Catalog interface {
	BookInfo(ctx context.Context, id int) (catalog.BookInfo, error)
}

// Sink receives the documents of every book written to disk.
type Sink interface {
	Put(ctx context.Context, bookID int, docs []Document) error
}

// Document is one rendered part.
type Document struct {
	Name    string
	Content string
}

// Book is the rendered form of one book.
type Book struct {
	Info      catalog.BookInfo
	Documents []Document
}

type Config struct {
	// Root is the directory that receives one sub-directory per book.
	Root   string
	Logger *log.Logger
	// Sink, when set, is handed every book after it is written.
	Sink Sink
}

type Exporter struct {
	catalog   Catalog
	structure structure.Repository
	indexes   *index.Handles
	resolver  *alias.Resolver
	root      string
	sink      Sink
	logger    *log.Logger
}

// New builds an exporter. The index handles stay owned by the caller, which
// must close them once every export has returned.
func New(cat Catalog, store structure.Repository, indexes *index.Handles, cfg Config) *Exporter {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Exporter{
		catalog:   cat,
		structure: store,
		indexes:   indexes,
		resolver:  alias.NewResolver(indexes.Text, store, logger),
		root:      cfg.Root,
		sink:      cfg.Sink,
		logger:    logger,
	}
}

// RenderBook renders every part of a book in memory. Nothing is rendered
// unless every page has content.
func (e *Exporter) RenderBook(ctx context.Context, id int) (*Book, error) {
	return e.render(ctx, id, "")
}

func (e *Exporter) render(ctx context.Context, id int, progress string) (*Book, error) {
	info, err := e.catalog.BookInfo(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, &StorageError{Op: "load book", Err: err}
	}
	e.logger.Printf("%sExporting: %s (ID: %d)", progress, info.Name, id)

	betaka, err := e.betaka(ctx, id)
	if err != nil {
		return nil, err
	}

	pages, err := e.structure.PagesForBook(ctx, id)
	if err != nil {
		if errors.Is(err, structure.ErrNotFound) {
			return nil, ErrNoStructuralData
		}
		return nil, &StorageError{Op: "load pages", Err: err}
	}
	e.logger.Printf("  Loading %d pages from index...", len(pages))

	texts, err := e.resolver.Resolve(ctx, id)
	if err != nil {
		return nil, &StorageError{Op: "load page text", Err: err}
	}
	e.logger.Printf("  Found %d pages with content", len(texts))

	var missing []int
	for _, p := range pages {
		if texts[p.ID].Empty() {
			missing = append(missing, p.ID)
		}
	}
	if len(missing) > 0 {
		return nil, &CompletenessError{BookID: id, Missing: missing}
	}

	asm := document.NewAssembler(info, betaka)
	parts := groupParts(pages)
	docs := make([]Document, 0, len(parts))
	for i, part := range parts {
		content, err := asm.Part(part.label, part.pages, texts)
		if err != nil {
			return nil, fmt.Errorf("render part %q: %w", part.label, err)
		}
		docs = append(docs, Document{Name: fmt.Sprintf("%03d.htm", i+1), Content: content})
	}
	return &Book{Info: info, Documents: docs}, nil
}

// betaka returns nil when the book has no metadata page. Read failures are
// not fatal.
func (e *Exporter) betaka(ctx context.Context, id int) (*string, error) {
	b, err := e.indexes.Meta.BetakaForBook(ctx, id)
	switch {
	case err == nil:
		return &b, nil
	case errors.Is(err, index.ErrNotFound):
		return nil, nil
	default:
		e.logger.Printf("  Warning: Could not load betaka: %v", err)
		return nil, nil
	}
}

type part struct {
	label string
	pages []structure.Page
}

// groupParts groups pages by part label in order of first appearance.
func groupParts(pages []structure.Page) []part {
	var parts []part
	pos := make(map[string]int)
	for _, p := range pages {
		i, ok := pos[p.Part]
		if !ok {
			i = len(parts)
			pos[p.Part] = i
			parts = append(parts, part{label: p.Part})
		}
		parts[i].pages = append(parts[i].pages, p)
	}
	return parts
}

// ExportBook renders a book and writes it under the export root, returning
// the book directory. The directory is replaced as a whole, so a failed
// export never leaves a partial book behind.
func (e *Exporter) ExportBook(ctx context.Context, id int) (string, error) {
	return e.exportBook(ctx, id, "", "")
}

// exportBook writes the book under dirName, or under its SafeName when
// dirName is empty.
func (e *Exporter) exportBook(ctx context.Context, id int, progress, dirName string) (string, error) {
	book, err := e.render(ctx, id, progress)
	if err != nil {
		return "", err
	}

	if dirName == "" {
		dirName = SafeName(book.Info.Name, id)
	}
	dir := filepath.Join(e.root, dirName)
	if err := writeBook(e.root, dir, book.Documents); err != nil {
		return "", &StorageError{Op: "write book", Err: err}
	}
	e.logger.Printf("  Exported to: %s", dir)

	if e.sink != nil {
		if err := e.sink.Put(ctx, id, book.Documents); err != nil {
			return "", &StorageError{Op: "upload book", Err: err}
		}
	}
	return dir, nil
}

func writeBook(root, dir string, docs []Document) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}
	tmp, err := os.MkdirTemp(root, ".export-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	for _, d := range docs {
		if err := os.WriteFile(filepath.Join(tmp, d.Name), []byte(d.Content), 0o644); err != nil {
			return err
		}
	}
	if err := os.Chmod(tmp, 0o755); err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.Rename(tmp, dir)
}

const maxNameRunes = 200

var (
	illegalNameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	spaceRuns        = regexp.MustCompile(`\s+`)
)

// SafeName turns a book name into a directory name: characters illegal in
// file names are dropped, whitespace runs collapse to one space, and the
// result is capped at 200 characters. An empty or dot-only result falls back
// to the id.
func SafeName(name string, id int) string {
	safe := illegalNameChars.ReplaceAllString(name, "")
	safe = spaceRuns.ReplaceAllString(safe, " ")
	safe = strings.TrimSpace(safe)
	if r := []rune(safe); len(r) > maxNameRunes {
		safe = string(r[:maxNameRunes])
	}
	if safe == "" || safe == "." || safe == ".." {
		return strconv.Itoa(id)
	}
	return safe
}
