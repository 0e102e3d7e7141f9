// Package testutil holds an in-memory library shared by tests that drive
// whole exports.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/aosman25/islam-ai/internal/catalog"
	"github.com/aosman25/islam-ai/internal/index"
	"github.com/aosman25/islam-ai/internal/structure"
)

// Library is an in-memory catalog, structure store and index pair.
type Library struct {
	Books map[int]catalog.BookInfo
	Store *structure.Memory
	Text  *index.Memory
}

func NewLibrary() *Library {
	return &Library{
		Books: make(map[int]catalog.BookInfo),
		Store: &structure.Memory{
			Pages:   make(map[int][]structure.Page),
			Aliases: make(map[int][]structure.Alias),
		},
		Text: index.NewMemory(),
	}
}

// BookInfo serves the catalog lookups of an exporter.
func (l *Library) BookInfo(_ context.Context, id int) (catalog.BookInfo, error) {
	info, ok := l.Books[id]
	if !ok {
		return catalog.BookInfo{}, fmt.Errorf("book %d: %w", id, catalog.ErrNotFound)
	}
	return info, nil
}

// AddBook registers a book and its page structure. Page text is added
// separately through Text.
func (l *Library) AddBook(book catalog.Book, pages ...structure.Page) {
	l.Books[book.ID] = catalog.BookInfo{Book: book}
	l.Store.Pages[book.ID] = append(l.Store.Pages[book.ID], pages...)
}

// Handles wraps the in-memory index as both readers.
func (l *Library) Handles() *index.Handles {
	return index.NewHandles(l.Text, l.Text)
}

// DiscardLogger drops everything written to it.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
