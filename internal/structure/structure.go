// Package structure reads per-book page ordering and cross-book aliases.
package structure

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a book has no rows of the requested kind.
var ErrNotFound = errors.New("structure: not found")

// Page is one page of a book in document order. Part is empty when the page
// belongs to no named part. PrintedPage and Number are nil when unset.
type Page struct {
	ID          int
	Part        string
	PrintedPage *int
	Number      *int
}

// Alias points a local page at the page of a donor book that owns its content.
type Alias struct {
	PageID      int
	DonorBookID int
	DonorPageID int
}

type Repository interface {
	// PagesForBook returns pages in store order. Callers must not re-sort.
	PagesForBook(ctx context.Context, bookID int) ([]Page, error)
	AliasesForBook(ctx context.Context, bookID int) ([]Alias, error)
}
