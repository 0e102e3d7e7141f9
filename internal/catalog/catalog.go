package catalog

import (
	"errors"
)

// ErrNotFound is returned when a catalog row does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Book is a catalog entry. MetaData is the free-form blob the desktop
// library stores per book; it may carry a publication date token.
type Book struct {
	ID         int
	Name       string
	CategoryID int
	AuthorID   int
	MetaData   string
}

type Author struct {
	ID        int
	Name      string
	DeathText string
}

type Category struct {
	ID   int
	Name string
}

// BookSummary is a row of the catalog listing.
type BookSummary struct {
	ID         int
	Name       string
	CategoryID int
}

// BookInfo is a book joined with the display names of its main author and
// category. Empty names mean the referenced row is absent.
type BookInfo struct {
	Book
	AuthorName      string
	AuthorDeathText string
	CategoryName    string
}
