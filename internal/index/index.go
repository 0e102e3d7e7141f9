// Package index reads stored page text and book metadata from the two
// inverted indexes that back the library. Both readers are held by Handles,
// which is opened once per process and closed once.
package index

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
)

// ErrNotFound is returned when no document matches the key or prefix.
var ErrNotFound = errors.New("index: not found")

// PageContent is the stored text of one page. Either field may be empty.
type PageContent struct {
	Body string
	Foot string
}

// Empty reports whether the page has neither body nor footnote text.
func (c PageContent) Empty() bool {
	return c.Body == "" && c.Foot == ""
}

type TextIndex interface {
	// ContentForKey returns the page stored under "<bookId>-<pageId>".
	ContentForKey(ctx context.Context, key string) (PageContent, error)
	// ContentForBookPrefix returns every page of a book keyed by page id.
	ContentForBookPrefix(ctx context.Context, bookID int) (map[int]PageContent, error)
}

type MetadataIndex interface {
	BetakaForBook(ctx context.Context, bookID int) (string, error)
}

// Key builds the text index key of a page.
func Key(bookID, pageID int) string {
	return strconv.Itoa(bookID) + "-" + strconv.Itoa(pageID)
}

// Prefix is the key prefix shared by every page of a book.
func Prefix(bookID int) string {
	return strconv.Itoa(bookID) + "-"
}

// pageIDFromKey returns the page id of key under prefix. Keys whose suffix is
// not an integer are reported as not ok.
func pageIDFromKey(key, prefix string) (int, bool) {
	suffix, found := strings.CutPrefix(key, prefix)
	if !found {
		return 0, false
	}
	id, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Handles owns the process-wide index readers.
type Handles struct {
	Text TextIndex
	Meta MetadataIndex

	closers []func()
	once    sync.Once
}

// NewHandles wraps already opened readers. closers run in reverse order on
// Close.
func NewHandles(text TextIndex, meta MetadataIndex, closers ...func()) *Handles {
	return &Handles{Text: text, Meta: meta, closers: closers}
}

// Close releases the readers. Calls after the first are no-ops.
func (h *Handles) Close() {
	h.once.Do(func() {
		for i := len(h.closers) - 1; i >= 0; i-- {
			h.closers[i]()
		}
	})
}
