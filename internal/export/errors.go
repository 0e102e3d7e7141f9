package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrBookNotFound     = errors.New("book not found in database")
	ErrNoStructuralData = errors.New("no pages found in book database")
)

// maxReportedPages caps the page ids listed in a CompletenessError.
const maxReportedPages = 10

// CompletenessError reports pages that resolved to neither body nor footnote
// text. No files are written for the book.
type CompletenessError struct {
	BookID  int
	Missing []int
}

func (e *CompletenessError) Error() string {
	shown := e.Missing
	if len(shown) > maxReportedPages {
		shown = shown[:maxReportedPages]
	}
	ids := make([]string, len(shown))
	for i, id := range shown {
		ids[i] = strconv.Itoa(id)
	}
	info := "[" + strings.Join(ids, ", ") + "]"
	if extra := len(e.Missing) - len(shown); extra > 0 {
		info += fmt.Sprintf("... and %d more", extra)
	}
	return fmt.Sprintf("Book %d has %d pages with no content available. Missing page IDs: %s",
		e.BookID, len(e.Missing), info)
}

// StorageError wraps a failed read from a store or index, or a failed write
// of the output.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Failure is one book that could not be exported in a batch.
type Failure struct {
	BookID  int
	Message string
}

// BatchError lists every failed book of a batch.
type BatchError struct {
	Failures []Failure
}

func (e *BatchError) Error() string {
	lines := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		lines[i] = fmt.Sprintf("Book %d: %s", f.BookID, f.Message)
	}
	return fmt.Sprintf("Export failed for %d book(s):\n%s", len(e.Failures), strings.Join(lines, "\n"))
}
