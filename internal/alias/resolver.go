// Package alias resolves the page content of a book, pulling pages that are
// aliased to other books from their donors.
package alias

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/aosman25/islam-ai/internal/index"
	"github.com/aosman25/islam-ai/internal/structure"
)

type Resolver struct {
	text      index.TextIndex
	structure structure.Repository
	logger    *log.Logger
}

func NewResolver(text index.TextIndex, store structure.Repository, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{text: text, structure: store, logger: logger}
}

// Resolve returns the content of every page of bookID that has content,
// keyed by local page id. Direct content wins over aliased content. Donor
// books are fetched once each, however many pages point at them.
//
// Only a failure to read the book's own pages is returned. Alias and donor
// failures are logged; the affected pages are then simply absent.
func (r *Resolver) Resolve(ctx context.Context, bookID int) (map[int]index.PageContent, error) {
	texts, err := r.text.ContentForBookPrefix(ctx, bookID)
	switch {
	case errors.Is(err, index.ErrNotFound):
		texts = make(map[int]index.PageContent)
	case err != nil:
		return nil, err
	}

	aliases, err := r.structure.AliasesForBook(ctx, bookID)
	if err != nil {
		if !errors.Is(err, structure.ErrNotFound) {
			r.logger.Printf("  Warning: Could not load aliases: %v", err)
		}
		return texts, nil
	}

	byDonor := make(map[int][]structure.Alias)
	for _, a := range aliases {
		byDonor[a.DonorBookID] = append(byDonor[a.DonorBookID], a)
	}
	donors := make([]int, 0, len(byDonor))
	for id := range byDonor {
		donors = append(donors, id)
	}
	sort.Ints(donors)

	for _, donorID := range donors {
		donorTexts, err := r.text.ContentForBookPrefix(ctx, donorID)
		if err != nil {
			if !errors.Is(err, index.ErrNotFound) {
				r.logger.Printf("  Warning: Could not load pages of book %d: %v", donorID, err)
			}
			continue
		}
		for _, a := range byDonor[donorID] {
			content, ok := donorTexts[a.DonorPageID]
			if !ok {
				continue
			}
			if own, ok := texts[a.PageID]; ok && !own.Empty() {
				continue
			}
			texts[a.PageID] = content
		}
	}

	r.logger.Printf("  Loaded %d aliased pages from %d book(s)", len(aliases), len(byDonor))
	return texts, nil
}
