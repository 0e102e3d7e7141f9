package structure

import (
	"context"
	"fmt"
)

// Memory is an in-memory Repository. PagesErr and AliasesErr, when set, are
// returned by the matching call.
type Memory struct {
	Pages      map[int][]Page
	Aliases    map[int][]Alias
	PagesErr   error
	AliasesErr error
}

func (m *Memory) PagesForBook(_ context.Context, bookID int) ([]Page, error) {
	if m.PagesErr != nil {
		return nil, m.PagesErr
	}
	pages := m.Pages[bookID]
	if len(pages) == 0 {
		return nil, fmt.Errorf("pages of book %d: %w", bookID, ErrNotFound)
	}
	return append([]Page(nil), pages...), nil
}

func (m *Memory) AliasesForBook(_ context.Context, bookID int) ([]Alias, error) {
	if m.AliasesErr != nil {
		return nil, m.AliasesErr
	}
	aliases := m.Aliases[bookID]
	if len(aliases) == 0 {
		return nil, fmt.Errorf("aliases of book %d: %w", bookID, ErrNotFound)
	}
	return append([]Alias(nil), aliases...), nil
}
