package index

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Memory is an in-memory TextIndex and MetadataIndex. It counts prefix
// lookups per book so callers can check batching.
type Memory struct {
	Pages   map[string]PageContent
	Betaka  map[string]string
	Err     error
	// BookErr fails the prefix lookup of a single book.
	BookErr map[int]error

	mu            sync.Mutex
	prefixLookups map[int]int
}

func NewMemory() *Memory {
	return &Memory{
		Pages:  make(map[string]PageContent),
		Betaka: make(map[string]string),
	}
}

// Put stores the content of a page.
func (m *Memory) Put(bookID, pageID int, body, foot string) {
	m.Pages[Key(bookID, pageID)] = PageContent{Body: body, Foot: foot}
}

func (m *Memory) ContentForKey(_ context.Context, key string) (PageContent, error) {
	if m.Err != nil {
		return PageContent{}, m.Err
	}
	c, ok := m.Pages[key]
	if !ok {
		return PageContent{}, fmt.Errorf("page %s: %w", key, ErrNotFound)
	}
	return c, nil
}

func (m *Memory) ContentForBookPrefix(_ context.Context, bookID int) (map[int]PageContent, error) {
	m.mu.Lock()
	if m.prefixLookups == nil {
		m.prefixLookups = make(map[int]int)
	}
	m.prefixLookups[bookID]++
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if err := m.BookErr[bookID]; err != nil {
		return nil, err
	}
	prefix := Prefix(bookID)
	out := make(map[int]PageContent)
	for key, c := range m.Pages {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if pageID, ok := pageIDFromKey(key, prefix); ok {
			out[pageID] = c
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("pages of book %d: %w", bookID, ErrNotFound)
	}
	return out, nil
}

func (m *Memory) BetakaForBook(_ context.Context, bookID int) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	b, ok := m.Betaka[strconv.Itoa(bookID)]
	if !ok {
		return "", fmt.Errorf("betaka of book %d: %w", bookID, ErrNotFound)
	}
	return b, nil
}

// PrefixLookups returns how many prefix lookups were made for bookID.
func (m *Memory) PrefixLookups(bookID int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefixLookups[bookID]
}
