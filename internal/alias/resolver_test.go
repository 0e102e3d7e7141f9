package alias

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/aosman25/islam-ai/internal/index"
	"github.com/aosman25/islam-ai/internal/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("direct content only", func(t *testing.T) {
		text := index.NewMemory()
		text.Put(1, 1, "body", "")
		text.Put(1, 2, "", "foot")

		r := NewResolver(text, &structure.Memory{}, discardLogger())
		got, err := r.Resolve(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, map[int]index.PageContent{
			1: {Body: "body"},
			2: {Foot: "foot"},
		}, got)
	})

	t.Run("one lookup per donor book", func(t *testing.T) {
		text := index.NewMemory()
		text.Put(1, 1, "own", "")
		text.Put(20, 5, "donor twenty five", "")
		text.Put(20, 6, "donor twenty six", "note")
		text.Put(30, 9, "donor thirty nine", "")
		store := &structure.Memory{Aliases: map[int][]structure.Alias{
			1: {
				{PageID: 2, DonorBookID: 20, DonorPageID: 5},
				{PageID: 3, DonorBookID: 20, DonorPageID: 6},
				{PageID: 4, DonorBookID: 30, DonorPageID: 9},
			},
		}}

		r := NewResolver(text, store, discardLogger())
		got, err := r.Resolve(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, map[int]index.PageContent{
			1: {Body: "own"},
			2: {Body: "donor twenty five"},
			3: {Body: "donor twenty six", Foot: "note"},
			4: {Body: "donor thirty nine"},
		}, got)
		assert.Equal(t, 1, text.PrefixLookups(20))
		assert.Equal(t, 1, text.PrefixLookups(30))
	})

	t.Run("direct content wins", func(t *testing.T) {
		text := index.NewMemory()
		text.Put(1, 2, "direct", "")
		text.Put(20, 5, "aliased", "")
		store := &structure.Memory{Aliases: map[int][]structure.Alias{
			1: {{PageID: 2, DonorBookID: 20, DonorPageID: 5}},
		}}

		got, err := NewResolver(text, store, discardLogger()).Resolve(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "direct", got[2].Body)
	})

	t.Run("empty direct row is filled by its alias", func(t *testing.T) {
		text := index.NewMemory()
		text.Put(1, 1, "own", "")
		text.Put(1, 2, "", "")
		text.Put(20, 5, "donor", "")
		store := &structure.Memory{Aliases: map[int][]structure.Alias{
			1: {{PageID: 2, DonorBookID: 20, DonorPageID: 5}},
		}}

		got, err := NewResolver(text, store, discardLogger()).Resolve(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, index.PageContent{Body: "donor"}, got[2])
	})

	t.Run("donor read failure is a warning", func(t *testing.T) {
		text := index.NewMemory()
		text.Put(1, 1, "own", "")
		text.Put(20, 5, "unreachable", "")
		text.Put(30, 9, "donor thirty nine", "")
		text.BookErr = map[int]error{20: errors.New("segment missing")}
		store := &structure.Memory{Aliases: map[int][]structure.Alias{
			1: {
				{PageID: 2, DonorBookID: 20, DonorPageID: 5},
				{PageID: 3, DonorBookID: 30, DonorPageID: 9},
			},
		}}
		var logs bytes.Buffer

		got, err := NewResolver(text, store, log.New(&logs, "", 0)).Resolve(ctx, 1)

		require.NoError(t, err)
		_, ok := got[2]
		assert.False(t, ok)
		assert.Equal(t, "donor thirty nine", got[3].Body)
		assert.Contains(t, logs.String(), "Warning: Could not load pages of book 20: segment missing")
	})

	t.Run("fully aliased book", func(t *testing.T) {
		text := index.NewMemory()
		text.Put(20, 5, "aliased", "")
		store := &structure.Memory{Aliases: map[int][]structure.Alias{
			1: {{PageID: 1, DonorBookID: 20, DonorPageID: 5}},
		}}

		got, err := NewResolver(text, store, discardLogger()).Resolve(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, map[int]index.PageContent{1: {Body: "aliased"}}, got)
	})

	t.Run("missing donor page stays absent", func(t *testing.T) {
		text := index.NewMemory()
		text.Put(1, 1, "own", "")
		store := &structure.Memory{Aliases: map[int][]structure.Alias{
			1: {{PageID: 2, DonorBookID: 20, DonorPageID: 5}},
		}}

		got, err := NewResolver(text, store, discardLogger()).Resolve(ctx, 1)

		require.NoError(t, err)
		_, ok := got[2]
		assert.False(t, ok)
	})

	t.Run("alias failure is a warning", func(t *testing.T) {
		text := index.NewMemory()
		text.Put(1, 1, "own", "")
		store := &structure.Memory{AliasesErr: errors.New("disk I/O error")}
		var logs bytes.Buffer

		got, err := NewResolver(text, store, log.New(&logs, "", 0)).Resolve(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, map[int]index.PageContent{1: {Body: "own"}}, got)
		assert.Contains(t, logs.String(), "Warning: Could not load aliases: disk I/O error")
	})

	t.Run("direct read failure is fatal", func(t *testing.T) {
		text := index.NewMemory()
		text.Err = errors.New("index corrupted")

		_, err := NewResolver(text, &structure.Memory{}, discardLogger()).Resolve(ctx, 1)

		assert.EqualError(t, err, "index corrupted")
	})
}
