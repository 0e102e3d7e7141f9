package index

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresText struct {
	db *pgxpool.Pool
}

func NewPostgresText(db *pgxpool.Pool) *PostgresText {
	return &PostgresText{db: db}
}

func (r *PostgresText) ContentForKey(ctx context.Context, key string) (PageContent, error) {
	const query = `SELECT COALESCE(body, ''), COALESCE(foot, '') FROM page_index WHERE id = $1`
	var c PageContent
	err := r.db.QueryRow(ctx, query, key).Scan(&c.Body, &c.Foot)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PageContent{}, fmt.Errorf("page %s: %w", key, ErrNotFound)
		}
		return PageContent{}, fmt.Errorf("query page %s: %w", key, err)
	}
	return c, nil
}

func (r *PostgresText) ContentForBookPrefix(ctx context.Context, bookID int) (map[int]PageContent, error) {
	const query = `SELECT id, COALESCE(body, ''), COALESCE(foot, '') FROM page_index WHERE id LIKE $1`
	prefix := Prefix(bookID)
	rows, err := r.db.Query(ctx, query, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("query pages of book %d: %w", bookID, err)
	}
	defer rows.Close()

	out := make(map[int]PageContent)
	for rows.Next() {
		var (
			key string
			c   PageContent
		)
		if err := rows.Scan(&key, &c.Body, &c.Foot); err != nil {
			return nil, err
		}
		pageID, ok := pageIDFromKey(key, prefix)
		if !ok {
			continue
		}
		out[pageID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("pages of book %d: %w", bookID, ErrNotFound)
	}
	return out, nil
}

type PostgresMeta struct {
	db *pgxpool.Pool
}

func NewPostgresMeta(db *pgxpool.Pool) *PostgresMeta {
	return &PostgresMeta{db: db}
}

func (r *PostgresMeta) BetakaForBook(ctx context.Context, bookID int) (string, error) {
	const query = `SELECT COALESCE(body_store, '') FROM book_index WHERE id = $1`
	var betaka string
	err := r.db.QueryRow(ctx, query, strconv.Itoa(bookID)).Scan(&betaka)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("betaka of book %d: %w", bookID, ErrNotFound)
		}
		return "", fmt.Errorf("query betaka of book %d: %w", bookID, err)
	}
	return betaka, nil
}

// Open connects to the text and metadata indexes. The returned Handles closes
// both pools.
func Open(ctx context.Context, textDSN, metaDSN string) (*Handles, error) {
	textPool, err := connect(ctx, textDSN)
	if err != nil {
		return nil, fmt.Errorf("open text index: %w", err)
	}
	metaPool, err := connect(ctx, metaDSN)
	if err != nil {
		textPool.Close()
		return nil, fmt.Errorf("open metadata index: %w", err)
	}
	return NewHandles(NewPostgresText(textPool), NewPostgresMeta(metaPool), textPool.Close, metaPool.Close), nil
}

func connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
