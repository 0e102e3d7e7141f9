package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:generate mockgen -source=postgres_repo.go -destination=mock_repository.go -package=catalog

type Repository interface {
	BookByID(ctx context.Context, id int) (Book, error)
	AuthorByID(ctx context.Context, id int) (Author, error)
	CategoryByID(ctx context.Context, id int) (Category, error)
	ListBooks(ctx context.Context) ([]BookSummary, error)
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) BookByID(ctx context.Context, id int) (Book, error) {
	const query = `
		SELECT book_id, book_name, COALESCE(book_category, 0), COALESCE(main_author, 0), COALESCE(meta_data, '')
		FROM book
		WHERE book_id = $1
	`
	var b Book
	err := r.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.CategoryID, &b.AuthorID, &b.MetaData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, fmt.Errorf("book %d: %w", id, ErrNotFound)
		}
		return Book{}, fmt.Errorf("query book %d: %w", id, err)
	}
	return b, nil
}

func (r *PostgresRepo) AuthorByID(ctx context.Context, id int) (Author, error) {
	const query = `
		SELECT author_id, author_name, COALESCE(death_text, '')
		FROM author
		WHERE author_id = $1
	`
	var a Author
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.DeathText)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Author{}, fmt.Errorf("author %d: %w", id, ErrNotFound)
		}
		return Author{}, fmt.Errorf("query author %d: %w", id, err)
	}
	return a, nil
}

func (r *PostgresRepo) CategoryByID(ctx context.Context, id int) (Category, error) {
	const query = `
		SELECT category_id, category_name
		FROM category
		WHERE category_id = $1
	`
	var c Category
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return Category{}, fmt.Errorf("query category %d: %w", id, err)
	}
	return c, nil
}

func (r *PostgresRepo) ListBooks(ctx context.Context) ([]BookSummary, error) {
	rows, err := r.db.Query(ctx, `SELECT book_id, book_name, COALESCE(book_category, 0) FROM book ORDER BY book_id`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var out []BookSummary
	for rows.Next() {
		var b BookSummary
		if err := rows.Scan(&b.ID, &b.Name, &b.CategoryID); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
