package structure

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverMySQL    = "mysql"
)

type SQLRepo struct {
	db          *sql.DB
	placeholder func(n int) string
}

// Open connects to the structure store with the given driver and verifies
// the connection.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if driver != DriverPostgres && driver != DriverMySQL {
		return nil, fmt.Errorf("unsupported structure driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func NewSQLRepo(db *sql.DB, driver string) *SQLRepo {
	r := &SQLRepo{db: db, placeholder: dollarPlaceholder}
	if driver == DriverMySQL {
		r.placeholder = questionPlaceholder
	}
	return r
}

func dollarPlaceholder(n int) string { return "$" + strconv.Itoa(n) }

func questionPlaceholder(int) string { return "?" }

func (r *SQLRepo) PagesForBook(ctx context.Context, bookID int) ([]Page, error) {
	query := "SELECT id, part, page, number FROM page WHERE book_id = " + r.placeholder(1) + " ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("query pages of book %d: %w", bookID, err)
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		var (
			p       Page
			part    sql.NullString
			printed sql.NullInt64
			number  sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &part, &printed, &number); err != nil {
			return nil, err
		}
		p.Part = part.String
		p.PrintedPage = intPtr(printed)
		p.Number = intPtr(number)
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("pages of book %d: %w", bookID, ErrNotFound)
	}
	return pages, nil
}

func (r *SQLRepo) AliasesForBook(ctx context.Context, bookID int) ([]Alias, error) {
	query := "SELECT this_id, alias_book_id, alias_page_id FROM alias WHERE book_id = " + r.placeholder(1) + " ORDER BY this_id"
	rows, err := r.db.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("query aliases of book %d: %w", bookID, err)
	}
	defer rows.Close()

	var aliases []Alias
	for rows.Next() {
		var a Alias
		if err := rows.Scan(&a.PageID, &a.DonorBookID, &a.DonorPageID); err != nil {
			return nil, err
		}
		aliases = append(aliases, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(aliases) == 0 {
		return nil, fmt.Errorf("aliases of book %d: %w", bookID, ErrNotFound)
	}
	return aliases, nil
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
