package catalog

import (
	"context"
	"errors"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// BookInfo loads a book with its author and category names. A missing book
// is ErrNotFound; a missing author or category only leaves its name empty.
func (s *Service) BookInfo(ctx context.Context, id int) (BookInfo, error) {
	b, err := s.repo.BookByID(ctx, id)
	if err != nil {
		return BookInfo{}, err
	}
	info := BookInfo{Book: b}

	if b.AuthorID > 0 {
		a, err := s.repo.AuthorByID(ctx, b.AuthorID)
		switch {
		case err == nil:
			info.AuthorName = a.Name
			info.AuthorDeathText = a.DeathText
		case !errors.Is(err, ErrNotFound):
			return BookInfo{}, err
		}
	}

	if b.CategoryID > 0 {
		c, err := s.repo.CategoryByID(ctx, b.CategoryID)
		switch {
		case err == nil:
			info.CategoryName = c.Name
		case !errors.Is(err, ErrNotFound):
			return BookInfo{}, err
		}
	}

	return info, nil
}

func (s *Service) ListBooks(ctx context.Context) ([]BookSummary, error) {
	return s.repo.ListBooks(ctx)
}
