package books

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"LMS-backend/internal/platform/apierr"
)

type Service struct {
	store Store
}

func NewService(sdb *sql.DB) *Service { return &Service{store: NewStore(sdb)} }

// NewServiceWithStore is used by tests to plug in a fake store.
func NewServiceWithStore(store Store) *Service { return &Service{store: store} }

func (s *Service) Create(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	b, err := bookFromInput(0, req.Title, req.Author, req.Publisher, req.Year, req.ISBN, req.Genre, req.Availability)
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, b); err != nil {
		return nil, err
	}
	resp := buildBookResponse(b)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, bookID int64, req UpdateBookRequest) (*BookResponse, error) {
	existing, err := s.store.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apierr.ErrNotFound("book not found")
	}

	b, err := bookFromInput(bookID, req.Title, req.Author, req.Publisher, req.Year, req.ISBN, req.Genre, req.Availability)
	if err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, b); err != nil {
		return nil, err
	}
	resp := buildBookResponse(b)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, bookID int64) error {
	return s.store.Delete(ctx, bookID)
}

func (s *Service) Get(ctx context.Context, bookID int64) (*BookResponse, error) {
	b, err := s.store.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apierr.ErrNotFound("book not found")
	}
	resp := buildBookResponse(b)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, term string, p Page) ([]BookResponse, int, error) {
	if p.Limit <= 0 || p.Limit > 200 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	items, total, err := s.store.Search(ctx, term, p)
	if err != nil {
		return nil, 0, err
	}
	out := make([]BookResponse, 0, len(items))
	for i := range items {
		out = append(out, buildBookResponse(&items[i]))
	}
	return out, total, nil
}

func bookFromInput(bookID int64, title, author string, publisher, year *string, isbn string, genre *string, availability int) (*Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	isbn = strings.TrimSpace(isbn)

	if title == "" || author == "" {
		return nil, apierr.ErrInvalid("title and author are required")
	}
	if !isNumeric(isbn) {
		return nil, apierr.ErrInvalid("invalid ISBN")
	}
	if availability < 0 {
		return nil, apierr.ErrInvalid("availability must be >= 0")
	}

	b := &Book{
		BookID:       bookID,
		Title:        title,
		Author:       author,
		ISBN:         isbn,
		Availability: availability,
	}
	if publisher != nil && *publisher != "" {
		b.Publisher = sql.NullString{String: *publisher, Valid: true}
	}
	if year != nil && *year != "" {
		y, err := strconv.Atoi(strings.TrimSpace(*year))
		if err != nil {
			return nil, apierr.ErrInvalid("invalid year of publish")
		}
		b.Year = sql.NullInt64{Int64: int64(y), Valid: true}
	}
	if genre != nil && *genre != "" {
		b.Genre = sql.NullString{String: *genre, Valid: true}
	}
	return b, nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
