package books

import (
	"context"
	"database/sql"
	"errors"

	mysql "github.com/go-sql-driver/mysql"

	"LMS-backend/internal/platform/apierr"
	"LMS-backend/internal/platform/db"
)

type Store interface {
	Insert(ctx context.Context, b *Book) error
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, bookID int64) error
	GetByID(ctx context.Context, bookID int64) (*Book, error)
	Search(ctx context.Context, term string, p Page) ([]Book, int, error)
}

type sqlStore struct{ db *sql.DB }

func NewStore(sdb *sql.DB) Store { return &sqlStore{db: sdb} }

func (s *sqlStore) Insert(ctx context.Context, b *Book) error {
	const q = `
INSERT INTO books (title, author, publisher, year, isbn, availability, genre)
VALUES (?, ?, ?, ?, ?, ?, ?)
`
	res, err := s.db.ExecContext(ctx, q,
		b.Title, b.Author, b.Publisher, b.Year, b.ISBN, b.Availability, b.Genre,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return apierr.ErrConflict("a book with this ISBN already exists")
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.BookID = id
	return nil
}

func (s *sqlStore) Update(ctx context.Context, b *Book) error {
	const q = `
UPDATE books
SET title = ?, author = ?, publisher = ?, year = ?, isbn = ?, availability = ?, genre = ?
WHERE book_id = ?
`
	_, err := s.db.ExecContext(ctx, q,
		b.Title, b.Author, b.Publisher, b.Year, b.ISBN, b.Availability, b.Genre, b.BookID,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return apierr.ErrConflict("a book with this ISBN already exists")
		}
		return err
	}
	return nil
}

// Delete removes a book unless any loan on it is still open. The count and
// the delete run in one transaction so a concurrent borrow cannot slip in
// between.
func (s *sqlStore) Delete(ctx context.Context, bookID int64) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		const qOpen = `
SELECT COUNT(*) FROM loans
WHERE book_id = ? AND return_date IS NULL
FOR UPDATE
`
		var open int
		if err := tx.QueryRowContext(ctx, qOpen, bookID).Scan(&open); err != nil {
			return err
		}
		if open > 0 {
			return apierr.ErrConflict("unable to remove the book since there are pending book loans")
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM books WHERE book_id = ?`, bookID)
		if err != nil {
			return err
		}
		if aff, _ := res.RowsAffected(); aff == 0 {
			return apierr.ErrNotFound("book not found")
		}
		return nil
	})
}

func (s *sqlStore) GetByID(ctx context.Context, bookID int64) (*Book, error) {
	const q = `
SELECT book_id, title, author, publisher, year, isbn, availability, genre
FROM books
WHERE book_id = ?
`
	var b Book
	err := s.db.QueryRowContext(ctx, q, bookID).Scan(
		&b.BookID, &b.Title, &b.Author, &b.Publisher, &b.Year, &b.ISBN, &b.Availability, &b.Genre,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *sqlStore) Search(ctx context.Context, term string, p Page) ([]Book, int, error) {
	where := ``
	args := []any{}
	if term != "" {
		where = `WHERE title LIKE ? OR author LIKE ? OR isbn LIKE ?`
		pat := "%" + term + "%"
		args = append(args, pat, pat, pat)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `
SELECT book_id, title, author, publisher, year, isbn, availability, genre
FROM books ` + where + `
ORDER BY title, book_id
LIMIT ? OFFSET ?
`
	rows, err := s.db.QueryContext(ctx, q, append(args, p.Limit, p.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.BookID, &b.Title, &b.Author, &b.Publisher, &b.Year, &b.ISBN, &b.Availability, &b.Genre); err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}
