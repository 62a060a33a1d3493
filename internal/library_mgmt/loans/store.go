package loans

import (
	"context"
	"database/sql"
	"errors"
	"time"

	mysql "github.com/go-sql-driver/mysql"

	"LMS-backend/internal/platform/apierr"
	"LMS-backend/internal/platform/db"
)

type Store interface {
	// Borrow creates the loan and decrements the book's availability in one
	// transaction. Fills l.LoanID on success.
	Borrow(ctx context.Context, l *Loan) error
	// Close stamps return_date and fine on an open loan and restores the
	// book's availability. Closing a closed loan is a conflict and leaves
	// the row untouched.
	Close(ctx context.Context, loanID, bookID int64, returnedOn time.Time, fine float64) error
	GetByID(ctx context.Context, loanID int64) (*Loan, error)
	ListByMember(ctx context.Context, memberID int64) ([]Loan, error)
	ListAll(ctx context.Context) ([]Loan, error)
}

type sqlStore struct{ db *sql.DB }

func NewStore(sdb *sql.DB) Store { return &sqlStore{db: sdb} }

func (s *sqlStore) Borrow(ctx context.Context, l *Loan) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		// Lock the inventory row so concurrent borrows serialize here.
		const qLock = `SELECT availability FROM books WHERE book_id = ? FOR UPDATE`
		var availability int
		if err := tx.QueryRowContext(ctx, qLock, l.BookID).Scan(&availability); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apierr.ErrNotFound("book not found")
			}
			return err
		}
		if availability <= 0 {
			return apierr.ErrConflict("book is not available for borrowing")
		}

		const qDec = `UPDATE books SET availability = availability - 1 WHERE book_id = ?`
		if _, err := tx.ExecContext(ctx, qDec, l.BookID); err != nil {
			return err
		}

		const qIns = `
INSERT INTO loans (member_id, book_id, loan_date, due_date, fine)
VALUES (?, ?, ?, ?, 0)
`
		res, err := tx.ExecContext(ctx, qIns, l.MemberID, l.BookID, l.LoanDate, l.DueDate)
		if err != nil {
			var me *mysql.MySQLError
			if errors.As(err, &me) && me.Number == 1452 {
				return apierr.ErrNotFound("member not found")
			}
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		l.LoanID = id
		return nil
	})
}

func (s *sqlStore) Close(ctx context.Context, loanID, bookID int64, returnedOn time.Time, fine float64) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		// The null guard makes re-returning a closed loan a no-op at the
		// row level; zero rows affected means someone got here first.
		const qClose = `
UPDATE loans
SET return_date = ?, fine = ?
WHERE loan_id = ? AND return_date IS NULL
`
		res, err := tx.ExecContext(ctx, qClose, returnedOn, fine, loanID)
		if err != nil {
			return err
		}
		if aff, _ := res.RowsAffected(); aff == 0 {
			return apierr.ErrConflict("this book has already been returned")
		}

		const qInc = `UPDATE books SET availability = availability + 1 WHERE book_id = ?`
		if _, err := tx.ExecContext(ctx, qInc, bookID); err != nil {
			return err
		}
		return nil
	})
}

const loanColumns = `loan_id, member_id, book_id, loan_date, due_date, return_date, fine`

func (s *sqlStore) GetByID(ctx context.Context, loanID int64) (*Loan, error) {
	const q = `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = ?`
	var l Loan
	err := s.db.QueryRowContext(ctx, q, loanID).Scan(
		&l.LoanID, &l.MemberID, &l.BookID, &l.LoanDate, &l.DueDate, &l.ReturnDate, &l.Fine,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *sqlStore) ListByMember(ctx context.Context, memberID int64) ([]Loan, error) {
	const q = `
SELECT ` + loanColumns + `
FROM loans
WHERE member_id = ?
ORDER BY loan_date DESC, loan_id DESC
`
	return s.queryLoans(ctx, q, memberID)
}

func (s *sqlStore) ListAll(ctx context.Context) ([]Loan, error) {
	const q = `
SELECT ` + loanColumns + `
FROM loans
ORDER BY loan_date DESC, loan_id DESC
`
	return s.queryLoans(ctx, q)
}

func (s *sqlStore) queryLoans(ctx context.Context, q string, args ...any) ([]Loan, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Loan
	for rows.Next() {
		var l Loan
		if err := rows.Scan(&l.LoanID, &l.MemberID, &l.BookID, &l.LoanDate, &l.DueDate, &l.ReturnDate, &l.Fine); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
