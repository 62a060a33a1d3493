package reservations

import (
	"context"
	"database/sql"
	"errors"

	mysql "github.com/go-sql-driver/mysql"

	"LMS-backend/internal/platform/apierr"
	"LMS-backend/internal/platform/db"
)

type Store interface {
	// CreatePending inserts a pending reservation, rejecting a second
	// pending one for the same member and book. Fills r.ReservationID.
	CreatePending(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, reservationID int64) (*Reservation, error)
	// Confirm flips pending to confirmed; anything else is a conflict.
	Confirm(ctx context.Context, reservationID int64) error
	// Cancel sets cancelled from any prior status.
	Cancel(ctx context.Context, reservationID int64) error
	ListByMember(ctx context.Context, memberID int64) ([]Reservation, error)
	ListAll(ctx context.Context) ([]Reservation, error)
}

type sqlStore struct{ db *sql.DB }

func NewStore(sdb *sql.DB) Store { return &sqlStore{db: sdb} }

func (s *sqlStore) CreatePending(ctx context.Context, r *Reservation) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		// Locking the existing pending rows closes the check-then-insert
		// window between two simultaneous reserve calls.
		const qPending = `
SELECT COUNT(*) FROM reservations
WHERE member_id = ? AND book_id = ? AND status = 'pending'
FOR UPDATE
`
		var pending int
		if err := tx.QueryRowContext(ctx, qPending, r.MemberID, r.BookID).Scan(&pending); err != nil {
			return err
		}
		if pending > 0 {
			return apierr.ErrConflict("you have already reserved this book")
		}

		const qIns = `
INSERT INTO reservations (member_id, book_id, reservation_date, status)
VALUES (?, ?, ?, 'pending')
`
		res, err := tx.ExecContext(ctx, qIns, r.MemberID, r.BookID, r.ReservationDate)
		if err != nil {
			var me *mysql.MySQLError
			if errors.As(err, &me) && me.Number == 1452 {
				return apierr.ErrNotFound("book not found")
			}
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		r.ReservationID = id
		r.Status = StatusPending
		return nil
	})
}

func (s *sqlStore) GetByID(ctx context.Context, reservationID int64) (*Reservation, error) {
	const q = `
SELECT reservation_id, member_id, book_id, reservation_date, status
FROM reservations
WHERE reservation_id = ?
`
	var r Reservation
	err := s.db.QueryRowContext(ctx, q, reservationID).Scan(
		&r.ReservationID, &r.MemberID, &r.BookID, &r.ReservationDate, &r.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *sqlStore) Confirm(ctx context.Context, reservationID int64) error {
	const q = `
UPDATE reservations SET status = 'confirmed'
WHERE reservation_id = ? AND status = 'pending'
`
	res, err := s.db.ExecContext(ctx, q, reservationID)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return apierr.ErrConflict("reservation is not pending")
	}
	return nil
}

func (s *sqlStore) Cancel(ctx context.Context, reservationID int64) error {
	const q = `UPDATE reservations SET status = 'cancelled' WHERE reservation_id = ?`
	res, err := s.db.ExecContext(ctx, q, reservationID)
	if err != nil {
		return err
	}
	// Cancelling an already-cancelled reservation reports zero affected
	// rows on MySQL; that is still a success.
	_ = res
	return nil
}

const reservationColumns = `reservation_id, member_id, book_id, reservation_date, status`

func (s *sqlStore) ListByMember(ctx context.Context, memberID int64) ([]Reservation, error) {
	const q = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE member_id = ?
ORDER BY reservation_date DESC, reservation_id DESC
`
	return s.queryReservations(ctx, q, memberID)
}

func (s *sqlStore) ListAll(ctx context.Context) ([]Reservation, error) {
	const q = `
SELECT ` + reservationColumns + `
FROM reservations
ORDER BY reservation_date DESC, reservation_id DESC
`
	return s.queryReservations(ctx, q)
}

func (s *sqlStore) queryReservations(ctx context.Context, q string, args ...any) ([]Reservation, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Reservation
	for rows.Next() {
		var r Reservation
		if err := rows.Scan(&r.ReservationID, &r.MemberID, &r.BookID, &r.ReservationDate, &r.Status); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
