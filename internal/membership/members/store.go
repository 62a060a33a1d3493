package members

import (
	"context"
	"database/sql"
	"errors"

	mysql "github.com/go-sql-driver/mysql"

	"LMS-backend/internal/platform/apierr"
	"LMS-backend/internal/platform/db"
)

type Store interface {
	Insert(ctx context.Context, m *Member) error
	List(ctx context.Context) ([]Member, error)
	// Remove deletes a member unless they hold an open loan or a pending
	// reservation. Their history cascades with the row.
	Remove(ctx context.Context, memberID int64) error
}

type sqlStore struct{ db *sql.DB }

func NewStore(sdb *sql.DB) Store { return &sqlStore{db: sdb} }

func (s *sqlStore) Insert(ctx context.Context, m *Member) error {
	const q = `
INSERT INTO members (first_name, last_name, address, contact, email, date_joined, credential)
VALUES (?, ?, ?, ?, ?, ?, ?)
`
	res, err := s.db.ExecContext(ctx, q,
		m.FirstName, m.LastName, m.Address, m.Contact, m.Email, m.DateJoined, m.Credential,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return apierr.ErrConflict("a member with this email already exists")
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.MemberID = id
	return nil
}

func (s *sqlStore) List(ctx context.Context) ([]Member, error) {
	const q = `
SELECT member_id, first_name, last_name, address, contact, email, date_joined
FROM members
ORDER BY member_id
`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.MemberID, &m.FirstName, &m.LastName, &m.Address, &m.Contact, &m.Email, &m.DateJoined); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *sqlStore) Remove(ctx context.Context, memberID int64) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		const qLoans = `
SELECT COUNT(*) FROM loans
WHERE member_id = ? AND return_date IS NULL
FOR UPDATE
`
		var open int
		if err := tx.QueryRowContext(ctx, qLoans, memberID).Scan(&open); err != nil {
			return err
		}

		const qReservations = `
SELECT COUNT(*) FROM reservations
WHERE member_id = ? AND status = 'pending'
FOR UPDATE
`
		var pending int
		if err := tx.QueryRowContext(ctx, qReservations, memberID).Scan(&pending); err != nil {
			return err
		}

		if open > 0 || pending > 0 {
			return apierr.ErrConflict("unable to remove the member since there are pending book loans or reservations")
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM members WHERE member_id = ?`, memberID)
		if err != nil {
			return err
		}
		if aff, _ := res.RowsAffected(); aff == 0 {
			return apierr.ErrNotFound("member not found")
		}
		return nil
	})
}
