package staff

import (
	"context"
	"database/sql"
	"errors"

	mysql "github.com/go-sql-driver/mysql"

	"LMS-backend/internal/platform/apierr"
	"LMS-backend/internal/platform/auth"
	"LMS-backend/internal/platform/db"
)

type Store interface {
	Insert(ctx context.Context, st *Staff) error
	List(ctx context.Context) ([]Staff, error)
	// Resign deletes a staff account unless it is the last remaining
	// Administrator.
	Resign(ctx context.Context, staffID int64) error
}

type sqlStore struct{ db *sql.DB }

func NewStore(sdb *sql.DB) Store { return &sqlStore{db: sdb} }

func (s *sqlStore) Insert(ctx context.Context, st *Staff) error {
	const q = `
INSERT INTO staffs (first_name, last_name, role, contact, email, credential)
VALUES (?, ?, ?, ?, ?, ?)
`
	res, err := s.db.ExecContext(ctx, q,
		st.FirstName, st.LastName, st.Role, st.Contact, st.Email, st.Credential,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return apierr.ErrConflict("a staff member with this email already exists")
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	st.StaffID = id
	return nil
}

func (s *sqlStore) List(ctx context.Context) ([]Staff, error) {
	const q = `
SELECT staff_id, first_name, last_name, role, contact, email
FROM staffs
ORDER BY staff_id
`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Staff
	for rows.Next() {
		var st Staff
		if err := rows.Scan(&st.StaffID, &st.FirstName, &st.LastName, &st.Role, &st.Contact, &st.Email); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *sqlStore) Resign(ctx context.Context, staffID int64) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		const qRole = `SELECT role FROM staffs WHERE staff_id = ? FOR UPDATE`
		var role sql.NullString
		if err := tx.QueryRowContext(ctx, qRole, staffID).Scan(&role); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apierr.ErrNotFound("staff member not found")
			}
			return err
		}

		if role.Valid && role.String == auth.RoleAdministrator {
			// Locking all administrator rows stops two concurrent
			// resignations from both passing the count.
			const qAdmins = `SELECT COUNT(*) FROM staffs WHERE role = ? FOR UPDATE`
			var admins int
			if err := tx.QueryRowContext(ctx, qAdmins, auth.RoleAdministrator).Scan(&admins); err != nil {
				return err
			}
			if admins <= 1 {
				return apierr.ErrConflict("there must be at least one administrator in the staff team")
			}
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM staffs WHERE staff_id = ?`, staffID)
		if err != nil {
			return err
		}
		if aff, _ := res.RowsAffected(); aff == 0 {
			return apierr.ErrNotFound("staff member not found")
		}
		return nil
	})
}
