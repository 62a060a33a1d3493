package auth

import (
	"context"
	"database/sql"
	"errors"
)

// MemberAccount is the credential projection of a members row.
type MemberAccount struct {
	MemberID  int64
	FirstName string
	LastName  string
	Email     string
	Credential string
}

// StaffAccount is the credential projection of a staffs row.
type StaffAccount struct {
	StaffID   int64
	FirstName string
	LastName  string
	Role      sql.NullString
	Email     string
	Credential string
}

type Store interface {
	GetMemberByEmail(ctx context.Context, email string) (*MemberAccount, error)
	GetStaffByEmail(ctx context.Context, email string) (*StaffAccount, error)
	InsertSession(ctx context.Context, s *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	DeleteSession(ctx context.Context, id string) (int64, error)
}

type sqlStore struct{ db *sql.DB }

func NewStore(db *sql.DB) Store { return &sqlStore{db: db} }

func (s *sqlStore) GetMemberByEmail(ctx context.Context, email string) (*MemberAccount, error) {
	const q = `
SELECT member_id, first_name, last_name, email, credential
FROM members
WHERE email = ?
LIMIT 1
`
	var a MemberAccount
	err := s.db.QueryRowContext(ctx, q, email).Scan(
		&a.MemberID, &a.FirstName, &a.LastName, &a.Email, &a.Credential,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *sqlStore) GetStaffByEmail(ctx context.Context, email string) (*StaffAccount, error) {
	const q = `
SELECT staff_id, first_name, last_name, role, email, credential
FROM staffs
WHERE email = ?
LIMIT 1
`
	var a StaffAccount
	err := s.db.QueryRowContext(ctx, q, email).Scan(
		&a.StaffID, &a.FirstName, &a.LastName, &a.Role, &a.Email, &a.Credential,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *sqlStore) InsertSession(ctx context.Context, sess *Session) error {
	const q = `
INSERT INTO auth_sessions (session_id, member_id, staff_id, display_name, role, created_at, expires_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`
	memberID := sql.NullInt64{Int64: sess.MemberID, Valid: sess.MemberID != 0}
	staffID := sql.NullInt64{Int64: sess.StaffID, Valid: sess.StaffID != 0}
	_, err := s.db.ExecContext(ctx, q,
		sess.ID, memberID, staffID, sess.DisplayName, sess.Role, sess.CreatedAt, sess.ExpiresAt,
	)
	return err
}

func (s *sqlStore) GetSession(ctx context.Context, id string) (*Session, error) {
	const q = `
SELECT session_id, member_id, staff_id, display_name, role, created_at, expires_at
FROM auth_sessions
WHERE session_id = ?
LIMIT 1
`
	var sess Session
	var memberID, staffID sql.NullInt64
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&sess.ID, &memberID, &staffID, &sess.DisplayName, &sess.Role, &sess.CreatedAt, &sess.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sess.MemberID = memberID.Int64
	sess.StaffID = staffID.Int64
	return &sess, nil
}

func (s *sqlStore) DeleteSession(ctx context.Context, id string) (int64, error) {
	const q = `DELETE FROM auth_sessions WHERE session_id = ?`
	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
