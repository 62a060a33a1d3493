package auth

import (
	"context"
	"database/sql"
)

// fakeStore backs service and middleware tests with in-memory accounts and
// sessions.
type fakeStore struct {
	members  map[string]*MemberAccount
	staffs   map[string]*StaffAccount
	sessions map[string]*Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		members:  make(map[string]*MemberAccount),
		staffs:   make(map[string]*StaffAccount),
		sessions: make(map[string]*Session),
	}
}

func (f *fakeStore) addMember(id int64, first, last, email, password string) {
	hash, err := HashPassword(password)
	if err != nil {
		panic(err)
	}
	f.members[email] = &MemberAccount{
		MemberID: id, FirstName: first, LastName: last, Email: email, Credential: hash,
	}
}

func (f *fakeStore) addStaff(id int64, first, last, role, email, password string) {
	hash, err := HashPassword(password)
	if err != nil {
		panic(err)
	}
	f.staffs[email] = &StaffAccount{
		StaffID: id, FirstName: first, LastName: last,
		Role:  sql.NullString{String: role, Valid: role != ""},
		Email: email, Credential: hash,
	}
}

func (f *fakeStore) GetMemberByEmail(_ context.Context, email string) (*MemberAccount, error) {
	return f.members[email], nil
}

func (f *fakeStore) GetStaffByEmail(_ context.Context, email string) (*StaffAccount, error) {
	return f.staffs[email], nil
}

func (f *fakeStore) InsertSession(_ context.Context, s *Session) error {
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeStore) GetSession(_ context.Context, id string) (*Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) DeleteSession(_ context.Context, id string) (int64, error) {
	if _, ok := f.sessions[id]; !ok {
		return 0, nil
	}
	delete(f.sessions, id)
	return 1, nil
}
