package members

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LMS-backend/internal/platform/apierr"
	"LMS-backend/internal/platform/auth"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// fakeStore mirrors the sqlStore contract: unique email, removal blocked by
// open loans or pending reservations.
type fakeStore struct {
	members             map[int64]*Member
	openLoans           map[int64]int
	pendingReservations map[int64]int
	nextID              int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		members:             make(map[int64]*Member),
		openLoans:           make(map[int64]int),
		pendingReservations: make(map[int64]int),
	}
}

func (f *fakeStore) Insert(_ context.Context, m *Member) error {
	for _, existing := range f.members {
		if existing.Email == m.Email {
			return apierr.ErrConflict("a member with this email already exists")
		}
	}
	f.nextID++
	m.MemberID = f.nextID
	cp := *m
	f.members[m.MemberID] = &cp
	return nil
}

func (f *fakeStore) List(_ context.Context) ([]Member, error) {
	var out []Member
	for _, m := range f.members {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeStore) Remove(_ context.Context, memberID int64) error {
	if f.openLoans[memberID] > 0 || f.pendingReservations[memberID] > 0 {
		return apierr.ErrConflict("unable to remove the member since there are pending book loans or reservations")
	}
	if _, ok := f.members[memberID]; !ok {
		return apierr.ErrNotFound("member not found")
	}
	delete(f.members, memberID)
	return nil
}

func apiCode(t *testing.T, err error) apierr.Code {
	t.Helper()
	var api *apierr.APIError
	require.True(t, errors.As(err, &api), "expected APIError, got %v", err)
	return api.Code
}

func strPtr(s string) *string { return &s }

var day0 = time.Date(2025, 3, 1, 16, 45, 0, 0, time.UTC)

func validRegister() RegisterMemberRequest {
	return RegisterMemberRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "s3cret-pw",
		Address:   strPtr("12 Analytical Way"),
		Contact:   strPtr("555-0101"),
	}
}

func TestRegisterMember(t *testing.T) {
	store := newFakeStore()
	svc := NewServiceWithStore(store, fixedClock{t: day0})

	res, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	assert.NotZero(t, res.MemberID)
	assert.Equal(t, "2025-03-01", res.DateJoined)

	stored := store.members[res.MemberID]
	assert.NotEqual(t, "s3cret-pw", stored.Credential, "credential must be hashed")
	assert.True(t, auth.CheckPassword("s3cret-pw", stored.Credential))
}

func TestRegisterNormalizesEmail(t *testing.T) {
	store := newFakeStore()
	svc := NewServiceWithStore(store, fixedClock{t: day0})

	req := validRegister()
	req.Email = "  Ada@Example.COM "
	res, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", res.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := NewServiceWithStore(store, fixedClock{t: day0})

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	req := validRegister()
	req.FirstName = "Another"
	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeConflict, apiCode(t, err))
	assert.Len(t, store.members, 1, "failed registration must not create a record")
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterMemberRequest)
	}{
		{name: "blank_first_name", mutate: func(r *RegisterMemberRequest) { r.FirstName = " " }},
		{name: "bad_email", mutate: func(r *RegisterMemberRequest) { r.Email = "not-an-email" }},
		{name: "empty_password", mutate: func(r *RegisterMemberRequest) { r.Password = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewServiceWithStore(newFakeStore(), fixedClock{t: day0})

			req := validRegister()
			tc.mutate(&req)

			_, err := svc.Register(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, apierr.CodeInvalidArgument, apiCode(t, err))
		})
	}
}

func TestRemoveBlockedByOpenLoan(t *testing.T) {
	store := newFakeStore()
	svc := NewServiceWithStore(store, fixedClock{t: day0})

	res, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	store.openLoans[res.MemberID] = 1
	err = svc.Remove(context.Background(), res.MemberID)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeConflict, apiCode(t, err))

	store.openLoans[res.MemberID] = 0
	store.pendingReservations[res.MemberID] = 1
	err = svc.Remove(context.Background(), res.MemberID)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeConflict, apiCode(t, err))

	store.pendingReservations[res.MemberID] = 0
	require.NoError(t, svc.Remove(context.Background(), res.MemberID))
	assert.Empty(t, store.members)
}

func TestRemoveUnknownMember(t *testing.T) {
	svc := NewServiceWithStore(newFakeStore(), fixedClock{t: day0})

	err := svc.Remove(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeNotFound, apiCode(t, err))
}
