package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LMS-backend/internal/library_mgmt/loans"
	"LMS-backend/internal/platform/apierr"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// fakeStore mirrors the sqlStore contract: one pending reservation per
// member and book, Confirm only flips pending rows.
type fakeStore struct {
	reservations map[int64]*Reservation
	knownBooks   map[int64]bool
	nextID       int64
}

func newFakeStore(bookIDs ...int64) *fakeStore {
	f := &fakeStore{
		reservations: make(map[int64]*Reservation),
		knownBooks:   make(map[int64]bool),
	}
	for _, id := range bookIDs {
		f.knownBooks[id] = true
	}
	return f
}

func (f *fakeStore) CreatePending(_ context.Context, r *Reservation) error {
	if !f.knownBooks[r.BookID] {
		return apierr.ErrNotFound("book not found")
	}
	for _, existing := range f.reservations {
		if existing.MemberID == r.MemberID && existing.BookID == r.BookID && existing.Status == StatusPending {
			return apierr.ErrConflict("you have already reserved this book")
		}
	}
	f.nextID++
	r.ReservationID = f.nextID
	r.Status = StatusPending
	cp := *r
	f.reservations[r.ReservationID] = &cp
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) Confirm(_ context.Context, id int64) error {
	r, ok := f.reservations[id]
	if !ok || r.Status != StatusPending {
		return apierr.ErrConflict("reservation is not pending")
	}
	r.Status = StatusConfirmed
	return nil
}

func (f *fakeStore) Cancel(_ context.Context, id int64) error {
	if r, ok := f.reservations[id]; ok {
		r.Status = StatusCancelled
	}
	return nil
}

func (f *fakeStore) ListByMember(_ context.Context, memberID int64) ([]Reservation, error) {
	var out []Reservation
	for _, r := range f.reservations {
		if r.MemberID == memberID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAll(_ context.Context) ([]Reservation, error) {
	var out []Reservation
	for _, r := range f.reservations {
		out = append(out, *r)
	}
	return out, nil
}

type fakeBorrower struct {
	err      error
	calls    int
	memberID int64
	bookID   int64
}

func (b *fakeBorrower) Borrow(_ context.Context, memberID, bookID int64) (*loans.LoanResponse, error) {
	b.calls++
	b.memberID = memberID
	b.bookID = bookID
	if b.err != nil {
		return nil, b.err
	}
	return &loans.LoanResponse{LoanID: 100, MemberID: memberID, BookID: bookID}, nil
}

func apiCode(t *testing.T, err error) apierr.Code {
	t.Helper()
	var api *apierr.APIError
	require.True(t, errors.As(err, &api), "expected APIError, got %v", err)
	return api.Code
}

var day0 = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func TestReserveCreatesPending(t *testing.T) {
	store := newFakeStore(1)
	svc := NewServiceWithStore(store, &fakeBorrower{}, fixedClock{t: day0})

	res, err := svc.Reserve(context.Background(), 7, 1)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, res.Status)
	assert.Equal(t, "2025-03-01", res.ReservationDate)
}

func TestReserveDuplicatePendingRejected(t *testing.T) {
	store := newFakeStore(1)
	svc := NewServiceWithStore(store, &fakeBorrower{}, fixedClock{t: day0})

	_, err := svc.Reserve(context.Background(), 7, 1)
	require.NoError(t, err)

	_, err = svc.Reserve(context.Background(), 7, 1)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeConflict, apiCode(t, err))
	assert.Len(t, store.reservations, 1)

	// a different member may still reserve the same book
	_, err = svc.Reserve(context.Background(), 8, 1)
	require.NoError(t, err)
}

func TestReserveAgainAfterCancel(t *testing.T) {
	store := newFakeStore(1)
	svc := NewServiceWithStore(store, &fakeBorrower{}, fixedClock{t: day0})

	first, err := svc.Reserve(context.Background(), 7, 1)
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), first.ReservationID, 7, false)
	require.NoError(t, err)

	_, err = svc.Reserve(context.Background(), 7, 1)
	require.NoError(t, err, "cancelled reservation must not block a new one")
}

func TestFulfillConfirmsAndBorrows(t *testing.T) {
	store := newFakeStore(1)
	borrower := &fakeBorrower{}
	svc := NewServiceWithStore(store, borrower, fixedClock{t: day0})

	r, err := svc.Reserve(context.Background(), 7, 1)
	require.NoError(t, err)

	res, err := svc.Fulfill(context.Background(), r.ReservationID, 7, false)
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, res.Reservation.Status)
	assert.Equal(t, int64(100), res.Loan.LoanID)
	assert.Equal(t, 1, borrower.calls)
	assert.Equal(t, int64(7), borrower.memberID, "borrow must run for the reserving member")
	assert.Equal(t, int64(1), borrower.bookID)
}

// A failed borrow must propagate and leave the reservation pending.
func TestFulfillPropagatesBorrowFailure(t *testing.T) {
	store := newFakeStore(1)
	borrower := &fakeBorrower{err: apierr.ErrConflict("book is not available for borrowing")}
	svc := NewServiceWithStore(store, borrower, fixedClock{t: day0})

	r, err := svc.Reserve(context.Background(), 7, 1)
	require.NoError(t, err)

	_, err = svc.Fulfill(context.Background(), r.ReservationID, 7, false)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeConflict, apiCode(t, err))
	assert.Equal(t, StatusPending, store.reservations[r.ReservationID].Status)
}

func TestFulfillNonPendingRejected(t *testing.T) {
	store := newFakeStore(1)
	borrower := &fakeBorrower{}
	svc := NewServiceWithStore(store, borrower, fixedClock{t: day0})

	r, err := svc.Reserve(context.Background(), 7, 1)
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), r.ReservationID, 7, false)
	require.NoError(t, err)

	_, err = svc.Fulfill(context.Background(), r.ReservationID, 7, false)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeConflict, apiCode(t, err))
	assert.Equal(t, 0, borrower.calls, "no borrow attempt for a non-pending reservation")
}

func TestFulfillOwnership(t *testing.T) {
	store := newFakeStore(1)
	svc := NewServiceWithStore(store, &fakeBorrower{}, fixedClock{t: day0})

	r, err := svc.Reserve(context.Background(), 7, 1)
	require.NoError(t, err)

	_, err = svc.Fulfill(context.Background(), r.ReservationID, 8, false)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeForbidden, apiCode(t, err))

	// staff may fulfill at the desk
	_, err = svc.Fulfill(context.Background(), r.ReservationID, 0, true)
	require.NoError(t, err)
}

func TestCancelFromAnyState(t *testing.T) {
	store := newFakeStore(1)
	svc := NewServiceWithStore(store, &fakeBorrower{}, fixedClock{t: day0})

	r, err := svc.Reserve(context.Background(), 7, 1)
	require.NoError(t, err)

	_, err = svc.Fulfill(context.Background(), r.ReservationID, 7, false)
	require.NoError(t, err)

	res, err := svc.Cancel(context.Background(), r.ReservationID, 7, false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, res.Status)

	// cancelling again is a no-op success
	res, err = svc.Cancel(context.Background(), r.ReservationID, 7, false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, res.Status)
}

func TestCancelOwnership(t *testing.T) {
	store := newFakeStore(1)
	svc := NewServiceWithStore(store, &fakeBorrower{}, fixedClock{t: day0})

	r, err := svc.Reserve(context.Background(), 7, 1)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), r.ReservationID, 8, false)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeForbidden, apiCode(t, err))

	_, err = svc.Cancel(context.Background(), r.ReservationID, 0, true)
	require.NoError(t, err)
}

func TestReserveUnknownBook(t *testing.T) {
	svc := NewServiceWithStore(newFakeStore(), &fakeBorrower{}, fixedClock{t: day0})

	_, err := svc.Reserve(context.Background(), 7, 99)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeNotFound, apiCode(t, err))
}
