package reservations

import (
	"context"
	"database/sql"
	"time"

	"LMS-backend/internal/library_mgmt/loans"
	"LMS-backend/internal/platform/apierr"
)

type Clock interface{ Now() time.Time }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// Borrower opens a loan on behalf of a member. Satisfied by loans.Service.
type Borrower interface {
	Borrow(ctx context.Context, memberID, bookID int64) (*loans.LoanResponse, error)
}

type Service struct {
	store    Store
	borrower Borrower
	clock    Clock
}

func NewService(sdb *sql.DB, borrower Borrower) *Service {
	return &Service{store: NewStore(sdb), borrower: borrower, clock: realClock{}}
}

// NewServiceWithStore is used by tests to plug in fakes.
func NewServiceWithStore(store Store, borrower Borrower, clock Clock) *Service {
	return &Service{store: store, borrower: borrower, clock: clock}
}

func (s *Service) Reserve(ctx context.Context, memberID, bookID int64) (*ReservationResponse, error) {
	if memberID <= 0 {
		return nil, apierr.ErrForbidden("only members can reserve books")
	}
	if bookID <= 0 {
		return nil, apierr.ErrInvalid("book_id must be > 0")
	}

	r := &Reservation{
		MemberID:        memberID,
		BookID:          bookID,
		ReservationDate: loans.DateOnly(s.clock.Now()),
	}
	if err := s.store.CreatePending(ctx, r); err != nil {
		return nil, err
	}

	resp := buildReservationResponse(r)
	return &resp, nil
}

// Fulfill borrows the reserved book for the reserving member and confirms
// the reservation. A failed borrow leaves the reservation pending and
// propagates the failure.
func (s *Service) Fulfill(ctx context.Context, reservationID, actorMemberID int64, actorIsStaff bool) (*FulfillResponse, error) {
	r, err := s.store.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apierr.ErrNotFound("reservation not found")
	}
	if !actorIsStaff && r.MemberID != actorMemberID {
		return nil, apierr.ErrForbidden("reservation belongs to another member")
	}
	if r.Status != StatusPending {
		return nil, apierr.ErrConflict("reservation is not pending")
	}

	loan, err := s.borrower.Borrow(ctx, r.MemberID, r.BookID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Confirm(ctx, r.ReservationID); err != nil {
		return nil, err
	}
	r.Status = StatusConfirmed

	return &FulfillResponse{Reservation: buildReservationResponse(r), Loan: *loan}, nil
}

func (s *Service) Cancel(ctx context.Context, reservationID, actorMemberID int64, actorIsStaff bool) (*ReservationResponse, error) {
	r, err := s.store.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apierr.ErrNotFound("reservation not found")
	}
	if !actorIsStaff && r.MemberID != actorMemberID {
		return nil, apierr.ErrForbidden("reservation belongs to another member")
	}

	if err := s.store.Cancel(ctx, r.ReservationID); err != nil {
		return nil, err
	}
	r.Status = StatusCancelled

	resp := buildReservationResponse(r)
	return &resp, nil
}

func (s *Service) ListMine(ctx context.Context, memberID int64) ([]ReservationResponse, error) {
	if memberID <= 0 {
		return nil, apierr.ErrForbidden("only members have personal reservations")
	}
	items, err := s.store.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return buildReservationResponses(items), nil
}

func (s *Service) ListAll(ctx context.Context) ([]ReservationResponse, error) {
	items, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildReservationResponses(items), nil
}

func buildReservationResponses(items []Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(items))
	for i := range items {
		out = append(out, buildReservationResponse(&items[i]))
	}
	return out
}
