package loans

import (
	"context"
	"database/sql"
	"time"

	"LMS-backend/internal/platform/apierr"
)

type Clock interface{ Now() time.Time }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type Service struct {
	store Store
	clock Clock
}

func NewService(sdb *sql.DB) *Service {
	return &Service{store: NewStore(sdb), clock: realClock{}}
}

// NewServiceWithStore is used by tests to plug in a fake store and clock.
func NewServiceWithStore(store Store, clock Clock) *Service {
	return &Service{store: store, clock: clock}
}

// Borrow opens a loan for bookID on behalf of memberID. Due date is the loan
// date plus the fixed loan period.
func (s *Service) Borrow(ctx context.Context, memberID, bookID int64) (*LoanResponse, error) {
	if memberID <= 0 {
		return nil, apierr.ErrForbidden("only members can borrow books")
	}
	if bookID <= 0 {
		return nil, apierr.ErrInvalid("book_id must be > 0")
	}

	today := DateOnly(s.clock.Now())
	l := &Loan{
		MemberID: memberID,
		BookID:   bookID,
		LoanDate: today,
		DueDate:  today.AddDate(0, 0, LoanPeriodDays),
	}
	if err := s.store.Borrow(ctx, l); err != nil {
		return nil, err
	}

	resp := buildLoanResponse(l)
	return &resp, nil
}

// Return closes an open loan, charging the overdue fine when past due. Only
// the borrowing member or staff may return a loan.
func (s *Service) Return(ctx context.Context, loanID, actorMemberID int64, actorIsStaff bool) (*LoanResponse, error) {
	l, err := s.store.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, apierr.ErrNotFound("loan not found")
	}
	if !actorIsStaff && l.MemberID != actorMemberID {
		return nil, apierr.ErrForbidden("loan belongs to another member")
	}
	if l.ReturnDate.Valid {
		return nil, apierr.ErrConflict("this book has already been returned")
	}

	today := DateOnly(s.clock.Now())
	fine := FineFor(l.DueDate, today)
	if err := s.store.Close(ctx, l.LoanID, l.BookID, today, fine); err != nil {
		return nil, err
	}

	l.ReturnDate = sql.NullTime{Time: today, Valid: true}
	l.Fine = fine
	resp := buildLoanResponse(l)
	return &resp, nil
}

func (s *Service) ListMine(ctx context.Context, memberID int64) ([]LoanResponse, error) {
	if memberID <= 0 {
		return nil, apierr.ErrForbidden("only members have personal loans")
	}
	items, err := s.store.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return buildLoanResponses(items), nil
}

func (s *Service) ListAll(ctx context.Context) ([]LoanResponse, error) {
	items, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return buildLoanResponses(items), nil
}

func buildLoanResponses(items []Loan) []LoanResponse {
	out := make([]LoanResponse, 0, len(items))
	for i := range items {
		out = append(out, buildLoanResponse(&items[i]))
	}
	return out
}
