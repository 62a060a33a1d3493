package members

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"LMS-backend/internal/platform/apierr"
	"LMS-backend/internal/platform/auth"
	"LMS-backend/internal/platform/textutil"
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

// Register creates a member with a hashed credential and today's join date.
// Email uniqueness is enforced by the store's unique index.
func (s *Service) Register(ctx context.Context, req RegisterMemberRequest) (*MemberResponse, error) {
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	email := textutil.NormalizeEmail(req.Email)

	if first == "" || last == "" {
		return nil, apierr.ErrInvalid("first_name and last_name are required")
	}
	if !strings.Contains(email, "@") {
		return nil, apierr.ErrInvalid("invalid email address")
	}
	if req.Password == "" {
		return nil, apierr.ErrInvalid("password is required")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	m := &Member{
		FirstName:  first,
		LastName:   last,
		Email:      email,
		DateJoined: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Credential: hash,
	}
	if req.Address != nil && *req.Address != "" {
		m.Address = sql.NullString{String: *req.Address, Valid: true}
	}
	if req.Contact != nil && *req.Contact != "" {
		m.Contact = sql.NullString{String: *req.Contact, Valid: true}
	}

	if err := s.store.Insert(ctx, m); err != nil {
		return nil, err
	}

	resp := buildMemberResponse(m)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]MemberResponse, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MemberResponse, 0, len(items))
	for i := range items {
		out = append(out, buildMemberResponse(&items[i]))
	}
	return out, nil
}

func (s *Service) Remove(ctx context.Context, memberID int64) error {
	return s.store.Remove(ctx, memberID)
}
