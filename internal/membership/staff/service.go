package staff

import (
	"context"
	"database/sql"
	"strings"

	"LMS-backend/internal/platform/apierr"
	"LMS-backend/internal/platform/auth"
	"LMS-backend/internal/platform/textutil"
)

type Service struct {
	store Store
}

func NewService(sdb *sql.DB) *Service { return &Service{store: NewStore(sdb)} }

// NewServiceWithStore is used by tests to plug in a fake store.
func NewServiceWithStore(store Store) *Service { return &Service{store: store} }

// Register enrolls a staff account. Only an authenticated staff actor can
// reach this, enforced by the route middleware.
func (s *Service) Register(ctx context.Context, req RegisterStaffRequest) (*StaffResponse, error) {
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	role := strings.TrimSpace(req.Role)
	email := textutil.NormalizeEmail(req.Email)

	if first == "" || last == "" {
		return nil, apierr.ErrInvalid("first_name and last_name are required")
	}
	if role == "" {
		return nil, apierr.ErrInvalid("role is required")
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

	st := &Staff{
		FirstName:  first,
		LastName:   last,
		Role:       sql.NullString{String: role, Valid: true},
		Email:      email,
		Credential: hash,
	}
	if req.Contact != nil && *req.Contact != "" {
		st.Contact = sql.NullString{String: *req.Contact, Valid: true}
	}

	if err := s.store.Insert(ctx, st); err != nil {
		return nil, err
	}

	resp := buildStaffResponse(st)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]StaffResponse, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]StaffResponse, 0, len(items))
	for i := range items {
		out = append(out, buildStaffResponse(&items[i]))
	}
	return out, nil
}

func (s *Service) Resign(ctx context.Context, staffID int64) error {
	return s.store.Resign(ctx, staffID)
}
