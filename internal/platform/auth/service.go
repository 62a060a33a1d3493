package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	"LMS-backend/internal/platform/apierr"
	"LMS-backend/internal/platform/textutil"
)

type Clock interface{ Now() time.Time }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type Service struct {
	store  Store
	secret []byte
	ttl    time.Duration
	clock  Clock
}

func NewService(store Store, secret []byte, ttl time.Duration) *Service {
	return &Service{store: store, secret: secret, ttl: ttl, clock: realClock{}}
}

type LoginResult struct {
	Token string
	Name  string
	Role  string
}

// Login authenticates a member, or a staff account when staffLogin is set.
// Unknown email and wrong password collapse into the same generic failure so
// accounts cannot be enumerated.
func (s *Service) Login(ctx context.Context, email, password string, staffLogin bool) (*LoginResult, error) {
	errLoginFailed := apierr.ErrUnauthenticated("login failed")

	email = textutil.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, errLoginFailed
	}

	sess := &Session{
		ID:        ulid.Make().String(),
		CreatedAt: s.clock.Now(),
	}
	sess.ExpiresAt = sess.CreatedAt.Add(s.ttl)

	var subject string
	if staffLogin {
		staff, err := s.store.GetStaffByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if staff == nil || !CheckPassword(password, staff.Credential) {
			return nil, errLoginFailed
		}
		sess.StaffID = staff.StaffID
		sess.Role = RoleStaff
		sess.DisplayName = staff.FirstName + " " + staff.LastName
		if staff.Role.Valid {
			sess.DisplayName += " [" + staff.Role.String + "]"
			if staff.Role.String == RoleAdministrator {
				sess.Role = RoleAdmin
			}
		}
		subject = strconv.FormatInt(staff.StaffID, 10)
	} else {
		member, err := s.store.GetMemberByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if member == nil || !CheckPassword(password, member.Credential) {
			return nil, errLoginFailed
		}
		sess.MemberID = member.MemberID
		sess.Role = RoleMember
		sess.DisplayName = member.FirstName + " " + member.LastName
		subject = strconv.FormatInt(member.MemberID, 10)
	}

	if err := s.store.InsertSession(ctx, sess); err != nil {
		return nil, err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":  sess.ID,
		"sub":  subject,
		"name": sess.DisplayName,
		"role": sess.Role,
		"exp":  sess.ExpiresAt.Unix(),
	})
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: tokenString, Name: sess.DisplayName, Role: sess.Role}, nil
}

// Logout deletes the session row; the token is unusable from that point on
// even though its signature is still valid.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	n, err := s.store.DeleteSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apierr.ErrNotFound("session not found")
	}
	return nil
}
