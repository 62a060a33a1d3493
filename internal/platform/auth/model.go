package auth

import "time"

const (
	RoleMember = "member"
	RoleStaff  = "staff"
	RoleAdmin  = "admin"
)

// RoleAdministrator is the staff role that grants admin capabilities.
const RoleAdministrator = "Administrator"

// Session is one row of auth_sessions. Exactly one of MemberID / StaffID is
// set, matching the login variant that created it.
type Session struct {
	ID          string
	MemberID    int64
	StaffID     int64
	DisplayName string
	Role        string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Identity is the per-request authentication context populated by
// RequireAuth. Handlers read it instead of ambient session state.
type Identity struct {
	SessionID string
	MemberID  int64
	StaffID   int64
	Name      string
	Role      string
}

func (i Identity) IsMember() bool { return i.MemberID != 0 }
func (i Identity) IsStaff() bool  { return i.Role == RoleStaff || i.Role == RoleAdmin }
func (i Identity) IsAdmin() bool  { return i.Role == RoleAdmin }
