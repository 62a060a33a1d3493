package members

const dateLayout = "2006-01-02"

type RegisterMemberRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Email     string  `json:"email" binding:"required"`
	Password  string  `json:"password" binding:"required"`
	Address   *string `json:"address,omitempty"`
	Contact   *string `json:"contact,omitempty"`
}

// MemberResponse never carries the credential.
type MemberResponse struct {
	MemberID   int64   `json:"member_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Address    *string `json:"address,omitempty"`
	Contact    *string `json:"contact,omitempty"`
	Email      string  `json:"email"`
	DateJoined string  `json:"date_joined"`
}

func buildMemberResponse(m *Member) MemberResponse {
	out := MemberResponse{
		MemberID:   m.MemberID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Email:      m.Email,
		DateJoined: m.DateJoined.Format(dateLayout),
	}
	if m.Address.Valid {
		v := m.Address.String
		out.Address = &v
	}
	if m.Contact.Valid {
		v := m.Contact.String
		out.Contact = &v
	}
	return out
}
