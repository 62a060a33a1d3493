package staff

type RegisterStaffRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Email     string  `json:"email" binding:"required"`
	Password  string  `json:"password" binding:"required"`
	Role      string  `json:"role" binding:"required"`
	Contact   *string `json:"contact,omitempty"`
}

// StaffResponse never carries the credential.
type StaffResponse struct {
	StaffID   int64   `json:"staff_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Role      *string `json:"role,omitempty"`
	Contact   *string `json:"contact,omitempty"`
	Email     string  `json:"email"`
}

func buildStaffResponse(s *Staff) StaffResponse {
	out := StaffResponse{
		StaffID:   s.StaffID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
	}
	if s.Role.Valid {
		v := s.Role.String
		out.Role = &v
	}
	if s.Contact.Valid {
		v := s.Contact.String
		out.Contact = &v
	}
	return out
}
