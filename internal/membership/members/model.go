package members

import (
	"database/sql"
	"time"
)

// Member is one row of the members table.
type Member struct {
	MemberID   int64
	FirstName  string
	LastName   string
	Address    sql.NullString
	Contact    sql.NullString
	Email      string
	DateJoined time.Time
	Credential string
}
