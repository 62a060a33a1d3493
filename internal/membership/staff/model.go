package staff

import "database/sql"

// Staff is one row of the staffs table.
type Staff struct {
	StaffID    int64
	FirstName  string
	LastName   string
	Role       sql.NullString
	Contact    sql.NullString
	Email      string
	Credential string
}
