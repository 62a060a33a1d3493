package loans

import (
	"database/sql"
	"time"
)

const (
	// LoanPeriodDays is the fixed loan period.
	LoanPeriodDays = 14
	// DailyFineRate is charged per whole day past the due date.
	DailyFineRate = 0.50
)

// Loan is one row of the loans table. A loan is open while ReturnDate is
// null.
type Loan struct {
	LoanID     int64
	MemberID   int64
	BookID     int64
	LoanDate   time.Time
	DueDate    time.Time
	ReturnDate sql.NullTime
	Fine       float64
}

// FineFor computes the overdue fine for a loan due on due and returned on
// returned. Both are date-only values; a return on or before the due date
// costs nothing.
func FineFor(due, returned time.Time) float64 {
	if !returned.After(due) {
		return 0
	}
	daysLate := int(returned.Sub(due).Hours() / 24)
	return float64(daysLate) * DailyFineRate
}

// DateOnly truncates t to midnight UTC so DATE columns and day arithmetic
// stay exact.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
