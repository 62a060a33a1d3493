package reservations

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Reservation is one row of the reservations table. pending is the only
// non-terminal status.
type Reservation struct {
	ReservationID   int64
	MemberID        int64
	BookID          int64
	ReservationDate time.Time
	Status          string
}
