package reservations

import "LMS-backend/internal/library_mgmt/loans"

const dateLayout = "2006-01-02"

type ReserveRequest struct {
	BookID int64 `json:"book_id" binding:"required"`
}

type ReservationResponse struct {
	ReservationID   int64  `json:"reservation_id"`
	MemberID        int64  `json:"member_id"`
	BookID          int64  `json:"book_id"`
	ReservationDate string `json:"reservation_date"`
	Status          string `json:"status"`
}

// FulfillResponse carries the confirmed reservation together with the loan
// the fulfillment opened.
type FulfillResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Loan        loans.LoanResponse  `json:"loan"`
}

func buildReservationResponse(r *Reservation) ReservationResponse {
	return ReservationResponse{
		ReservationID:   r.ReservationID,
		MemberID:        r.MemberID,
		BookID:          r.BookID,
		ReservationDate: r.ReservationDate.Format(dateLayout),
		Status:          r.Status,
	}
}
