package loans

const dateLayout = "2006-01-02"

type BorrowRequest struct {
	BookID int64 `json:"book_id" binding:"required"`
}

type LoanResponse struct {
	LoanID     int64   `json:"loan_id"`
	MemberID   int64   `json:"member_id"`
	BookID     int64   `json:"book_id"`
	LoanDate   string  `json:"loan_date"`
	DueDate    string  `json:"due_date"`
	ReturnDate *string `json:"return_date,omitempty"`
	Fine       float64 `json:"fine"`
}

func buildLoanResponse(l *Loan) LoanResponse {
	out := LoanResponse{
		LoanID:   l.LoanID,
		MemberID: l.MemberID,
		BookID:   l.BookID,
		LoanDate: l.LoanDate.Format(dateLayout),
		DueDate:  l.DueDate.Format(dateLayout),
		Fine:     l.Fine,
	}
	if l.ReturnDate.Valid {
		v := l.ReturnDate.Time.Format(dateLayout)
		out.ReturnDate = &v
	}
	return out
}
