package loans

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"LMS-backend/internal/platform/apierr"
	"LMS-backend/internal/platform/auth"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service, authn, staffOnly gin.HandlerFunc) {
	h := &Handler{svc: svc}

	r.POST("/loans", authn, h.Borrow)
	r.POST("/loans/:loan_id/return", authn, h.Return)
	r.GET("/loans/mine", authn, h.ListMine)
	r.GET("/loans", authn, staffOnly, h.ListAll)
}

// POST /loans
func (h *Handler) Borrow(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)

	var req BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}

	res, err := h.svc.Borrow(c.Request.Context(), id.MemberID, req.BookID)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}

	c.Header("Location", "/loans/"+strconv.FormatInt(res.LoanID, 10))
	c.JSON(http.StatusCreated, res)
}

// POST /loans/:loan_id/return
func (h *Handler) Return(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)

	loanID, err := strconv.ParseInt(c.Param("loan_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "loan_id must be a number"))
		return
	}

	res, err := h.svc.Return(c.Request.Context(), loanID, id.MemberID, id.IsStaff())
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListMine(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)

	res, err := h.svc.ListMine(c.Request.Context(), id.MemberID)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

func (h *Handler) ListAll(c *gin.Context) {
	res, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}
