package reservations

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

	r.POST("/reservations", authn, h.Reserve)
	r.POST("/reservations/:reservation_id/fulfill", authn, h.Fulfill)
	r.POST("/reservations/:reservation_id/cancel", authn, h.Cancel)
	r.GET("/reservations/mine", authn, h.ListMine)
	r.GET("/reservations", authn, staffOnly, h.ListAll)
}

// POST /reservations
func (h *Handler) Reserve(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)

	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}

	res, err := h.svc.Reserve(c.Request.Context(), id.MemberID, req.BookID)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}

	c.Header("Location", "/reservations/"+strconv.FormatInt(res.ReservationID, 10))
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Fulfill(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)

	reservationID, err := strconv.ParseInt(c.Param("reservation_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "reservation_id must be a number"))
		return
	}

	res, err := h.svc.Fulfill(c.Request.Context(), reservationID, id.MemberID, id.IsStaff())
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, _ := auth.IdentityFrom(c)

	reservationID, err := strconv.ParseInt(c.Param("reservation_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "reservation_id must be a number"))
		return
	}

	res, err := h.svc.Cancel(c.Request.Context(), reservationID, id.MemberID, id.IsStaff())
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
