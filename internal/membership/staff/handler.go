package staff

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"LMS-backend/internal/platform/apierr"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service, authn, staffOnly gin.HandlerFunc) {
	h := &Handler{svc: svc}

	r.POST("/staff", authn, staffOnly, h.Register)
	r.GET("/staff", authn, staffOnly, h.List)
	r.DELETE("/staff/:staff_id", authn, staffOnly, h.Resign)
}

// POST /staff
func (h *Handler) Register(c *gin.Context) {
	var req RegisterStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}

	res, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}

	c.Header("Location", "/staff/"+strconv.FormatInt(res.StaffID, 10))
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

func (h *Handler) Resign(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("staff_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "staff_id must be a number"))
		return
	}

	if err := h.svc.Resign(c.Request.Context(), id); err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "staff member removed"})
}
