package members

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"LMS-backend/internal/platform/apierr"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service, authn, staffOnly gin.HandlerFunc) {
	h := &Handler{svc: svc}

	// self-registration is public
	r.POST("/members", h.Register)

	r.GET("/members", authn, staffOnly, h.List)
	r.DELETE("/members/:member_id", authn, staffOnly, h.Remove)
}

// POST /members
func (h *Handler) Register(c *gin.Context) {
	var req RegisterMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}

	res, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}

	c.Header("Location", "/members/"+strconv.FormatInt(res.MemberID, 10))
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

func (h *Handler) Remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("member_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "member_id must be a number"))
		return
	}

	if err := h.svc.Remove(c.Request.Context(), id); err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "member removed"})
}
