package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"LMS-backend/internal/platform/apierr"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service, authn gin.HandlerFunc) {
	h := &Handler{svc: svc}
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", authn, h.Logout)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	// Staff selects the staff login variant.
	Staff bool `json:"staff"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password, req.Staff)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: res.Token, Name: res.Name, Role: res.Role})
}

func (h *Handler) Logout(c *gin.Context) {
	id, ok := IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierr.Body(apierr.CodeUnauthenticated, "not authenticated"))
		return
	}

	if err := h.svc.Logout(c.Request.Context(), id.SessionID); err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
