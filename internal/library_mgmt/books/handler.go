package books

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"LMS-backend/internal/platform/apierr"
	"LMS-backend/internal/platform/textutil"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service, authn, staffOnly gin.HandlerFunc) {
	h := &Handler{svc: svc}

	// catalog browsing is public
	r.GET("/books", h.List)
	r.GET("/books/:book_id", h.Get)

	// mutations are staff-only
	r.POST("/books", authn, staffOnly, h.Create)
	r.PUT("/books/:book_id", authn, staffOnly, h.Update)
	r.DELETE("/books/:book_id", authn, staffOnly, h.Delete)
}

// GET /books?q=&limit=&offset=
func (h *Handler) List(c *gin.Context) {
	term := textutil.NormalizeTerm(c.Query("q"))
	p := Page{
		Limit:  atoiDef(c.Query("limit"), 50),
		Offset: atoiDef(c.Query("offset"), 0),
	}
	items, total, err := h.svc.List(c.Request.Context(), term, p)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "next_offset": nextOffset(total, p)})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "book_id must be a number"))
		return
	}
	res, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}
	c.Header("Location", "/books/"+strconv.FormatInt(res.BookID, 10))
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "book_id must be a number"))
		return
	}
	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}
	res, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierr.Body(apierr.CodeInvalidArgument, "book_id must be a number"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(apierr.ToHTTPStatus(err), apierr.From(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "book removed"})
}

func atoiDef(s string, d int) int {
	if s == "" {
		return d
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

func nextOffset(total int, p Page) *int {
	n := p.Offset + p.Limit
	if n >= total {
		return nil
	}
	return &n
}
