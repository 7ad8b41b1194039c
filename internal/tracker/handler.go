package tracker

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/apperr"
	"resume-tailor/internal/shared/server/middleware"
	"resume-tailor/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches tracker routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tracker", h.list)
	rg.POST("/tracker", h.create)
	rg.PATCH("/tracker/:id", h.update)
	rg.DELETE("/tracker/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	clientID := middleware.ClientIDFromContext(c)
	entries, err := h.Svc.List(c.Request.Context(), clientID)
	if err != nil {
		respond.Failure(c, err)
		return
	}
	resp := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toResponse(e))
	}
	respond.OK(c, gin.H{"entries": resp})
}

func (h *Handler) create(c *gin.Context) {
	clientID := middleware.ClientIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Failure(c, apperr.Validation("invalid request body"))
		return
	}

	e, err := h.Svc.Create(c.Request.Context(), clientID, CreateInput(req))
	if err != nil {
		respond.Failure(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(e))
}

func (h *Handler) update(c *gin.Context) {
	clientID := middleware.ClientIDFromContext(c)
	id := strings.TrimSpace(c.Param("id"))

	var req patchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Failure(c, apperr.Validation("invalid request body"))
		return
	}

	e, err := h.Svc.Update(c.Request.Context(), clientID, id, Patch(req))
	if err != nil {
		respond.Failure(c, err)
		return
	}
	respond.OK(c, toResponse(e))
}

func (h *Handler) remove(c *gin.Context) {
	clientID := middleware.ClientIDFromContext(c)
	id := strings.TrimSpace(c.Param("id"))

	if err := h.Svc.Delete(c.Request.Context(), clientID, id); err != nil {
		respond.Failure(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
