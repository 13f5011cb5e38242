package handler

import (
	"net/http"

	"estatedesk/internal/matching/service"
	"estatedesk/internal/matching/transport"
	"estatedesk/platform/httpkit"
	"estatedesk/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgInvalidLeadID    = "invalid lead id"
	msgInvalidMatchID   = "invalid match id"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterLeadRoutes mounts the per-lead match surface under /leads/:id.
func (h *Handler) RegisterLeadRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/matches", h.ListForLead)
	rg.POST("/:id/matches/regenerate", h.RegenerateForLead)
}

// RegisterMatchRoutes mounts match-level routes under /matches.
func (h *Handler) RegisterMatchRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/:id/approve", h.SetApproved)
}

// RegisterAdminRoutes mounts the operator-only full regeneration trigger.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/regenerate", h.RegenerateAll)
}

func (h *Handler) RegenerateAll(c *gin.Context) {
	resp, err := h.svc.RegenerateAll(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

func (h *Handler) RegenerateForLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return
	}

	resp, err := h.svc.RegenerateForLead(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

func (h *Handler) ListForLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return
	}

	list, err := h.svc.ListForLead(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, list)
}

func (h *Handler) SetApproved(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidMatchID, nil)
		return
	}

	var req transport.SetApprovedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	match, err := h.svc.SetApproved(c.Request.Context(), id, *req.Approved)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, match)
}
