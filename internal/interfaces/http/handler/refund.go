package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salesapp "github.com/retailpos/backend/internal/application/sales"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

// RefundHandler handles refund API endpoints
type RefundHandler struct {
	BaseHandler
	refunds *salesapp.RefundService
}

// NewRefundHandler creates a new RefundHandler
func NewRefundHandler(refunds *salesapp.RefundService) *RefundHandler {
	return &RefundHandler{refunds: refunds}
}

// RegisterRoutes registers refund routes
func (h *RefundHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/refund")
	{
		group.POST("", middleware.RequirePermission("sales.refund.create"), h.Create)
		group.PUT("/:id", middleware.RequirePermission("sales.refund.edit"), h.Update)
		group.GET("/:id", h.Get)
	}
}

// Create creates a refund, optionally derived from a credit note
func (h *RefundHandler) Create(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	refund, err := h.refunds.Create(c.Request.Context(), req.toApplication())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, refund)
}

// Update re-edits a draft refund. Issued refunds are immutable.
func (h *RefundHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid ID format")
		return
	}

	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	refund, err := h.refunds.Update(c.Request.Context(), uuid.MustParse(idReq.ID), req.toApplication())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, refund)
}

// Get returns a refund by ID
func (h *RefundHandler) Get(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid ID format")
		return
	}

	refund, err := h.refunds.Get(c.Request.Context(), uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, refund)
}
