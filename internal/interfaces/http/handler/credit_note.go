package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salesapp "github.com/retailpos/backend/internal/application/sales"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

// CreditNoteHandler handles credit note API endpoints
type CreditNoteHandler struct {
	BaseHandler
	notes *salesapp.CreditNoteService
}

// NewCreditNoteHandler creates a new CreditNoteHandler
func NewCreditNoteHandler(notes *salesapp.CreditNoteService) *CreditNoteHandler {
	return &CreditNoteHandler{notes: notes}
}

// RegisterRoutes registers credit note routes
func (h *CreditNoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/creditNote")
	{
		group.POST("", middleware.RequirePermission("sales.credit_note.create"), h.Create)
		group.PUT("/:id", middleware.RequirePermission("sales.credit_note.edit"), h.Update)
		group.GET("/:id", h.Get)
	}
}

// Create creates a credit note; saveDraft=false finalizes it immediately
func (h *CreditNoteHandler) Create(c *gin.Context) {
	var req CreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	note, err := h.notes.Create(c.Request.Context(), req.toApplication())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, note)
}

// Update re-edits a draft credit note. Approved notes are immutable.
func (h *CreditNoteHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid ID format")
		return
	}

	var req CreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	note, err := h.notes.Update(c.Request.Context(), uuid.MustParse(idReq.ID), req.toApplication())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// Get returns a credit note by ID
func (h *CreditNoteHandler) Get(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid ID format")
		return
	}

	note, err := h.notes.Get(c.Request.Context(), uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}
