package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salesapp "github.com/retailpos/backend/internal/application/sales"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

// InvoiceHandler handles invoice-related API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoices *salesapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoices *salesapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/invoice")
	{
		group.POST("", middleware.RequirePermission("sales.invoice.create"), h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.GetCurrent)
		group.POST("/:id/edits", middleware.RequirePermission("sales.invoice.edit"), h.CreateEdit)
		group.GET("/:id/edits", h.ListEdits)
	}
}

// Create creates a new invoice with its initial financial snapshot
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	invoice, err := h.invoices.CreateInvoice(c.Request.Context(), req.toApplication())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// List lists invoices with pagination
func (h *InvoiceHandler) List(c *gin.Context) {
	listReq := dto.ListRequest{}
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := listReq.ToFilter()
	page, err := h.invoices.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetCurrent returns an invoice together with the head of its edit chain
func (h *InvoiceHandler) GetCurrent(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	view, err := h.invoices.GetCurrent(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// CreateEdit appends a new edit to the invoice's chain
func (h *InvoiceHandler) CreateEdit(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req CreateEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	edit, err := h.invoices.CreateEdit(c.Request.Context(), salesapp.CreateEditRequest{
		InvoiceID: id,
		Items:     toRawItems(req.Items),
		Deposit:   req.Deposit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, edit)
}

// ListEdits returns the full edit chain of an invoice in creation order
func (h *InvoiceHandler) ListEdits(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	edits, err := h.invoices.ListEdits(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, edits)
}

func (h *InvoiceHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	return uuid.MustParse(idReq.ID), true
}
