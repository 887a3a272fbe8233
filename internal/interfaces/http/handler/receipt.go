package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salesapp "github.com/retailpos/backend/internal/application/sales"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

// ReceiptHandler handles receipt-related API endpoints
type ReceiptHandler struct {
	BaseHandler
	receipts *salesapp.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receipts *salesapp.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts}
}

// RegisterRoutes registers receipt routes
func (h *ReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/receipt")
	{
		group.POST("", middleware.RequirePermission("sales.receipt.create"), h.CreateCash)
		group.POST("/generate-from-invoice", middleware.RequirePermission("sales.receipt.create"), h.GenerateFromInvoice)
		group.GET("/:id", h.Get)
	}
}

// CreateCash creates a standalone cash receipt with no invoice behind it
func (h *ReceiptHandler) CreateCash(c *gin.Context) {
	var req CashReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	receipt, err := h.receipts.CreateCashReceipt(c.Request.Context(), salesapp.CreateCashReceiptRequest{
		Items:     toRawItems(req.Items),
		Deposit:   req.Deposit,
		Signature: req.Signature,
		Draft:     req.Draft,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, receipt)
}

// GenerateFromInvoice generates the receipt for an invoice edit. The
// operation is idempotent: repeated calls return the existing receipt with
// alreadyExists set, always as 200.
func (h *ReceiptHandler) GenerateFromInvoice(c *gin.Context) {
	var req GenerateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.receipts.GenerateFromInvoice(c.Request.Context(), salesapp.GenerateReceiptRequest{
		InvoiceID: uuid.MustParse(req.InvoiceID),
		EditID:    uuid.MustParse(req.EditID),
		Signature: req.Signature,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get returns a receipt by ID
func (h *ReceiptHandler) Get(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid ID format")
		return
	}

	receipt, err := h.receipts.GetReceipt(c.Request.Context(), uuid.MustParse(idReq.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}
