package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicing-backend/internal/services"
)

// CreateInvoiceRequest is the payload for creating an invoice.
type CreateInvoiceRequest struct {
	InvoiceNumber string  `json:"invoiceNumber" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	DueDate       string  `json:"dueDate" binding:"required"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
}

// UpdateInvoiceRequest is a partial update; omitted fields are unchanged.
type UpdateInvoiceRequest struct {
	InvoiceNumber *string  `json:"invoiceNumber"`
	Amount        *float64 `json:"amount"`
	DueDate       *string  `json:"dueDate"`
	Status        *string  `json:"status"`
}

type InvoiceHandler struct {
	service *services.InvoiceService
}

func NewInvoiceHandler(service *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// List godoc
// @Summary      List invoices
// @Description  Lists invoices with optional filters on status, customer email, due date range and amount range.
// @Tags         invoices
// @Produce      json
// @Param        status query string false "Invoice status (case-insensitive)"
// @Param        customerEmail query string false "Customer email (exact match)"
// @Param        dueDateFrom query string false "Due date lower bound (yyyy-mm-dd)"
// @Param        dueDateTo query string false "Due date upper bound (yyyy-mm-dd)"
// @Param        minAmount query number false "Minimum amount"
// @Param        maxAmount query number false "Maximum amount"
// @Success      200 {array} models.Invoice
// @Failure      400 {object} map[string]string
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	in := services.ListInvoicesInput{
		Status:        queryString(c, "status"),
		CustomerEmail: queryString(c, "customerEmail"),
	}

	var err error
	if in.DueDateFrom, err = queryDate(c, "dueDateFrom"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.DueDateTo, err = queryDate(c, "dueDateTo"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.MinAmount, err = queryFloat(c, "minAmount"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.MaxAmount, err = queryFloat(c, "maxAmount"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoices, err := h.service.List(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// GetByID godoc
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Success      200 {object} models.Invoice
// @Failure      404 {object} map[string]string
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.service.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// GetByNumber godoc
// @Summary      Get an invoice by its number
// @Tags         invoices
// @Produce      json
// @Param        invoiceNumber path string true "Invoice number"
// @Success      200 {object} models.Invoice
// @Failure      404 {object} map[string]string
// @Router       /invoices/number/{invoiceNumber} [get]
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	invoice, err := h.service.GetByNumber(c.Param("invoiceNumber"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// Create godoc
// @Summary      Create an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice body CreateInvoiceRequest true "Invoice to create"
// @Success      201 {object} models.Invoice
// @Failure      400 {object} map[string]string
// @Failure      409 {object} map[string]string "Duplicate invoice number"
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.service.Create(services.CreateInvoiceInput{
		InvoiceNumber: req.InvoiceNumber,
		Amount:        req.Amount,
		DueDate:       dueDate,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

// Update godoc
// @Summary      Update an invoice
// @Description  Partial update; only the provided fields change. Setting status to Paid records paidAt once.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Param        invoice body UpdateInvoiceRequest true "Fields to update"
// @Success      200 {object} models.Invoice
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	in := services.UpdateInvoiceInput{
		InvoiceNumber: req.InvoiceNumber,
		Amount:        req.Amount,
		Status:        req.Status,
	}
	if req.DueDate != nil {
		dueDate, err := parseDate(*req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		in.DueDate = &dueDate
	}

	invoice, err := h.service.Update(id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// Delete godoc
// @Summary      Delete an invoice
// @Tags         invoices
// @Param        id path int true "Invoice ID"
// @Success      204
// @Failure      404 {object} map[string]string
// @Router       /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	found, err := h.service.Delete(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
