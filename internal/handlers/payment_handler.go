package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicing-backend/internal/services"
)

// CreatePaymentRequest is the payload for creating or processing a payment.
type CreatePaymentRequest struct {
	InvoiceID     uint    `json:"invoiceId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
}

// UpdatePaymentStatusRequest sets a payment's status.
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type PaymentHandler struct {
	service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// List godoc
// @Summary      List payments
// @Description  Lists payments with optional equality filters on status and payment method.
// @Tags         payments
// @Produce      json
// @Param        status query string false "Payment status (case-insensitive)"
// @Param        method query string false "Payment method (exact match)"
// @Success      200 {array} models.Payment
// @Failure      400 {object} map[string]string
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.service.List(services.ListPaymentsInput{
		Status:        queryString(c, "status"),
		PaymentMethod: queryString(c, "method"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GetByID godoc
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} models.Payment
// @Failure      404 {object} map[string]string
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.service.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// GetByTransactionID godoc
// @Summary      Get a payment by transaction reference
// @Tags         payments
// @Produce      json
// @Param        transactionId path string true "Transaction ID"
// @Success      200 {object} models.Payment
// @Failure      404 {object} map[string]string
// @Router       /payments/transaction/{transactionId} [get]
func (h *PaymentHandler) GetByTransactionID(c *gin.Context) {
	payment, err := h.service.GetByTransactionID(c.Param("transactionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// ListByInvoice godoc
// @Summary      List payments for an invoice
// @Tags         payments
// @Produce      json
// @Param        invoiceId path int true "Invoice ID"
// @Success      200 {array} models.Payment
// @Failure      400 {object} map[string]string
// @Router       /payments/invoice/{invoiceId} [get]
func (h *PaymentHandler) ListByInvoice(c *gin.Context) {
	invoiceID, ok := parseIDParam(c, "invoiceId")
	if !ok {
		return
	}

	payments, err := h.service.ListByInvoice(invoiceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Create godoc
// @Summary      Create a payment
// @Description  Records a Pending payment against an existing invoice without touching the invoice status.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        payment body CreatePaymentRequest true "Payment to create"
// @Success      201 {object} models.Payment
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string "Invoice not found"
// @Router       /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	payment, err := h.service.Create(services.CreatePaymentInput{
		InvoiceID:     req.InvoiceID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// Process godoc
// @Summary      Process a payment
// @Description  Pays an invoice end to end: creates the payment, completes it and marks the invoice Paid, atomically.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        payment body CreatePaymentRequest true "Payment to process"
// @Success      200 {object} models.Payment
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string "Invoice not found"
// @Failure      409 {object} map[string]string "Invoice already paid"
// @Router       /payments/process [post]
func (h *PaymentHandler) Process(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	payment, err := h.service.ProcessPayment(services.CreatePaymentInput{
		InvoiceID:     req.InvoiceID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// UpdateStatus godoc
// @Summary      Update a payment's status
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path int true "Payment ID"
// @Param        status body UpdatePaymentStatusRequest true "New status"
// @Success      200 {object} models.Payment
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /payments/{id}/status [put]
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	payment, err := h.service.UpdateStatus(id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// Refund godoc
// @Summary      Refund a payment
// @Description  Marks the payment and its invoice as Refunded.
// @Tags         payments
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} map[string]bool
// @Failure      404 {object} map[string]string
// @Failure      409 {object} map[string]string "Payment already refunded"
// @Router       /payments/{id}/refund [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	refunded, err := h.service.Refund(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !refunded {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"refunded": true})
}

// Delete godoc
// @Summary      Delete a payment
// @Tags         payments
// @Param        id path int true "Payment ID"
// @Success      204
// @Failure      404 {object} map[string]string
// @Router       /payments/{id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
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
		c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
