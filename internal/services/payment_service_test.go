package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicing-backend/internal/models"
)

func TestCreatePayment(t *testing.T) {
	invoiceSvc, paymentSvc, _ := newTestServices(t)
	invoice := seedInvoice(t, invoiceSvc, "INV-100", 500.00)

	payment, err := paymentSvc.Create(CreatePaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        500.00,
		PaymentMethod: "credit_card",
	})
	require.NoError(t, err)

	assert.NotZero(t, payment.ID)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Len(t, payment.TransactionID, 32)
	assert.True(t, strings.HasPrefix(payment.TransactionID, "TXN-"))

	// Recording a payment does not pay the invoice.
	got, err := invoiceSvc.GetByID(invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPending, got.Status)
	assert.Nil(t, got.PaidAt)
}

func TestCreatePaymentValidation(t *testing.T) {
	_, paymentSvc, _ := newTestServices(t)

	cases := []struct {
		name  string
		input CreatePaymentInput
	}{
		{"zero invoice id", CreatePaymentInput{InvoiceID: 0, Amount: 10, PaymentMethod: "pix"}},
		{"zero amount", CreatePaymentInput{InvoiceID: 1, Amount: 0, PaymentMethod: "pix"}},
		{"negative amount", CreatePaymentInput{InvoiceID: 1, Amount: -3, PaymentMethod: "pix"}},
		{"blank method", CreatePaymentInput{InvoiceID: 1, Amount: 10, PaymentMethod: "  "}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := paymentSvc.Create(tc.input)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreatePaymentInvoiceMissing(t *testing.T) {
	_, paymentSvc, _ := newTestServices(t)

	_, err := paymentSvc.Create(CreatePaymentInput{
		InvoiceID:     999,
		Amount:        10,
		PaymentMethod: "pix",
	})
	require.ErrorIs(t, err, ErrNotFound)

	payments, err := paymentSvc.List(ListPaymentsInput{})
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestProcessPayment(t *testing.T) {
	invoiceSvc, paymentSvc, _ := newTestServices(t)
	invoice := seedInvoice(t, invoiceSvc, "INV-110", 750.00)

	payment, err := paymentSvc.ProcessPayment(CreatePaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        750.00,
		PaymentMethod: "credit_card",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	assert.NotEmpty(t, payment.GatewayResponse)

	paidInvoice, err := invoiceSvc.GetByID(invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, paidInvoice.Status)
	require.NotNil(t, paidInvoice.PaidAt)
}

func TestProcessPaymentAlreadyPaid(t *testing.T) {
	invoiceSvc, paymentSvc, _ := newTestServices(t)
	invoice := seedInvoice(t, invoiceSvc, "INV-111", 750.00)

	_, err := paymentSvc.ProcessPayment(CreatePaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        750.00,
		PaymentMethod: "credit_card",
	})
	require.NoError(t, err)

	_, err = paymentSvc.ProcessPayment(CreatePaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        750.00,
		PaymentMethod: "credit_card",
	})
	require.ErrorIs(t, err, ErrConflict)

	// The rejected attempt leaves no partial state behind.
	payments, err := paymentSvc.ListByInvoice(invoice.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

func TestProcessPaymentInvoiceMissing(t *testing.T) {
	_, paymentSvc, _ := newTestServices(t)

	_, err := paymentSvc.ProcessPayment(CreatePaymentInput{
		InvoiceID:     999,
		Amount:        10,
		PaymentMethod: "pix",
	})
	require.ErrorIs(t, err, ErrNotFound)

	payments, err := paymentSvc.List(ListPaymentsInput{})
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestUpdatePaymentStatus(t *testing.T) {
	invoiceSvc, paymentSvc, _ := newTestServices(t)
	invoice := seedInvoice(t, invoiceSvc, "INV-120", 100.00)

	payment, err := paymentSvc.Create(CreatePaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        100.00,
		PaymentMethod: "boleto",
	})
	require.NoError(t, err)

	updated, err := paymentSvc.UpdateStatus(payment.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, updated.Status)

	_, err = paymentSvc.UpdateStatus(payment.ID, "bogus")
	require.ErrorIs(t, err, ErrValidation)

	_, err = paymentSvc.UpdateStatus(999, "Completed")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRefundPayment(t *testing.T) {
	invoiceSvc, paymentSvc, _ := newTestServices(t)
	invoice := seedInvoice(t, invoiceSvc, "INV-130", 300.00)

	payment, err := paymentSvc.ProcessPayment(CreatePaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        300.00,
		PaymentMethod: "credit_card",
	})
	require.NoError(t, err)

	refunded, err := paymentSvc.Refund(payment.ID)
	require.NoError(t, err)
	assert.True(t, refunded)

	gotPayment, err := paymentSvc.GetByID(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, gotPayment.Status)

	gotInvoice, err := invoiceSvc.GetByID(invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusRefunded, gotInvoice.Status)

	_, err = paymentSvc.Refund(payment.ID)
	require.ErrorIs(t, err, ErrConflict)
}

func TestRefundPaymentMissing(t *testing.T) {
	_, paymentSvc, _ := newTestServices(t)

	refunded, err := paymentSvc.Refund(999)
	require.NoError(t, err)
	assert.False(t, refunded)
}

func TestDeletePayment(t *testing.T) {
	invoiceSvc, paymentSvc, _ := newTestServices(t)
	invoice := seedInvoice(t, invoiceSvc, "INV-140", 100.00)

	payment, err := paymentSvc.Create(CreatePaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        100.00,
		PaymentMethod: "pix",
	})
	require.NoError(t, err)

	found, err := paymentSvc.Delete(payment.ID)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = paymentSvc.Delete(payment.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetPaymentByTransactionID(t *testing.T) {
	invoiceSvc, paymentSvc, _ := newTestServices(t)
	invoice := seedInvoice(t, invoiceSvc, "INV-150", 100.00)

	payment, err := paymentSvc.Create(CreatePaymentInput{
		InvoiceID:     invoice.ID,
		Amount:        100.00,
		PaymentMethod: "pix",
	})
	require.NoError(t, err)

	got, err := paymentSvc.GetByTransactionID(payment.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, got.ID)

	_, err = paymentSvc.GetByTransactionID("  ")
	require.ErrorIs(t, err, ErrValidation)

	_, err = paymentSvc.GetByTransactionID("TXN-00000000000000-deadbeefdead")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListPaymentsFilters(t *testing.T) {
	invoiceSvc, paymentSvc, _ := newTestServices(t)
	invoice := seedInvoice(t, invoiceSvc, "INV-160", 100.00)

	_, err := paymentSvc.Create(CreatePaymentInput{InvoiceID: invoice.ID, Amount: 40, PaymentMethod: "pix"})
	require.NoError(t, err)
	_, err = paymentSvc.Create(CreatePaymentInput{InvoiceID: invoice.ID, Amount: 60, PaymentMethod: "boleto"})
	require.NoError(t, err)

	byMethod, err := paymentSvc.List(ListPaymentsInput{PaymentMethod: strptr("pix")})
	require.NoError(t, err)
	require.Len(t, byMethod, 1)
	assert.Equal(t, 40.0, byMethod[0].Amount)

	byStatus, err := paymentSvc.List(ListPaymentsInput{Status: strptr("pending")})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	_, err = paymentSvc.List(ListPaymentsInput{Status: strptr("bogus")})
	require.ErrorIs(t, err, ErrValidation)

	_, err = paymentSvc.ListByInvoice(0)
	require.ErrorIs(t, err, ErrValidation)
}
