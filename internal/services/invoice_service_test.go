package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicing-backend/internal/models"
)

func TestCreateInvoice(t *testing.T) {
	svc, _, _ := newTestServices(t)

	invoice := seedInvoice(t, svc, "INV-001", 1500.00)

	assert.NotZero(t, invoice.ID)
	assert.Equal(t, models.InvoiceStatusPending, invoice.Status)
	assert.Nil(t, invoice.PaidAt)

	got, err := svc.GetByNumber("INV-001")
	require.NoError(t, err)
	assert.Equal(t, invoice.ID, got.ID)
}

func TestCreateInvoiceValidation(t *testing.T) {
	svc, _, _ := newTestServices(t)
	dueDate := time.Now().UTC().Add(72 * time.Hour)

	cases := []struct {
		name  string
		input CreateInvoiceInput
	}{
		{"blank number", CreateInvoiceInput{InvoiceNumber: "   ", Amount: 100, DueDate: dueDate}},
		{"number too long", CreateInvoiceInput{InvoiceNumber: strings.Repeat("A", 51), Amount: 100, DueDate: dueDate}},
		{"zero amount", CreateInvoiceInput{InvoiceNumber: "INV-002", Amount: 0, DueDate: dueDate}},
		{"negative amount", CreateInvoiceInput{InvoiceNumber: "INV-003", Amount: -5, DueDate: dueDate}},
		{"amount above limit", CreateInvoiceInput{InvoiceNumber: "INV-004", Amount: models.MaxInvoiceAmount + 1, DueDate: dueDate}},
		{"past due date", CreateInvoiceInput{InvoiceNumber: "INV-005", Amount: 100, DueDate: time.Now().UTC().Add(-48 * time.Hour)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(tc.input)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateInvoiceDuplicateNumber(t *testing.T) {
	svc, _, _ := newTestServices(t)

	original := seedInvoice(t, svc, "INV-010", 200.00)

	_, err := svc.Create(CreateInvoiceInput{
		InvoiceNumber: "INV-010",
		Amount:        999.00,
		DueDate:       time.Now().UTC().Add(72 * time.Hour),
	})
	require.ErrorIs(t, err, ErrConflict)

	// The stored invoice is untouched by the rejected create.
	got, err := svc.GetByNumber("INV-010")
	require.NoError(t, err)
	assert.Equal(t, original.ID, got.ID)
	assert.Equal(t, 200.00, got.Amount)
}

func TestUpdateInvoicePartial(t *testing.T) {
	svc, _, _ := newTestServices(t)
	invoice := seedInvoice(t, svc, "INV-020", 300.00)

	updated, err := svc.Update(invoice.ID, UpdateInvoiceInput{Amount: f64ptr(450.00)})
	require.NoError(t, err)

	assert.Equal(t, 450.00, updated.Amount)
	assert.Equal(t, "INV-020", updated.InvoiceNumber)
	assert.Equal(t, models.InvoiceStatusPending, updated.Status)
}

func TestUpdateInvoiceStatusCaseInsensitive(t *testing.T) {
	svc, _, _ := newTestServices(t)
	invoice := seedInvoice(t, svc, "INV-021", 300.00)

	updated, err := svc.Update(invoice.ID, UpdateInvoiceInput{Status: strptr("paid")})
	require.NoError(t, err)

	assert.Equal(t, models.InvoiceStatusPaid, updated.Status)
	require.NotNil(t, updated.PaidAt)
}

func TestUpdateInvoicePaidAtSetOnce(t *testing.T) {
	svc, _, _ := newTestServices(t)
	invoice := seedInvoice(t, svc, "INV-022", 300.00)

	first, err := svc.Update(invoice.ID, UpdateInvoiceInput{Status: strptr("Paid")})
	require.NoError(t, err)
	require.NotNil(t, first.PaidAt)
	firstPaidAt := *first.PaidAt

	time.Sleep(10 * time.Millisecond)

	second, err := svc.Update(invoice.ID, UpdateInvoiceInput{Status: strptr("Paid")})
	require.NoError(t, err)
	require.NotNil(t, second.PaidAt)
	assert.WithinDuration(t, firstPaidAt, *second.PaidAt, time.Millisecond)
}

func TestUpdateInvoiceRejectsRefundedStatus(t *testing.T) {
	svc, _, _ := newTestServices(t)
	invoice := seedInvoice(t, svc, "INV-023", 300.00)

	_, err := svc.Update(invoice.ID, UpdateInvoiceInput{Status: strptr("Refunded")})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateInvoiceDuplicateNumber(t *testing.T) {
	svc, _, _ := newTestServices(t)
	seedInvoice(t, svc, "INV-030", 100.00)
	second := seedInvoice(t, svc, "INV-031", 100.00)

	_, err := svc.Update(second.ID, UpdateInvoiceInput{InvoiceNumber: strptr("INV-030")})
	require.ErrorIs(t, err, ErrConflict)

	// Re-submitting the invoice's own number is not a conflict.
	_, err = svc.Update(second.ID, UpdateInvoiceInput{InvoiceNumber: strptr("INV-031")})
	require.NoError(t, err)
}

func TestUpdateInvoiceNotFound(t *testing.T) {
	svc, _, _ := newTestServices(t)

	_, err := svc.Update(999, UpdateInvoiceInput{Amount: f64ptr(10)})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteInvoice(t *testing.T) {
	svc, _, _ := newTestServices(t)
	invoice := seedInvoice(t, svc, "INV-040", 100.00)

	found, err := svc.Delete(invoice.ID)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = svc.Delete(invoice.ID)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = svc.GetByID(invoice.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListInvoicesFilters(t *testing.T) {
	svc, _, _ := newTestServices(t)

	seedInvoice(t, svc, "INV-050", 100.00)
	paid := seedInvoice(t, svc, "INV-051", 250.00)
	seedInvoice(t, svc, "INV-052", 900.00)

	_, err := svc.Update(paid.ID, UpdateInvoiceInput{Status: strptr("Paid")})
	require.NoError(t, err)

	byStatus, err := svc.List(ListInvoicesInput{Status: strptr("paid")})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "INV-051", byStatus[0].InvoiceNumber)

	byAmount, err := svc.List(ListInvoicesInput{MinAmount: f64ptr(200), MaxAmount: f64ptr(500)})
	require.NoError(t, err)
	require.Len(t, byAmount, 1)
	assert.Equal(t, "INV-051", byAmount[0].InvoiceNumber)

	byEmail, err := svc.List(ListInvoicesInput{CustomerEmail: strptr("billing@acme.test")})
	require.NoError(t, err)
	assert.Len(t, byEmail, 3)

	_, err = svc.List(ListInvoicesInput{Status: strptr("bogus")})
	require.ErrorIs(t, err, ErrValidation)
}
