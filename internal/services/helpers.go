package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"invoicing-backend/internal/models"
)

func validateInvoiceNumber(invoiceNumber string) error {
	if strings.TrimSpace(invoiceNumber) == "" {
		return fmt.Errorf("%w: invoice number is required", ErrValidation)
	}
	if len(invoiceNumber) > models.MaxInvoiceNumberLength {
		return fmt.Errorf("%w: invoice number cannot exceed %d characters", ErrValidation, models.MaxInvoiceNumberLength)
	}
	return nil
}

func validateInvoiceAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	if amount > models.MaxInvoiceAmount {
		return fmt.Errorf("%w: amount exceeds maximum allowed value", ErrValidation)
	}
	return nil
}

// parseInvoiceStatusFilter accepts any invoice status for list filtering,
// including Refunded, which direct updates reject.
func parseInvoiceStatusFilter(s string) (models.InvoiceStatus, error) {
	for _, valid := range []models.InvoiceStatus{
		models.InvoiceStatusPending,
		models.InvoiceStatusPaid,
		models.InvoiceStatusOverdue,
		models.InvoiceStatusCancelled,
		models.InvoiceStatusRefunded,
	} {
		if strings.EqualFold(s, string(valid)) {
			return valid, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
}

// generateTransactionID builds a unique reference of the form
// TXN-<UTC timestamp>-<random hex>, 32 characters total.
func generateTransactionID() string {
	ts := time.Now().UTC().Format("20060102150405")
	random := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("TXN-%s-%s", ts, random)[:32]
}
