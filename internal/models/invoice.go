package models

import (
	"fmt"
	"strings"
	"time"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "Pending"
	InvoiceStatusPaid      InvoiceStatus = "Paid"
	InvoiceStatusOverdue   InvoiceStatus = "Overdue"
	InvoiceStatusCancelled InvoiceStatus = "Cancelled"
	// InvoiceStatusRefunded is only reachable through the refund workflow,
	// never through a direct status update.
	InvoiceStatusRefunded InvoiceStatus = "Refunded"
)

// MaxInvoiceAmount is the upper bound for invoice amounts.
const MaxInvoiceAmount = 999999999.99

// MaxInvoiceNumberLength bounds the invoice number column.
const MaxInvoiceNumberLength = 50

type Invoice struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	InvoiceNumber string        `gorm:"size:50;uniqueIndex" json:"invoiceNumber"`
	CustomerName  string        `gorm:"index" json:"customerName"`
	CustomerEmail string        `gorm:"index" json:"customerEmail"`
	Amount        float64       `gorm:"index" json:"amount"`
	Status        InvoiceStatus `gorm:"size:20;index" json:"status"`
	DueDate       time.Time     `json:"dueDate"`
	PaidAt        *time.Time    `json:"paidAt"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// ParseInvoiceStatus matches a status case-insensitively and returns the
// canonical form. Refunded is deliberately excluded: it is set by the refund
// workflow, not accepted on direct updates.
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	for _, valid := range []InvoiceStatus{
		InvoiceStatusPending,
		InvoiceStatusPaid,
		InvoiceStatusOverdue,
		InvoiceStatusCancelled,
	} {
		if strings.EqualFold(s, string(valid)) {
			return valid, nil
		}
	}
	return "", fmt.Errorf("status must be one of: Pending, Paid, Overdue, Cancelled")
}
