package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "Pending"
	PaymentStatusProcessing PaymentStatus = "Processing"
	PaymentStatusCompleted  PaymentStatus = "Completed"
	PaymentStatusFailed     PaymentStatus = "Failed"
	PaymentStatusRefunded   PaymentStatus = "Refunded"
)

type Payment struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	InvoiceID       uint           `gorm:"index;not null" json:"invoiceId"`
	Amount          float64        `json:"amount"`
	PaymentMethod   string         `gorm:"size:50" json:"paymentMethod"`
	TransactionID   string         `gorm:"size:32;uniqueIndex" json:"transactionId"`
	Status          PaymentStatus  `gorm:"size:20;index" json:"status"`
	PaymentDate     time.Time      `json:"paymentDate"`
	GatewayResponse datatypes.JSON `json:"gatewayResponse,omitempty"`
}

// ParsePaymentStatus matches a status case-insensitively and returns the
// canonical form.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for _, valid := range []PaymentStatus{
		PaymentStatusPending,
		PaymentStatusProcessing,
		PaymentStatusCompleted,
		PaymentStatusFailed,
		PaymentStatusRefunded,
	} {
		if strings.EqualFold(s, string(valid)) {
			return valid, nil
		}
	}
	return "", fmt.Errorf("status must be one of: Pending, Processing, Completed, Failed, Refunded")
}
