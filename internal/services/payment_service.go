package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"invoicing-backend/internal/gateway"
	"invoicing-backend/internal/models"
	"invoicing-backend/internal/repository"
)

// CreatePaymentInput carries the fields accepted on payment creation.
type CreatePaymentInput struct {
	InvoiceID     uint
	Amount        float64
	PaymentMethod string
}

// ListPaymentsInput carries the optional equality filters.
type ListPaymentsInput struct {
	Status        *string
	PaymentMethod *string
}

// PaymentService validates and persists payments and orchestrates the
// invoice-status side effects of paying and refunding.
type PaymentService struct {
	paymentRepo *repository.PaymentRepository
	invoiceRepo *repository.InvoiceRepository
	gateway     gateway.Gateway
	db          *gorm.DB
	log         *zap.Logger
}

func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	invoiceRepo *repository.InvoiceRepository,
	gw gateway.Gateway,
	db *gorm.DB,
	log *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		gateway:     gw,
		db:          db,
		log:         log,
	}
}

func validatePaymentInput(in CreatePaymentInput) error {
	if in.InvoiceID == 0 {
		return fmt.Errorf("%w: invoice id must be greater than zero", ErrValidation)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return fmt.Errorf("%w: payment method is required", ErrValidation)
	}
	return nil
}

// Create records a Pending payment against an existing invoice. The invoice
// status is not touched; ProcessPayment is the orchestrated path.
func (s *PaymentService) Create(in CreatePaymentInput) (*models.Payment, error) {
	if err := validatePaymentInput(in); err != nil {
		return nil, err
	}

	if _, err := s.invoiceRepo.GetByID(in.InvoiceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invoice %d", ErrNotFound, in.InvoiceID)
		}
		return nil, fmt.Errorf("loading invoice: %w", err)
	}

	payment := &models.Payment{
		InvoiceID:     in.InvoiceID,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		TransactionID: generateTransactionID(),
		Status:        models.PaymentStatusPending,
		PaymentDate:   time.Now().UTC(),
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, fmt.Errorf("creating payment: %w", err)
	}

	s.log.Info("payment created",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("invoice_id", payment.InvoiceID),
		zap.String("transaction_id", payment.TransactionID),
	)
	return payment, nil
}

// ProcessPayment pays an invoice end to end: it creates a Processing payment,
// charges the gateway, marks the payment Completed and the invoice Paid. The
// whole sequence runs in one transaction so a failure leaves no partial state.
func (s *PaymentService) ProcessPayment(in CreatePaymentInput) (*models.Payment, error) {
	if err := validatePaymentInput(in); err != nil {
		return nil, err
	}

	var payment *models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		invoiceRepo := s.invoiceRepo.WithTx(tx)
		paymentRepo := s.paymentRepo.WithTx(tx)

		invoice, err := invoiceRepo.GetByID(in.InvoiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: invoice %d", ErrNotFound, in.InvoiceID)
			}
			return fmt.Errorf("loading invoice: %w", err)
		}
		if invoice.Status == models.InvoiceStatusPaid {
			return fmt.Errorf("%w: invoice %d has already been paid", ErrConflict, in.InvoiceID)
		}

		payment = &models.Payment{
			InvoiceID:     in.InvoiceID,
			Amount:        in.Amount,
			PaymentMethod: in.PaymentMethod,
			TransactionID: generateTransactionID(),
			Status:        models.PaymentStatusProcessing,
			PaymentDate:   time.Now().UTC(),
		}
		if err := paymentRepo.Create(payment); err != nil {
			return fmt.Errorf("creating payment: %w", err)
		}

		receipt, err := s.gateway.Charge(payment.TransactionID, payment.Amount, payment.PaymentMethod)
		if err != nil {
			return fmt.Errorf("charging payment: %w", err)
		}

		payment.Status = models.PaymentStatusCompleted
		payment.GatewayResponse = receipt
		if err := paymentRepo.Update(payment); err != nil {
			return fmt.Errorf("completing payment: %w", err)
		}

		invoice.Status = models.InvoiceStatusPaid
		if invoice.PaidAt == nil {
			now := time.Now().UTC()
			invoice.PaidAt = &now
		}
		if err := invoiceRepo.Update(invoice); err != nil {
			return fmt.Errorf("marking invoice paid: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment processed",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("invoice_id", payment.InvoiceID),
		zap.String("transaction_id", payment.TransactionID),
	)
	return payment, nil
}

func (s *PaymentService) UpdateStatus(id uint, status string) (*models.Payment, error) {
	parsed, err := models.ParsePaymentStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("loading payment: %w", err)
	}

	payment.Status = parsed
	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, fmt.Errorf("updating payment: %w", err)
	}
	return payment, nil
}

// Refund flips a payment and its invoice to Refunded. It reports false when
// the payment does not exist and ErrConflict when it was already refunded.
func (s *PaymentService) Refund(paymentID uint) (bool, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("loading payment: %w", err)
	}
	if payment.Status == models.PaymentStatusRefunded {
		return false, fmt.Errorf("%w: payment %d has already been refunded", ErrConflict, paymentID)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		invoiceRepo := s.invoiceRepo.WithTx(tx)
		paymentRepo := s.paymentRepo.WithTx(tx)

		payment.Status = models.PaymentStatusRefunded
		if err := paymentRepo.Update(payment); err != nil {
			return fmt.Errorf("refunding payment: %w", err)
		}

		invoice, err := invoiceRepo.GetByID(payment.InvoiceID)
		if err != nil {
			return fmt.Errorf("loading invoice for refund: %w", err)
		}
		invoice.Status = models.InvoiceStatusRefunded
		if err := invoiceRepo.Update(invoice); err != nil {
			return fmt.Errorf("marking invoice refunded: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	s.log.Info("payment refunded",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("invoice_id", payment.InvoiceID),
	)
	return true, nil
}

// Delete removes a payment, reporting whether it existed.
func (s *PaymentService) Delete(id uint) (bool, error) {
	found, err := s.paymentRepo.Delete(id)
	if err != nil {
		return false, fmt.Errorf("deleting payment: %w", err)
	}
	return found, nil
}

func (s *PaymentService) GetByID(id uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("loading payment: %w", err)
	}
	return payment, nil
}

func (s *PaymentService) GetByTransactionID(transactionID string) (*models.Payment, error) {
	if strings.TrimSpace(transactionID) == "" {
		return nil, fmt.Errorf("%w: transaction id is required", ErrValidation)
	}
	payment, err := s.paymentRepo.GetByTransactionID(transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transaction %q", ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("loading payment: %w", err)
	}
	return payment, nil
}

func (s *PaymentService) ListByInvoice(invoiceID uint) ([]models.Payment, error) {
	if invoiceID == 0 {
		return nil, fmt.Errorf("%w: invoice id must be greater than zero", ErrValidation)
	}
	payments, err := s.paymentRepo.ListByInvoice(invoiceID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	return payments, nil
}

func (s *PaymentService) List(in ListPaymentsInput) ([]models.Payment, error) {
	filter := repository.PaymentFilter{PaymentMethod: in.PaymentMethod}
	if in.Status != nil {
		status, err := models.ParsePaymentStatus(*in.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		filter.Status = &status
	}

	payments, err := s.paymentRepo.Find(filter)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	return payments, nil
}
