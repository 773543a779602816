package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"invoicing-backend/internal/models"
	"invoicing-backend/internal/repository"
)

// CreateInvoiceInput carries the fields accepted on invoice creation.
type CreateInvoiceInput struct {
	InvoiceNumber string
	Amount        float64
	DueDate       time.Time
	CustomerName  string
	CustomerEmail string
}

// UpdateInvoiceInput is a partial update: nil fields are left unchanged.
type UpdateInvoiceInput struct {
	InvoiceNumber *string
	Amount        *float64
	DueDate       *time.Time
	Status        *string
}

// ListInvoicesInput carries the optional list filters as raw query values.
type ListInvoicesInput struct {
	Status        *string
	CustomerEmail *string
	DueDateFrom   *time.Time
	DueDateTo     *time.Time
	MinAmount     *float64
	MaxAmount     *float64
}

// InvoiceService validates and applies invoice lifecycle transitions.
type InvoiceService struct {
	invoiceRepo *repository.InvoiceRepository
	log         *zap.Logger
}

func NewInvoiceService(invoiceRepo *repository.InvoiceRepository, log *zap.Logger) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo, log: log}
}

func (s *InvoiceService) Create(in CreateInvoiceInput) (*models.Invoice, error) {
	if err := validateInvoiceNumber(in.InvoiceNumber); err != nil {
		return nil, err
	}
	if err := validateInvoiceAmount(in.Amount); err != nil {
		return nil, err
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if in.DueDate.Before(today) {
		return nil, fmt.Errorf("%w: due date cannot be in the past", ErrValidation)
	}

	existing, err := s.invoiceRepo.GetByNumber(in.InvoiceNumber)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking invoice number: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: invoice with number %q already exists", ErrConflict, in.InvoiceNumber)
	}

	invoice := &models.Invoice{
		InvoiceNumber: in.InvoiceNumber,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		Amount:        in.Amount,
		Status:        models.InvoiceStatusPending,
		DueDate:       in.DueDate,
	}
	if err := s.invoiceRepo.Create(invoice); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: invoice with number %q already exists", ErrConflict, in.InvoiceNumber)
		}
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	s.log.Info("invoice created",
		zap.Uint("invoice_id", invoice.ID),
		zap.String("invoice_number", invoice.InvoiceNumber),
	)
	return invoice, nil
}

func (s *InvoiceService) Update(id uint, in UpdateInvoiceInput) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invoice %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("loading invoice: %w", err)
	}

	if in.InvoiceNumber != nil {
		if err := validateInvoiceNumber(*in.InvoiceNumber); err != nil {
			return nil, err
		}
		duplicate, err := s.invoiceRepo.GetByNumber(*in.InvoiceNumber)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("checking invoice number: %w", err)
		}
		if duplicate != nil && duplicate.ID != id {
			return nil, fmt.Errorf("%w: invoice with number %q already exists", ErrConflict, *in.InvoiceNumber)
		}
		invoice.InvoiceNumber = *in.InvoiceNumber
	}

	if in.Amount != nil {
		if err := validateInvoiceAmount(*in.Amount); err != nil {
			return nil, err
		}
		invoice.Amount = *in.Amount
	}

	if in.DueDate != nil {
		invoice.DueDate = *in.DueDate
	}

	if in.Status != nil {
		status, err := models.ParseInvoiceStatus(*in.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		invoice.Status = status

		// PaidAt records the first transition to Paid and is never overwritten.
		if status == models.InvoiceStatusPaid && invoice.PaidAt == nil {
			now := time.Now().UTC()
			invoice.PaidAt = &now
		}
	}

	if err := s.invoiceRepo.Update(invoice); err != nil {
		return nil, fmt.Errorf("updating invoice: %w", err)
	}
	return invoice, nil
}

// Delete removes an invoice, reporting whether it existed.
func (s *InvoiceService) Delete(id uint) (bool, error) {
	found, err := s.invoiceRepo.Delete(id)
	if err != nil {
		return false, fmt.Errorf("deleting invoice: %w", err)
	}
	return found, nil
}

func (s *InvoiceService) GetByID(id uint) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invoice %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("loading invoice: %w", err)
	}
	return invoice, nil
}

func (s *InvoiceService) GetByNumber(invoiceNumber string) (*models.Invoice, error) {
	if err := validateInvoiceNumber(invoiceNumber); err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.GetByNumber(invoiceNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invoice %q", ErrNotFound, invoiceNumber)
		}
		return nil, fmt.Errorf("loading invoice: %w", err)
	}
	return invoice, nil
}

func (s *InvoiceService) List(in ListInvoicesInput) ([]models.Invoice, error) {
	filter := repository.InvoiceFilter{
		CustomerEmail: in.CustomerEmail,
		DueDateFrom:   in.DueDateFrom,
		DueDateTo:     in.DueDateTo,
		MinAmount:     in.MinAmount,
		MaxAmount:     in.MaxAmount,
	}
	if in.Status != nil {
		status, err := parseInvoiceStatusFilter(*in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}

	invoices, err := s.invoiceRepo.Find(filter)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	return invoices, nil
}
