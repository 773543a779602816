package repository

import (
	"time"

	"gorm.io/gorm"

	"invoicing-backend/internal/models"
)

// InvoiceFilter narrows List results. Nil fields are ignored.
type InvoiceFilter struct {
	Status        *models.InvoiceStatus
	CustomerEmail *string
	DueDateFrom   *time.Time
	DueDateTo     *time.Time
	MinAmount     *float64
	MaxAmount     *float64
}

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// DB exposes the underlying connection for transaction management.
func (r *InvoiceRepository) DB() *gorm.DB {
	return r.db
}

// WithTx returns a repository bound to the given transaction.
func (r *InvoiceRepository) WithTx(tx *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: tx}
}

func (r *InvoiceRepository) GetByID(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) GetByNumber(invoiceNumber string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.First(&invoice, "invoice_number = ?", invoiceNumber).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) GetAll() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.Order("created_at DESC").Find(&invoices).Error
	return invoices, err
}

// Find applies the optional filters at the database.
func (r *InvoiceRepository) Find(filter InvoiceFilter) ([]models.Invoice, error) {
	query := r.db.Model(&models.Invoice{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CustomerEmail != nil {
		query = query.Where("customer_email = ?", *filter.CustomerEmail)
	}
	if filter.DueDateFrom != nil {
		query = query.Where("due_date >= ?", *filter.DueDateFrom)
	}
	if filter.DueDateTo != nil {
		query = query.Where("due_date <= ?", *filter.DueDateTo)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}

	var invoices []models.Invoice
	err := query.Order("created_at DESC").Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) Create(invoice *models.Invoice) error {
	return r.db.Create(invoice).Error
}

func (r *InvoiceRepository) Update(invoice *models.Invoice) error {
	return r.db.Save(invoice).Error
}

// Delete removes an invoice by id, reporting whether a row was deleted.
func (r *InvoiceRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Invoice{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
