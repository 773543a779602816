package repository

import (
	"gorm.io/gorm"

	"invoicing-backend/internal/models"
)

// PaymentFilter narrows List results. Nil fields are ignored.
type PaymentFilter struct {
	Status        *models.PaymentStatus
	PaymentMethod *string
}

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *PaymentRepository) WithTx(tx *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: tx}
}

func (r *PaymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) GetByTransactionID(transactionID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "transaction_id = ?", transactionID).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) GetAll() ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Order("payment_date DESC").Find(&payments).Error
	return payments, err
}

func (r *PaymentRepository) ListByInvoice(invoiceID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("invoice_id = ?", invoiceID).Order("payment_date DESC").Find(&payments).Error
	return payments, err
}

// Find applies the optional equality filters at the database.
func (r *PaymentRepository) Find(filter PaymentFilter) ([]models.Payment, error) {
	query := r.db.Model(&models.Payment{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *filter.PaymentMethod)
	}

	var payments []models.Payment
	err := query.Order("payment_date DESC").Find(&payments).Error
	return payments, err
}

func (r *PaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepository) Update(payment *models.Payment) error {
	return r.db.Save(payment).Error
}

// Delete removes a payment by id, reporting whether a row was deleted.
func (r *PaymentRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&models.Payment{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
