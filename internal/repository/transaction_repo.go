package repository

import (
	"time"

	"warehouse-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionFilter holds the optional query criteria. A nil field never
// narrows the result; all filters combine independently.
type TransactionFilter struct {
	Type         *model.TransactionType
	MaterialType *model.MaterialType
	StartDate    *time.Time
	EndDate      *time.Time
	Party        *string
	ProductName  *string
}

type TransactionRepository interface {
	Save(tx *gorm.DB, transaction *model.Transaction) error
	SaveAll(tx *gorm.DB, transactions []model.Transaction) error
	FindAll() ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindFiltered(filter TransactionFilter, page, size int) ([]model.Transaction, int64, error)
	FindForExport(filter TransactionFilter) ([]model.Transaction, error)
	Delete(id uuid.UUID) error
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Save(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Save(transaction).Error
}

func (r *transactionRepo) SaveAll(tx *gorm.DB, transactions []model.Transaction) error {
	return tx.Create(&transactions).Error
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.First(&transaction, "id = ?", id).Error
	return &transaction, err
}

// applyFilter translates the optional criteria into WHERE clauses. Exact
// filters are equality matches, the date range is inclusive on both ends,
// substring filters match case-insensitively.
func applyFilter(db *gorm.DB, filter TransactionFilter) *gorm.DB {
	if filter.Type != nil {
		db = db.Where("type = ?", *filter.Type)
	}
	if filter.MaterialType != nil {
		db = db.Where("material_type = ?", *filter.MaterialType)
	}
	if filter.StartDate != nil {
		db = db.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		db = db.Where("created_at <= ?", *filter.EndDate)
	}
	if filter.Party != nil {
		db = db.Where("LOWER(party) LIKE LOWER(?)", "%"+*filter.Party+"%")
	}
	if filter.ProductName != nil {
		db = db.Where("LOWER(product_name) LIKE LOWER(?)", "%"+*filter.ProductName+"%")
	}
	return db
}

func (r *transactionRepo) FindFiltered(filter TransactionFilter, page, size int) ([]model.Transaction, int64, error) {
	var transactions []model.Transaction
	var total int64

	query := applyFilter(r.db.Model(&model.Transaction{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(page * size).
		Limit(size).
		Find(&transactions).Error
	return transactions, total, err
}

func (r *transactionRepo) FindForExport(filter TransactionFilter) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := applyFilter(r.db.Model(&model.Transaction{}), filter).
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Transaction{}, "id = ?", id).Error
}
