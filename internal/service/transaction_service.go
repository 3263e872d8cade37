package service

import (
	"errors"
	"fmt"

	"warehouse-backend/internal/model"
	"warehouse-backend/internal/repository"
	"warehouse-backend/pkg/apperr"
	"warehouse-backend/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Page mirrors the offset-based page shape the transaction listing returns.
type Page struct {
	Content       []model.Transaction `json:"content"`
	Page          int                 `json:"page"`
	Size          int                 `json:"size"`
	TotalElements int64               `json:"totalElements"`
	TotalPages    int                 `json:"totalPages"`
}

type TransactionService interface {
	GetAll() ([]model.Transaction, error)
	GetByID(id uuid.UUID) (*model.Transaction, error)
	Save(transaction *model.Transaction) (*model.Transaction, error)
	SaveAll(transactions []model.Transaction) (int, error)
	Delete(id uuid.UUID) error
	Filtered(filter repository.TransactionFilter, page, size int) (*Page, error)
	Export(filter repository.TransactionFilter) ([]model.Transaction, error)
}

type transactionService struct {
	transactions repository.TransactionRepository
	db           *gorm.DB
}

func NewTransactionService(transactions repository.TransactionRepository, db *gorm.DB) TransactionService {
	return &transactionService{
		transactions: transactions,
		db:           db,
	}
}

func (s *transactionService) GetAll() ([]model.Transaction, error) {
	return s.transactions.FindAll()
}

func (s *transactionService) GetByID(id uuid.UUID) (*model.Transaction, error) {
	transaction, err := s.transactions.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "Transaction not found")
	}
	return transaction, err
}

func (s *transactionService) Save(transaction *model.Transaction) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(transaction); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperr.New(apperr.InvalidInput,
			fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag))
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.transactions.Save(tx, transaction)
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// SaveAll persists the rows the importer already validated in one database
// transaction and reports how many were written. The material-type pattern
// is deliberately not re-checked here; bulk rows carry it as-is, matching
// the loose text column the transaction table always had.
func (s *transactionService) SaveAll(transactions []model.Transaction) (int, error) {
	if len(transactions) == 0 {
		return 0, nil
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.transactions.SaveAll(tx, transactions)
	})
	if err != nil {
		return 0, err
	}
	return len(transactions), nil
}

func (s *transactionService) Delete(id uuid.UUID) error {
	return s.transactions.Delete(id)
}

func (s *transactionService) Filtered(filter repository.TransactionFilter, page, size int) (*Page, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}

	content, total, err := s.transactions.FindFiltered(filter, page, size)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / size
	if int(total)%size != 0 {
		totalPages++
	}
	return &Page{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

func (s *transactionService) Export(filter repository.TransactionFilter) ([]model.Transaction, error) {
	return s.transactions.FindForExport(filter)
}
