package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"warehouse-backend/internal/model"
	"warehouse-backend/internal/repository"
	"warehouse-backend/pkg/apperr"
	"warehouse-backend/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// autocompleteColumns maps the public autocomplete field names to their
// columns. Requests for anything else are rejected.
var autocompleteColumns = map[string]string{
	"product-code":     "product_code",
	"product-name":     "product_name",
	"unit":             "unit",
	"batch-no":         "batch_no",
	"grn-no":           "grn_no",
	"sales-invoice-no": "sales_invoice_no",
	"source":           "source",
}

type ProductService interface {
	GetAll() ([]model.Product, error)
	GetByID(id uuid.UUID) (*model.Product, error)
	Save(product *model.Product) (*model.Product, error)
	Delete(id uuid.UUID) error
	Search(term string) ([]model.Product, error)
	FilterByMaterialType(materialType model.MaterialType) ([]model.Product, error)
	FindByName(name string) (*model.Product, error)
	FindByCode(code string) (*model.Product, error)
	Autocomplete(field, term string) ([]string, error)
	AllProductNames() ([]model.ProductName, error)
}

type productService struct {
	products repository.ProductRepository
	names    repository.ProductNameRepository
	db       *gorm.DB
}

func NewProductService(products repository.ProductRepository, names repository.ProductNameRepository, db *gorm.DB) ProductService {
	return &productService{
		products: products,
		names:    names,
		db:       db,
	}
}

func (s *productService) GetAll() ([]model.Product, error) {
	return s.products.FindAll()
}

func (s *productService) GetByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.products.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "Product not found")
	}
	return product, err
}

// Save inserts or fully replaces a product. Quantity is derived from
// packets x qtyPerPacket when omitted, and a previously unseen product name
// is added to the name index within the same database transaction.
// Duplicate product codes are permitted by design.
func (s *productService) Save(product *model.Product) (*model.Product, error) {
	product.CalculateQuantity()
	if product.DateAdded.IsZero() {
		product.DateAdded = time.Now()
	}

	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperr.New(apperr.InvalidInput,
			fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag))
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.products.Save(tx, product); err != nil {
			return err
		}

		exists, err := s.names.ExistsByName(tx, product.ProductName)
		if err != nil {
			return err
		}
		if !exists {
			return s.names.Create(tx, &model.ProductName{Name: product.ProductName})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(id uuid.UUID) error {
	return s.products.Delete(id)
}

func (s *productService) Search(term string) ([]model.Product, error) {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return s.products.FindAll()
	}
	return s.products.Search(trimmed)
}

func (s *productService) FilterByMaterialType(materialType model.MaterialType) ([]model.Product, error) {
	if !materialType.Valid() {
		return nil, apperr.New(apperr.InvalidInput, "Material type must be RM, PM, or FM")
	}
	return s.products.FindByMaterialType(materialType)
}

func (s *productService) FindByName(name string) (*model.Product, error) {
	product, err := s.products.FindFirstByName(name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "Product not found")
	}
	return product, err
}

func (s *productService) FindByCode(code string) (*model.Product, error) {
	product, err := s.products.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "Product not found")
	}
	return product, err
}

func (s *productService) Autocomplete(field, term string) ([]string, error) {
	column, ok := autocompleteColumns[field]
	if !ok {
		return nil, apperr.New(apperr.InvalidInput, "Unknown autocomplete field: "+field)
	}
	return s.products.DistinctValues(column, term)
}

func (s *productService) AllProductNames() ([]model.ProductName, error) {
	return s.names.FindAll()
}
