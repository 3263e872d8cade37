package repository

import (
	"warehouse-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Save(tx *gorm.DB, product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByCode(code string) (*model.Product, error)
	FindFirstByName(name string) (*model.Product, error)
	FindByMaterialType(materialType model.MaterialType) ([]model.Product, error)
	Search(term string) ([]model.Product, error)
	DistinctValues(column, term string) ([]string, error)
	Delete(id uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// Save takes tx so the write can share a transaction with the name index
func (r *productRepo) Save(tx *gorm.DB, product *model.Product) error {
	return tx.Save(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByCode(code string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "product_code = ?", code).Error
	return &product, err
}

func (r *productRepo) FindFirstByName(name string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "product_name = ?", name).Error
	return &product, err
}

func (r *productRepo) FindByMaterialType(materialType model.MaterialType) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("material_type = ?", materialType).Find(&products).Error
	return products, err
}

func (r *productRepo) Search(term string) ([]model.Product, error) {
	var products []model.Product
	pattern := "%" + term + "%"
	err := r.db.
		Where("product_name LIKE ? OR product_code LIKE ?", pattern, pattern).
		Find(&products).Error
	return products, err
}

// DistinctValues returns the distinct non-empty values of a column prefixed
// by term, for autocomplete. The column name always comes from a fixed map
// in the service layer, never from user input.
func (r *productRepo) DistinctValues(column, term string) ([]string, error) {
	var values []string
	err := r.db.Model(&model.Product{}).
		Distinct(column).
		Where(column+" IS NOT NULL AND "+column+" <> ''").
		Where(column+" LIKE ?", term+"%").
		Order(column).
		Pluck(column, &values).Error
	return values, err
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}
