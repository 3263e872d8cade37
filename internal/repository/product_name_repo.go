package repository

import (
	"warehouse-backend/internal/model"

	"gorm.io/gorm"
)

type ProductNameRepository interface {
	ExistsByName(tx *gorm.DB, name string) (bool, error)
	Create(tx *gorm.DB, productName *model.ProductName) error
	FindAll() ([]model.ProductName, error)
}

type productNameRepo struct {
	db *gorm.DB
}

func NewProductNameRepo(db *gorm.DB) ProductNameRepository {
	return &productNameRepo{db}
}

func (r *productNameRepo) ExistsByName(tx *gorm.DB, name string) (bool, error) {
	var count int64
	err := tx.Model(&model.ProductName{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *productNameRepo) Create(tx *gorm.DB, productName *model.ProductName) error {
	return tx.Create(productName).Error
}

func (r *productNameRepo) FindAll() ([]model.ProductName, error) {
	var names []model.ProductName
	err := r.db.Order("name ASC").Find(&names).Error
	return names, err
}
