package model

import "github.com/shopspring/decimal"

type TransactionType string

const (
	TxIn  TransactionType = "IN"
	TxOut TransactionType = "OUT"
)

// Transaction is a stock movement event. Product code and name are plain
// text; they are not required to reference an existing Product row.
type Transaction struct {
	BaseModel
	Barcode      string          `gorm:"type:varchar(100)" json:"barcode"`
	ProductCode  string          `gorm:"type:varchar(100);not null;index" json:"productCode" validate:"required"`
	ProductName  string          `gorm:"type:varchar(255);not null" json:"productName" validate:"required"`
	Quantity     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"` // signed, may be zero
	Unit         string          `gorm:"type:varchar(50);not null" json:"unit" validate:"required"`
	BatchNo      string          `gorm:"type:varchar(100)" json:"batchNo"`
	GrnNo        string          `gorm:"type:varchar(100)" json:"grnNo"`
	MaterialType MaterialType    `gorm:"type:varchar(10);not null" json:"materialType" validate:"required,materialtype"`
	Type         TransactionType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=IN OUT"`
	Party        string          `gorm:"type:varchar(255);not null" json:"party" validate:"required"`
}
