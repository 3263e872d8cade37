package model

import "time"

type Product struct {
	BaseModel
	// Duplicate product codes are permitted, so no unique index here.
	ProductCode    string       `gorm:"type:varchar(100);not null;index" json:"productCode" validate:"required"`
	ProductName    string       `gorm:"type:varchar(255);not null;index" json:"productName" validate:"required"`
	Packets        float64      `gorm:"default:0" json:"packets" validate:"gte=0"`
	QtyPerPacket   float64      `gorm:"default:0" json:"qtyPerPacket" validate:"gte=0"`
	Quantity       *float64     `gorm:"not null" json:"quantity" validate:"required,gte=0"`
	Unit           string       `gorm:"type:varchar(50);not null" json:"unit" validate:"required"`
	BatchNo        string       `gorm:"type:varchar(100)" json:"batchNo"`
	GrnNo          string       `gorm:"type:varchar(100)" json:"grnNo"`
	SalesInvoiceNo string       `gorm:"type:varchar(100)" json:"salesInvoiceNo"`
	MaterialType   MaterialType `gorm:"type:varchar(10);not null" json:"materialType" validate:"required,materialtype"`
	Source         string       `gorm:"type:varchar(255);not null" json:"source" validate:"required"`
	DateAdded      time.Time    `json:"dateAdded"`
}

// CalculateQuantity derives quantity from packets when it was not supplied.
func (p *Product) CalculateQuantity() {
	if p.Quantity == nil {
		q := p.Packets * p.QtyPerPacket
		p.Quantity = &q
	}
}
