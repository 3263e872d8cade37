package model

// ProductName is a deduplicated index of every product name ever saved,
// kept purely to power name autocomplete. Rows are never deleted.
type ProductName struct {
	BaseModel
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
}
