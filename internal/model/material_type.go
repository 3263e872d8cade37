package model

// MaterialType is the closed set of material categories. The same type is
// used on both products and transactions; the transaction table historically
// stored it as free text checked against RM|PM|FM, which this unifies.
type MaterialType string

const (
	MaterialRaw      MaterialType = "RM"
	MaterialPacking  MaterialType = "PM"
	MaterialFinished MaterialType = "FM"
)

func (m MaterialType) Valid() bool {
	switch m {
	case MaterialRaw, MaterialPacking, MaterialFinished:
		return true
	}
	return false
}

func (m MaterialType) DisplayName() string {
	switch m {
	case MaterialRaw:
		return "Raw Materials"
	case MaterialPacking:
		return "Packing Materials"
	case MaterialFinished:
		return "Finished Materials"
	}
	return string(m)
}
