package entity

// SizeTier is one size label and its price per piece in Rupiah.
type SizeTier struct {
	Size  string `bson:"size" json:"size"`
	Price int64  `bson:"price" json:"price"`
}

type Product struct {
	Base        `bson:",inline"`
	Category    string     `bson:"category" json:"category"`
	Name        string     `bson:"name" json:"name"`
	Description string     `bson:"description" json:"description"`
	Photo       string     `bson:"photo,omitempty" json:"photo,omitempty"`
	Tiers       []SizeTier `bson:"tiers" json:"tiers"`
}

// PriceFor looks up the unit price of an exact size label.
func (p *Product) PriceFor(size string) (int64, bool) {
	for _, t := range p.Tiers {
		if t.Size == size {
			return t.Price, true
		}
	}
	return 0, false
}
