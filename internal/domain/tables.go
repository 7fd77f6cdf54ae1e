package domain

// CatalogProduct is the SQL row backing a product when the catalog is read from a database
type CatalogProduct struct {
	ID          string  `gorm:"primaryKey;size:64" json:"id"`
	Position    int     `gorm:"index" json:"position"`
	Name        string  `gorm:"size:200;index" json:"name"`
	Brand       string  `gorm:"size:200;index" json:"brand"`
	Category    string  `gorm:"size:32;index" json:"category"`
	RiskLevel   string  `gorm:"size:16;index" json:"risk_level"`
	Description string  `gorm:"type:text" json:"description"`
	Image       string  `gorm:"size:1024" json:"image"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
}

// TableName Specify table name
func (CatalogProduct) TableName() string {
	return "catalog_product"
}

// CatalogProductChemical links a chemical name to a product, keeping its display order
type CatalogProductChemical struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID string `gorm:"size:64;index;uniqueIndex:idx_product_chemical_pos" json:"product_id"`
	Position  int    `gorm:"uniqueIndex:idx_product_chemical_pos" json:"position"`
	Name      string `gorm:"size:200;index" json:"name"`
}

// TableName Specify table name
func (CatalogProductChemical) TableName() string {
	return "catalog_product_chemical"
}

var Tables = []interface{}{
	&CatalogProduct{},
	&CatalogProductChemical{},
}

// ToRows splits a product into its product row and ordered chemical rows
func (p Product) ToRows(position int) (CatalogProduct, []CatalogProductChemical) {
	row := CatalogProduct{
		ID:          p.ID,
		Position:    position,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    string(p.Category),
		RiskLevel:   string(p.RiskLevel),
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
	}
	chems := make([]CatalogProductChemical, 0, len(p.HarmfulChemicals))
	for i, name := range p.HarmfulChemicals {
		chems = append(chems, CatalogProductChemical{ProductID: p.ID, Position: i, Name: name})
	}
	return row, chems
}

// ToProduct rebuilds a product from its row; chems must already be in position order
func (r CatalogProduct) ToProduct(chems []CatalogProductChemical) Product {
	names := make([]string, 0, len(chems))
	for _, c := range chems {
		names = append(names, c.Name)
	}
	return Product{
		ID:               r.ID,
		Name:             r.Name,
		Brand:            r.Brand,
		Category:         Category(r.Category),
		RiskLevel:        RiskLevel(r.RiskLevel),
		HarmfulChemicals: names,
		Description:      r.Description,
		Image:            r.Image,
		Price:            r.Price,
		Rating:           r.Rating,
		Reviews:          r.Reviews,
	}
}
