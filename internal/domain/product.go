package domain

// Category is a product category. The catalog keeps the Spanish category
// names used in the spreadsheet.
type Category string

const (
	CategoryHerramientas Category = "herramientas"
	CategoryMateriales   Category = "materiales"
	CategoryPintura      Category = "pintura"
	CategoryElectricidad Category = "electricidad"
	CategoryPlomeria     Category = "plomeria"
	CategoryFerreteria   Category = "ferreteria"
)

// DefaultCategory is assigned when a row carries an unknown or empty category.
const DefaultCategory = CategoryFerreteria

var validCategories = map[Category]bool{
	CategoryHerramientas: true,
	CategoryMateriales:   true,
	CategoryPintura:      true,
	CategoryElectricidad: true,
	CategoryPlomeria:     true,
	CategoryFerreteria:   true,
}

// Valid reports whether c is one of the six known categories.
func (c Category) Valid() bool {
	return validCategories[c]
}

// Product represents a product in the catalog. Products are rebuilt from
// scratch on every ingestion run; there is no update-in-place.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Discount    int      `json:"discount"` // percentage off, 0 means no promotion
	Category    Category `json:"category"`
	ImageURL    string   `json:"image_url"`
	Stock       int      `json:"stock"`
	SKU         string   `json:"sku"`
}

// OnSale reports whether the product has an active promotion.
func (p *Product) OnSale() bool {
	return p.Discount > 0
}

// FinalPrice returns the unit price with any promotion applied.
func (p *Product) FinalPrice() float64 {
	if p.Discount > 0 {
		return p.Price * (1 - float64(p.Discount)/100)
	}
	return p.Price
}
