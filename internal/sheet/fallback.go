package sheet

import "sanjuan-construye/internal/domain"

// FallbackProducts returns the embedded catalog shown when neither data
// source nor the cache can produce products. The list mirrors the store's
// usual stock so the storefront stays usable offline.
func FallbackProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          1,
			Name:        "Taladro Black & Decker 1/2 HP",
			Description: "Taladro de 1/2 HP con mandril de 13mm. Ideal para trabajos pesados.",
			Price:       8500,
			Discount:    15,
			Category:    domain.CategoryHerramientas,
			ImageURL:    "https://placehold.co/300x300/0047AB/FFFFFF?text=Taladro",
			Stock:       15,
			SKU:         "TAL001",
		},
		{
			ID:          2,
			Name:        "Cemento Portland 50kg",
			Description: "Cemento Portland tipo I para obras generales. Resistente y duradero.",
			Price:       3200,
			Discount:    0,
			Category:    domain.CategoryMateriales,
			ImageURL:    "https://placehold.co/300x300/0056D2/FFFFFF?text=Cemento",
			Stock:       50,
			SKU:         "MAT001",
		},
		{
			ID:          3,
			Name:        "Pintura Látex Blanca 20L",
			Description: "Pintura látex interior blanca de alta cobertura. Rendimiento superior.",
			Price:       4500,
			Discount:    20,
			Category:    domain.CategoryPintura,
			ImageURL:    "https://placehold.co/300x300/EF6C00/FFFFFF?text=Pintura",
			Stock:       25,
			SKU:         "PIN001",
		},
		{
			ID:          4,
			Name:        "Cable Eléctrico 2.5mm x 100m",
			Description: "Cable eléctrico preaislado 2.5mm². Cumple normas IRAM.",
			Price:       2800,
			Discount:    10,
			Category:    domain.CategoryElectricidad,
			ImageURL:    "https://placehold.co/300x300/2E7D32/FFFFFF?text=Cable",
			Stock:       30,
			SKU:         "ELE001",
		},
		{
			ID:          5,
			Name:        "Tubo PVC 110mm x 4m",
			Description: "Tubo PVC sanitario 110mm para desagües. Fácil instalación.",
			Price:       1850,
			Discount:    0,
			Category:    domain.CategoryPlomeria,
			ImageURL:    "https://placehold.co/300x300/D32F2F/FFFFFF?text=PVC",
			Stock:       40,
			SKU:         "PLO001",
		},
		{
			ID:          6,
			Name:        "Tornillos Autoperforantes x100",
			Description: "Tornillos autoperforantes 1/4\" x 20mm. Acero templado.",
			Price:       450,
			Discount:    25,
			Category:    domain.CategoryFerreteria,
			ImageURL:    "https://placehold.co/300x300/0288D1/FFFFFF?text=Tornillos",
			Stock:       80,
			SKU:         "FER001",
		},
	}
}
