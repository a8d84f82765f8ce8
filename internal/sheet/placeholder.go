package sheet

import (
	"fmt"
	"net/url"

	"sanjuan-construye/internal/domain"
)

// placeholderColors maps each category to the hex color used when a product
// has no usable image of its own.
var placeholderColors = map[domain.Category]string{
	domain.CategoryHerramientas: "0047AB",
	domain.CategoryMateriales:   "0056D2",
	domain.CategoryPintura:      "EF6C00",
	domain.CategoryElectricidad: "2E7D32",
	domain.CategoryPlomeria:     "D32F2F",
	domain.CategoryFerreteria:   "0288D1",
}

// neutralColor is used for categories outside the known set.
const neutralColor = "9CA3AF"

const placeholderNameLimit = 20

// PlaceholderURL builds a deterministic placeholder image URL for a product.
// The product name is truncated and embedded as the image text, and the
// background color is keyed on the category.
func PlaceholderURL(name string, category domain.Category) string {
	color, ok := placeholderColors[category]
	if !ok {
		color = neutralColor
	}

	runes := []rune(name)
	if len(runes) > placeholderNameLimit {
		runes = runes[:placeholderNameLimit]
	}

	return fmt.Sprintf("https://placehold.co/300x300/%s/FFFFFF?text=%s", color, url.QueryEscape(string(runes)))
}

// resolveImage returns imageURL if it is a syntactically valid absolute URL,
// otherwise a generated placeholder for the product.
func resolveImage(imageURL, name string, category domain.Category) string {
	if imageURL == "" {
		return PlaceholderURL(name, category)
	}

	u, err := url.Parse(imageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return PlaceholderURL(name, category)
	}

	return imageURL
}
