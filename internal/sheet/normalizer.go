package sheet

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"sanjuan-construye/internal/domain"
)

// field identifies a Product field a spreadsheet column can map to.
type field int

const (
	fieldID field = iota
	fieldName
	fieldDescription
	fieldPrice
	fieldDiscount
	fieldCategory
	fieldImage
	fieldStock
)

// headerFields maps accepted header synonyms (lowercased, trimmed) to the
// Product field they fill. The sheet is maintained in Spanish but English
// headers are accepted too. Headers outside this table are ignored.
var headerFields = map[string]field{
	"id":     fieldID,
	"codigo": fieldID,
	"cod":    fieldID,

	"nombre": fieldName,
	"name":   fieldName,
	"titulo": fieldName,

	"descripcion": fieldDescription,
	"description": fieldDescription,
	"desc":        fieldDescription,

	"precio": fieldPrice,
	"price":  fieldPrice,
	"cost":   fieldPrice,

	"promocion": fieldDiscount,
	"promo":     fieldDiscount,
	"descuento": fieldDiscount,
	"discount":  fieldDiscount,

	"categoria": fieldCategory,
	"category":  fieldCategory,
	"cat":       fieldCategory,

	"imagen": fieldImage,
	"image":  fieldImage,
	"foto":   fieldImage,
	"url":    fieldImage,

	"stock":      fieldStock,
	"inventario": fieldStock,
	"cantidad":   fieldStock,
}

// NormalizeRow maps one spreadsheet row onto a validated Product. Cells are
// matched to fields through the header synonym table; malformed numeric cells
// degrade to zero rather than rejecting the row. The only hard validations
// are a non-empty name and a positive price: rows failing either return nil.
func NormalizeRow(values []any, headers []string) *domain.Product {
	p := &domain.Product{Category: domain.DefaultCategory}

	for i, header := range headers {
		f, ok := headerFields[strings.ToLower(strings.TrimSpace(header))]
		if !ok {
			continue
		}

		var value any
		if i < len(values) {
			value = values[i]
		}

		switch f {
		case fieldID:
			// Both the id and codigo columns land here: the first numeric
			// value becomes the id, and the raw value is kept as the SKU
			// even when it is not numeric.
			if id := parseID(value); p.ID == 0 && id > 0 {
				p.ID = id
			}
			if s := cellString(value); s != "" {
				p.SKU = s
			}
		case fieldName:
			p.Name = cellString(value)
		case fieldDescription:
			p.Description = cellString(value)
		case fieldPrice:
			p.Price = parseFloatCell(value)
		case fieldDiscount:
			p.Discount = parseIntCell(value)
		case fieldCategory:
			p.Category = domain.Category(strings.ToLower(cellString(value)))
		case fieldImage:
			p.ImageURL = cellString(value)
		case fieldStock:
			p.Stock = parseIntCell(value)
		}
	}

	return finalize(p)
}

// NormalizeRecord maps one already header-keyed record, as returned by the
// Apps Script endpoint, onto a validated Product. The same hard validations
// as NormalizeRow apply.
func NormalizeRecord(rec map[string]any) *domain.Product {
	p := &domain.Product{
		ID:          parseID(rec["id"]),
		Name:        cellString(rec["nombre"]),
		Description: cellString(rec["descripcion"]),
		Price:       parseFloatCell(rec["precio"]),
		Discount:    parseIntCell(rec["promocion"]),
		Category:    domain.Category(strings.ToLower(cellString(rec["categoria"]))),
		ImageURL:    cellString(rec["imagen"]),
		Stock:       parseIntCell(rec["stock"]),
		SKU:         cellString(rec["codigo"]),
	}
	if p.Category == "" {
		p.Category = domain.DefaultCategory
	}

	return finalize(p)
}

// finalize applies the post-processing pass shared by both sources: hard
// validation, id generation, category coercion and image resolution.
func finalize(p *domain.Product) *domain.Product {
	if p.Name == "" || p.Price <= 0 {
		return nil
	}

	if p.ID == 0 {
		p.ID = GenerateID()
	}

	if !p.Category.Valid() {
		p.Category = domain.DefaultCategory
	}

	p.ImageURL = resolveImage(p.ImageURL, p.Name, p.Category)

	return p
}

// GenerateID produces a product id for rows that do not carry a numeric one.
// Uniqueness within a snapshot is best-effort, matching the sheet's own
// loose id discipline.
func GenerateID() int64 {
	return time.Now().UnixMilli() + rand.Int63n(1000)
}

func parseID(v any) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(cellString(v)), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// cellString renders a spreadsheet cell as a trimmed string. Cells arrive
// from JSON either as strings or as numbers.
func cellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(c)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case bool:
		return strconv.FormatBool(c)
	default:
		return ""
	}
}

// parseFloatCell parses a numeric cell, degrading to 0 on malformed input.
func parseFloatCell(v any) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	f, err := strconv.ParseFloat(cellString(v), 64)
	if err != nil {
		return 0
	}
	return f
}

// parseIntCell parses an integer cell, degrading to 0 on malformed input.
func parseIntCell(v any) int {
	return int(parseFloatCell(v))
}
