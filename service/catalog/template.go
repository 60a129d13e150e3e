package catalog

import "strings"

// TemplateFilename is the download name for the import template.
const TemplateFilename = "plantilla_conputodo.csv"

// templateColumns is the import format, in this exact order. tags cells
// use | as the internal separator.
var templateColumns = []string{
	"title", "price_usd", "category", "brand", "in_stock", "sku", "description", "tags",
}

var templateExampleRow = []string{
	"Laptop HP 15", "499.99", "Laptops", "HP", "si", "HP15-001", "Laptop HP de 15 pulgadas", "oferta|nuevo",
}

// BuildTemplate returns the CSV import template: header row plus one
// example row, CRLF line endings, ready for direct download.
func BuildTemplate() string {
	lines := []string{
		strings.Join(templateColumns, ","),
		strings.Join(templateExampleRow, ","),
	}
	return strings.Join(lines, "\r\n") + "\r\n"
}
