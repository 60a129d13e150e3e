package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	catalogEntity "conputodo.GO/model/entity/catalog"
)

// inStockValues are the truthy in_stock cell values, matched
// case-insensitively. Anything else, including empty, means false.
var inStockValues = map[string]bool{
	"si": true, "yes": true, "true": true, "1": true,
}

// RowError is a per-row rejection. The row is dropped, parsing continues.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e RowError) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ParseResult holds accepted records and per-row errors from one CSV.
type ParseResult struct {
	Records []catalogEntity.Product
	Errors  []RowError
}

// ParseCatalogCSV reads the bulk-import format. Standard CSV grammar:
// quoted fields and embedded commas parse correctly. The header must
// contain both title and price_usd or parsing fails wholesale; extra
// columns are ignored. Accepted rows become published simple products
// whose id and slug derive from the title.
func ParseCatalogCSV(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		colIndex[strings.TrimSpace(strings.ToLower(h))] = i
	}
	if _, ok := colIndex["title"]; !ok {
		return nil, fmt.Errorf("CSV must contain a 'title' column")
	}
	if _, ok := colIndex["price_usd"]; !ok {
		return nil, fmt.Errorf("CSV must contain a 'price_usd' column")
	}

	result := &ParseResult{}
	now := time.Now()
	line := 1

	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, RowError{Line: line, Message: err.Error()})
			continue
		}
		if isBlankRow(row) {
			continue
		}

		rec, rowErr := buildRecord(row, colIndex, now)
		if rowErr != "" {
			result.Errors = append(result.Errors, RowError{Line: line, Message: rowErr})
			continue
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, colIndex map[string]int, name string) string {
	ci, ok := colIndex[name]
	if !ok || ci >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[ci])
}

func buildRecord(row []string, colIndex map[string]int, now time.Time) (catalogEntity.Product, string) {
	title := cell(row, colIndex, "title")
	if title == "" {
		return catalogEntity.Product{}, "missing title"
	}

	priceRaw := cell(row, colIndex, "price_usd")
	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return catalogEntity.Product{}, fmt.Sprintf("invalid price_usd %q", priceRaw)
	}

	id := Sanitize(title)
	if id == "" {
		return catalogEntity.Product{}, fmt.Sprintf("title %q yields an empty id", title)
	}

	inStock := inStockValues[strings.ToLower(cell(row, colIndex, "in_stock"))]

	p := catalogEntity.Product{
		ID:          id,
		Title:       title,
		Slug:        id,
		Category:    cell(row, colIndex, "category"),
		Brand:       cell(row, colIndex, "brand"),
		SKU:         cell(row, colIndex, "sku"),
		Description: cell(row, colIndex, "description"),
		PriceUSD:    price,
		Stock:       FromFlag(inStock).StockValue(),
		InStock:     inStock,
		Status:      catalogEntity.StatusPublished,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.SetTags(splitTags(cell(row, colIndex, "tags"))); err != nil {
		return catalogEntity.Product{}, fmt.Sprintf("encode tags: %v", err)
	}
	if err := p.SetVariants(nil); err != nil {
		return catalogEntity.Product{}, fmt.Sprintf("encode variants: %v", err)
	}
	if err := p.SetSpecs(nil); err != nil {
		return catalogEntity.Product{}, fmt.Sprintf("encode specs: %v", err)
	}
	if err := p.SetImages(catalogEntity.Images{}); err != nil {
		return catalogEntity.Product{}, fmt.Sprintf("encode images: %v", err)
	}
	return p, ""
}

// splitTags splits a tags cell on |, trimming segments and dropping
// empties. Order is kept, duplicates are not collapsed.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "|")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
