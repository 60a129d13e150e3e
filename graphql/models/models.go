package models

// View models for the GraphQL schema. Field names match schema fields
// case-insensitively (graphql-go UseFieldResolvers).

type Product struct {
	ID          string
	Title       string
	Slug        string
	Category    string
	Brand       *string
	SKU         *string
	Description *string
	PriceUsd    float64
	PriceVes    float64
	Stock       int32
	InStock     bool
	Status      string
	IsFeatured  bool
	Tags        []string
	Specs       []*Spec
	Images      *Images
	Variants    []*Variant
	Version     int32
}

type Variant struct {
	ID       string
	Name     string
	PriceUsd float64
	Stock    int32
	SKU      *string
}

type Spec struct {
	Key   string
	Value string
}

type Images struct {
	Main    *string
	Gallery []string
}

type ProductList struct {
	Items      []*Product
	TotalCount int32
	PageInfo   *PageInfo
}

type PageInfo struct {
	PageSize    int32
	CurrentPage int32
	TotalPages  int32
}

type StoreSettings struct {
	ExchangeRate    float64
	ExchangeRateBcv float64
	HeroImage       *string
	NewsText        *string
}
