package catalog

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Product lifecycle states.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
	StatusHidden    = "hidden"
	StatusTrash     = "trash"
)

// Variant is one purchasable configuration of a product. Variants live
// inside the parent product's JSON column and have no row of their own.
type Variant struct {
	ID    string  `json:"id" mapstructure:"id"`
	Name  string  `json:"name" mapstructure:"name"`
	Price float64 `json:"price" mapstructure:"price"`
	Stock int64   `json:"stock" mapstructure:"stock"`
	SKU   string  `json:"sku,omitempty" mapstructure:"sku"`
}

// Spec is an ordered key/value attribute pair.
type Spec struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Images holds the main image URL plus an ordered gallery.
type Images struct {
	Main    string   `json:"main"`
	Gallery []string `json:"gallery"`
}

// SEO holds page metadata.
type SEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Product represents the products table. The list-shaped fields (tags,
// specs, images, variants, seo) are stored as JSON columns so each row is
// effectively a document; legacy rows may carry malformed values there,
// which the repair pass normalizes.
type Product struct {
	ID          string         `gorm:"column:id;primaryKey;type:varchar(128)" json:"id"`
	Title       string         `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Slug        string         `gorm:"column:slug;type:varchar(128);index" json:"slug"`
	Category    string         `gorm:"column:category;type:varchar(128);index" json:"category"`
	Brand       string         `gorm:"column:brand;type:varchar(128)" json:"brand"`
	SKU         string         `gorm:"column:sku;type:varchar(64);index" json:"sku"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	PriceUSD    float64        `gorm:"column:price_usd;type:decimal(12,2);default:0" json:"price_usd"`
	Stock       int64          `gorm:"column:stock" json:"stock"`
	InStock     bool           `gorm:"column:in_stock;default:false" json:"in_stock"`
	Status      string         `gorm:"column:status;type:varchar(16);index" json:"status"`
	IsFeatured  bool           `gorm:"column:is_featured;default:false" json:"is_featured"`
	Tags        datatypes.JSON `gorm:"column:tags" json:"tags"`
	Specs       datatypes.JSON `gorm:"column:specs" json:"specs"`
	Images      datatypes.JSON `gorm:"column:images" json:"images"`
	Variants    datatypes.JSON `gorm:"column:variants" json:"variants"`
	SEO         datatypes.JSON `gorm:"column:seo" json:"seo"`
	Version     int64          `gorm:"column:version;not null;default:1" json:"version"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// IsVariable reports whether the product has at least one variant; in
// that state root price/stock are derived, not authoritative.
func (p *Product) IsVariable() bool {
	vs, err := p.VariantList()
	return err == nil && len(vs) > 0
}

// VariantList decodes the variants JSON column.
func (p *Product) VariantList() ([]Variant, error) {
	if len(p.Variants) == 0 {
		return nil, nil
	}
	var vs []Variant
	if err := json.Unmarshal(p.Variants, &vs); err != nil {
		return nil, err
	}
	return vs, nil
}

// SetVariants encodes vs into the variants JSON column. A nil slice is
// stored as an empty array, never as null.
func (p *Product) SetVariants(vs []Variant) error {
	if vs == nil {
		vs = []Variant{}
	}
	raw, err := json.Marshal(vs)
	if err != nil {
		return err
	}
	p.Variants = datatypes.JSON(raw)
	return nil
}

// TagList decodes the tags JSON column.
func (p *Product) TagList() []string {
	if len(p.Tags) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(p.Tags, &tags); err != nil {
		return nil
	}
	return tags
}

// SetTags encodes tags into the tags JSON column, keeping order and
// duplicates as given.
func (p *Product) SetTags(tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	p.Tags = datatypes.JSON(raw)
	return nil
}

// SpecList decodes the specs JSON column.
func (p *Product) SpecList() []Spec {
	if len(p.Specs) == 0 {
		return nil
	}
	var specs []Spec
	if err := json.Unmarshal(p.Specs, &specs); err != nil {
		return nil
	}
	return specs
}

// SetSpecs encodes specs into the specs JSON column.
func (p *Product) SetSpecs(specs []Spec) error {
	if specs == nil {
		specs = []Spec{}
	}
	raw, err := json.Marshal(specs)
	if err != nil {
		return err
	}
	p.Specs = datatypes.JSON(raw)
	return nil
}

// ImageSet decodes the images JSON column.
func (p *Product) ImageSet() Images {
	if len(p.Images) == 0 {
		return Images{}
	}
	var imgs Images
	if err := json.Unmarshal(p.Images, &imgs); err != nil {
		return Images{}
	}
	return imgs
}

// SetImages encodes imgs into the images JSON column.
func (p *Product) SetImages(imgs Images) error {
	if imgs.Gallery == nil {
		imgs.Gallery = []string{}
	}
	raw, err := json.Marshal(imgs)
	if err != nil {
		return err
	}
	p.Images = datatypes.JSON(raw)
	return nil
}

// SEOData decodes the seo JSON column.
func (p *Product) SEOData() SEO {
	if len(p.SEO) == 0 {
		return SEO{}
	}
	var s SEO
	if err := json.Unmarshal(p.SEO, &s); err != nil {
		return SEO{}
	}
	return s
}

// SetSEO encodes s into the seo JSON column.
func (p *Product) SetSEO(s SEO) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	p.SEO = datatypes.JSON(raw)
	return nil
}
