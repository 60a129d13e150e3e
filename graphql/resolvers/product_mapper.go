package resolvers

import (
	catalogEntity "conputodo.GO/model/entity/catalog"
	gqlmodels "conputodo.GO/graphql/models"
)

func mapProduct(p *catalogEntity.Product, rate float64) *gqlmodels.Product {
	out := &gqlmodels.Product{
		ID:         p.ID,
		Title:      p.Title,
		Slug:       p.Slug,
		Category:   p.Category,
		PriceUsd:   p.PriceUSD,
		PriceVes:   p.PriceUSD * rate,
		Stock:      int32(p.Stock),
		InStock:    p.InStock,
		Status:     p.Status,
		IsFeatured: p.IsFeatured,
		Tags:       p.TagList(),
		Version:    int32(p.Version),
	}
	if p.Brand != "" {
		out.Brand = &p.Brand
	}
	if p.SKU != "" {
		out.SKU = &p.SKU
	}
	if p.Description != "" {
		out.Description = &p.Description
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}

	out.Specs = make([]*gqlmodels.Spec, 0)
	for _, s := range p.SpecList() {
		out.Specs = append(out.Specs, &gqlmodels.Spec{Key: s.Key, Value: s.Value})
	}

	imgs := p.ImageSet()
	if imgs.Main != "" || len(imgs.Gallery) > 0 {
		gi := &gqlmodels.Images{Gallery: imgs.Gallery}
		if gi.Gallery == nil {
			gi.Gallery = []string{}
		}
		if imgs.Main != "" {
			gi.Main = &imgs.Main
		}
		out.Images = gi
	}

	out.Variants = make([]*gqlmodels.Variant, 0)
	vs, _ := p.VariantList()
	for _, v := range vs {
		mv := &gqlmodels.Variant{
			ID:       v.ID,
			Name:     v.Name,
			PriceUsd: v.Price,
			Stock:    int32(v.Stock),
		}
		if v.SKU != "" {
			sku := v.SKU
			mv.SKU = &sku
		}
		out.Variants = append(out.Variants, mv)
	}
	return out
}

func mapProducts(ps []catalogEntity.Product, rate float64) []*gqlmodels.Product {
	out := make([]*gqlmodels.Product, 0, len(ps))
	for i := range ps {
		out = append(out, mapProduct(&ps[i], rate))
	}
	return out
}
