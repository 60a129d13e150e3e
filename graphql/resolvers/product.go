package resolvers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	catalogEntity "conputodo.GO/model/entity/catalog"
	gqlmodels "conputodo.GO/graphql/models"
)

// Products lists the published catalog, newest first.
func (r *QueryResolver) Products(ctx context.Context, pageSize, currentPage int32, featured *bool) (*gqlmodels.ProductList, error) {
	repo, err := r.productRepo()
	if err != nil {
		return nil, err
	}
	ps, cp := defaultPage(pageSize, currentPage)
	rate := r.exchangeRate()

	if featured != nil && *featured {
		items, err := repo.Featured(ps)
		if err != nil {
			return nil, err
		}
		return &gqlmodels.ProductList{
			Items:      mapProducts(items, rate),
			TotalCount: int32(len(items)),
			PageInfo:   &gqlmodels.PageInfo{PageSize: int32(ps), CurrentPage: 1, TotalPages: 1},
		}, nil
	}

	items, err := repo.Active(ps, (cp-1)*ps)
	if err != nil {
		return nil, err
	}
	var total int64
	if err := r.db.Model(&catalogEntity.Product{}).
		Where("status = ? AND stock > 0", catalogEntity.StatusPublished).
		Count(&total).Error; err != nil {
		return nil, err
	}
	return &gqlmodels.ProductList{
		Items:      mapProducts(items, rate),
		TotalCount: int32(total),
		PageInfo: &gqlmodels.PageInfo{
			PageSize:    int32(ps),
			CurrentPage: int32(cp),
			TotalPages:  totalPages(int(total), ps),
		},
	}, nil
}

// Product looks up a single product by id or slug. Nil when not found.
func (r *QueryResolver) Product(ctx context.Context, id, slug *string) (*gqlmodels.Product, error) {
	repo, err := r.productRepo()
	if err != nil {
		return nil, err
	}
	var p *catalogEntity.Product
	switch {
	case id != nil && *id != "":
		p, err = repo.ByID(*id)
	case slug != nil && *slug != "":
		p, err = repo.BySlug(*slug)
	default:
		return nil, errors.New("product: id or slug is required")
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapProduct(p, r.exchangeRate()), nil
}
