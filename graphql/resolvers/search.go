package resolvers

import (
	"context"

	"gorm.io/gorm"

	catalogEntity "conputodo.GO/model/entity/catalog"
	catalogService "conputodo.GO/service/catalog"
	gqlmodels "conputodo.GO/graphql/models"
)

// Search runs a full-text query over the published catalog. With the
// search engine configured it goes through Elasticsearch; otherwise it
// falls back to a LIKE scan so the storefront keeps working.
func (r *QueryResolver) Search(ctx context.Context, query string, pageSize, currentPage int32) (*gqlmodels.ProductList, error) {
	repo, err := r.productRepo()
	if err != nil {
		return nil, err
	}
	ps, cp := defaultPage(pageSize, currentPage)
	rate := r.exchangeRate()

	if svc := catalogService.GetSearchService(); svc.Enabled() {
		ids, total, err := svc.Search(ctx, query, ps, cp-1)
		if err != nil {
			return nil, err
		}
		byID, err := repo.ByIDs(ids, 0)
		if err != nil {
			return nil, err
		}
		items := make([]*gqlmodels.Product, 0, len(ids))
		for _, id := range ids {
			if p, ok := byID[id]; ok {
				items = append(items, mapProduct(&p, rate))
			}
		}
		return &gqlmodels.ProductList{
			Items:      items,
			TotalCount: int32(total),
			PageInfo: &gqlmodels.PageInfo{
				PageSize:    int32(ps),
				CurrentPage: int32(cp),
				TotalPages:  totalPages(total, ps),
			},
		}, nil
	}

	pattern := "%" + query + "%"
	base := func() *gorm.DB {
		return r.db.Model(&catalogEntity.Product{}).
			Where("status = ?", catalogEntity.StatusPublished).
			Where("title LIKE ? OR sku LIKE ? OR brand LIKE ? OR description LIKE ?",
				pattern, pattern, pattern, pattern)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, err
	}
	var items []catalogEntity.Product
	if err := base().Order("title").Limit(ps).Offset((cp - 1) * ps).Find(&items).Error; err != nil {
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
