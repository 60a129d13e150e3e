package resolvers

import (
	"gorm.io/gorm"

	catalogRepo "conputodo.GO/model/repository/catalog"
	settingsRepo "conputodo.GO/model/repository/settings"

	gqlregistry "conputodo.GO/graphql/registry"
)

func init() {
	gqlregistry.RegisterQueryResolverFactory(func(db interface{}) interface{} {
		return New(db.(*gorm.DB))
	})
}

// QueryResolver backs all Query fields. Methods live in product.go,
// search.go and settings.go. New Query fields: RegisterSchemaExtension
// plus a method here, or _extension for fully dynamic resolvers.
type QueryResolver struct {
	db *gorm.DB
}

func New(db *gorm.DB) *QueryResolver {
	return &QueryResolver{db: db}
}

func (r *QueryResolver) productRepo() (*catalogRepo.ProductRepository, error) {
	return catalogRepo.NewProductRepository(r.db)
}

func (r *QueryResolver) settingsRepo() *settingsRepo.SettingsRepository {
	return settingsRepo.NewSettingsRepository(r.db)
}

// exchangeRate returns the USD to VES rate for price mapping. Zero when
// rates are not configured yet.
func (r *QueryResolver) exchangeRate() float64 {
	g, err := r.settingsRepo().Global()
	if err != nil {
		return 0
	}
	return g.ExchangeRate
}

func defaultPage(pageSize, currentPage int32) (int, int) {
	ps, cp := int(pageSize), int(currentPage)
	if ps <= 0 {
		ps = 20
	}
	if cp <= 0 {
		cp = 1
	}
	return ps, cp
}

func totalPages(total, pageSize int) int32 {
	if pageSize <= 0 {
		return 0
	}
	return int32((total + pageSize - 1) / pageSize)
}
