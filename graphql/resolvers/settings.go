package resolvers

import (
	"context"

	gqlmodels "conputodo.GO/graphql/models"
)

// StoreSettings returns exchange rates plus the marketing content for
// the storefront shell.
func (r *QueryResolver) StoreSettings(ctx context.Context) (*gqlmodels.StoreSettings, error) {
	repo := r.settingsRepo()
	g, err := repo.Global()
	if err != nil {
		return nil, err
	}
	m, err := repo.Marketing()
	if err != nil {
		return nil, err
	}
	out := &gqlmodels.StoreSettings{
		ExchangeRate:    g.ExchangeRate,
		ExchangeRateBcv: g.ExchangeRateBCV,
	}
	if m.HeroImage != "" {
		out.HeroImage = &m.HeroImage
	}
	if m.NewsText != "" {
		out.NewsText = &m.NewsText
	}
	return out, nil
}
