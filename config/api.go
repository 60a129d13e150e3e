package config

// GetAuthSkipperPaths returns the paths that skip authentication: the
// public storefront reads plus checkout and the wholesale contact form.
func GetAuthSkipperPaths() []string {
	return []string{
		"/api/catalog",
		"/api/catalog/:id",
		"/api/catalog/slug/:slug",
		"/api/catalog/search",
		"/api/catalog/feed",
		"/api/sales/checkout",
		"/api/settings/marketing",
		"/api/wholesale",
		"/graphql",
		"/playground",
	}
}
