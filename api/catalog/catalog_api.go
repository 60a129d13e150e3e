package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"conputodo.GO/api"
	"conputodo.GO/config"
	"conputodo.GO/core/auth"
	"conputodo.GO/core/cache"
	catalogRepo "conputodo.GO/model/repository/catalog"
	catalogService "conputodo.GO/service/catalog"
)

func init() {
	api.RegisterModule(RegisterCatalogRoutes)
}

// Singleton repository (created once per DB)
var (
	repoInstance *catalogRepo.ProductRepository
	repoOnce     sync.Once
	repoErr      error
)

func getRepository(db *gorm.DB) (*catalogRepo.ProductRepository, error) {
	repoOnce.Do(func() {
		repoInstance, repoErr = catalogRepo.NewProductRepository(db)
	})
	return repoInstance, repoErr
}

func RegisterCatalogRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/catalog")

	// GET /api/catalog – storefront/back-office listing.
	// ?status=published|draft|hidden|trash|all, ?featured=1, paging via limit/offset.
	g.GET("", func(c echo.Context) error {
		start := time.Now()
		repo, err := getRepository(db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		limit := intParam(c, "limit", 50)
		offset := intParam(c, "offset", 0)

		if c.QueryParam("featured") == "1" {
			products, err := repo.Featured(limit)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
			return respond(c, start, echo.Map{"items": products, "count": len(products)})
		}

		status := c.QueryParam("status")
		// Unauthenticated storefront traffic only sees purchasable products.
		if auth.RoleFromContext(c) == "" {
			products, err := repo.Active(limit, offset)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
			return respond(c, start, echo.Map{"items": products, "count": len(products)})
		}

		products, err := repo.List(status, limit, offset)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return respond(c, start, echo.Map{"items": products, "count": len(products)})
	})

	// GET /api/catalog/counters – per-status totals for the back-office tabs.
	g.GET("/counters", func(c echo.Context) error {
		repo, err := getRepository(db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		counts, err := repo.CountByStatus()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, counts)
	})

	// GET /api/catalog/feed – cached published-product feed (built by cron).
	// Lookup order mirrors the feed job's write order: redis, then the
	// in-process cache, then the DB.
	g.GET("/feed", func(c echo.Context) error {
		if config.RedisClient != nil {
			if raw, err := config.RedisClient.Get(config.RedisCtx(), catalogService.FeedCacheKey).Bytes(); err == nil {
				return c.JSONBlob(http.StatusOK, raw)
			}
		}
		if payload, ok := cache.GetInstance().Get(catalogService.FeedCacheKey); ok {
			if raw, isBytes := payload.([]byte); isBytes {
				return c.JSONBlob(http.StatusOK, raw)
			}
		}
		repo, err := getRepository(db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		products, err := repo.Active(1000, 0)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, products)
	})

	// GET /api/catalog/search – full-text search over the published catalog.
	g.GET("/search", func(c echo.Context) error {
		start := time.Now()
		query := c.QueryParam("q")
		if query == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "q parameter is required"})
		}
		repo, err := getRepository(db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		size := intParam(c, "limit", 20)
		page := intParam(c, "page", 0)

		svc := catalogService.GetSearchService()
		if !svc.Enabled() {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "search is not configured"})
		}
		ids, total, err := svc.Search(c.Request().Context(), query, size, page)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		byID, err := repo.ByIDs(ids, 0)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		// Preserve relevance order from the search engine.
		items := make([]interface{}, 0, len(ids))
		for _, id := range ids {
			if p, ok := byID[id]; ok {
				items = append(items, p)
			}
		}
		return respond(c, start, echo.Map{"items": items, "total": total})
	})

	// GET /api/catalog/slug/:slug – storefront product page lookup.
	g.GET("/slug/:slug", func(c echo.Context) error {
		repo, err := getRepository(db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		p, err := repo.BySlug(c.Param("slug"))
		if err != nil {
			return notFoundOr500(c, err)
		}
		return c.JSON(http.StatusOK, p)
	})

	// GET /api/catalog/:id
	g.GET("/:id", func(c echo.Context) error {
		repo, err := getRepository(db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		p, err := repo.ByID(c.Param("id"))
		if err != nil {
			return notFoundOr500(c, err)
		}
		return c.JSON(http.StatusOK, p)
	})

	// POST /api/catalog – create a product (admin).
	g.POST("", saveHandler(db, ""), auth.RequireAdmin)

	// PUT /api/catalog/:id – edit a product (admin). Honors the version
	// the caller read; a stale version yields 409.
	g.PUT("/:id", func(c echo.Context) error {
		return saveHandler(db, c.Param("id"))(c)
	}, auth.RequireAdmin)

	// PATCH /api/catalog/:id/price – inline price edit from the list view (admin).
	g.PATCH("/:id/price", func(c echo.Context) error {
		var body struct {
			PriceUSD float64 `json:"price_usd"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		repo, err := getRepository(db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if err := repo.QuickUpdatePrice(c.Param("id"), body.PriceUSD); err != nil {
			return notFoundOr500(c, err)
		}
		invalidateFeed()
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	}, auth.RequireAdmin)

	// PATCH /api/catalog/:id/status – publish/hide/trash (admin).
	g.PATCH("/:id/status", func(c echo.Context) error {
		var body struct {
			Status string `json:"status"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		repo, err := getRepository(db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if err := repo.SetStatus(c.Param("id"), body.Status); err != nil {
			return notFoundOr500(c, err)
		}
		invalidateFeed()
		return c.JSON(http.StatusOK, echo.Map{"status": body.Status})
	}, auth.RequireAdmin)

	// POST /api/catalog/:id/restore – trash back to draft (admin).
	g.POST("/:id/restore", func(c echo.Context) error {
		repo, err := getRepository(db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if err := repo.Restore(c.Param("id")); err != nil {
			return notFoundOr500(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "draft"})
	}, auth.RequireAdmin)

	// DELETE /api/catalog/:id – permanent delete, trash only (admin).
	g.DELETE("/:id", func(c echo.Context) error {
		repo, err := getRepository(db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		id := c.Param("id")
		if err := repo.DeletePermanently(id); err != nil {
			return notFoundOr500(c, err)
		}
		if svc := catalogService.GetSearchService(); svc.Enabled() {
			_ = svc.DeleteProduct(c.Request().Context(), id)
		}
		return c.NoContent(http.StatusNoContent)
	}, auth.RequireAdmin)
}

func saveHandler(db *gorm.DB, existingID string) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		var in catalogService.ProductInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		p, err := catalogService.SaveProduct(db, in, existingID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrConflict) {
				return c.JSON(http.StatusConflict, echo.Map{"error": "product was modified concurrently, reload and retry"})
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		invalidateFeed()
		status := http.StatusOK
		if existingID == "" {
			status = http.StatusCreated
		}
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
		return c.JSON(status, p)
	}
}

func invalidateFeed() {
	if config.RedisClient != nil {
		config.RedisClient.Del(config.RedisCtx(), catalogService.FeedCacheKey)
	}
	cache.GetInstance().Delete(catalogService.FeedCacheKey)
}

func respond(c echo.Context, start time.Time, body interface{}) error {
	c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
	return c.JSON(http.StatusOK, body)
}

func intParam(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func notFoundOr500(c echo.Context, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}
