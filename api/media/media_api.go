package media

import (
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"conputodo.GO/api"
	"conputodo.GO/core/auth"
	catalogRepo "conputodo.GO/model/repository/catalog"
	mediaService "conputodo.GO/service/media"
)

func init() {
	api.RegisterModule(RegisterMediaRoutes)
}

var (
	providerInstance mediaService.StorageProvider
	providerOnce     sync.Once
	providerErr      error
)

func getProvider() (mediaService.StorageProvider, error) {
	providerOnce.Do(func() {
		providerInstance, providerErr = mediaService.NewStorageProvider(mediaService.StorageConfigFromEnv())
	})
	return providerInstance, providerErr
}

func RegisterMediaRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/media")

	// POST /api/media/products/:id – upload a product image (multipart
	// field "file") and append it to the gallery. ?main=1 also makes it
	// the main image. Admin only.
	g.POST("/products/:id", func(c echo.Context) error {
		provider, err := getProvider()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		repo, err := catalogRepo.NewProductRepository(db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		id := c.Param("id")
		p, err := repo.ByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipart field 'file' is required"})
		}
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		res, err := mediaService.UploadProductImage(c.Request().Context(), provider, id, fh.Filename, data)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		imgs := p.ImageSet()
		imgs.Gallery = append(imgs.Gallery, res.URL)
		if c.QueryParam("main") == "1" || imgs.Main == "" {
			imgs.Main = res.URL
		}
		if err := p.SetImages(imgs); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		err = repo.ConditionalUpdate(id, p.Version, map[string]interface{}{"images": p.Images})
		if err != nil {
			if errors.Is(err, catalogRepo.ErrConflict) {
				return c.JSON(http.StatusConflict, echo.Map{"error": "product was modified concurrently, retry"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"url":       res.URL,
			"thumb_url": res.ThumbURL,
			"images":    imgs,
		})
	}, auth.RequireAdmin)
}
