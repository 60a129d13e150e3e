package importer

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"conputodo.GO/api"
	"conputodo.GO/core/auth"
	catalogService "conputodo.GO/service/catalog"
)

func init() {
	api.RegisterModule(RegisterImporterRoutes)
}

func RegisterImporterRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/importer")

	// GET /api/importer/template – the CSV template operators fill in.
	g.GET("/template", func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderContentDisposition,
			`attachment; filename="`+catalogService.TemplateFilename+`"`)
		return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(catalogService.BuildTemplate()))
	})

	// POST /api/importer/csv – bulk catalog import from an uploaded CSV
	// (multipart field "file"). ?mode=patch|overwrite, ?batch_size=N.
	g.POST("/csv", func(c echo.Context) error {
		start := time.Now()

		mode, err := catalogService.ParseImportMode(c.QueryParam("mode"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		batchSize := 0
		if raw := c.QueryParam("batch_size"); raw != "" {
			batchSize, err = strconv.Atoi(raw)
			if err != nil || batchSize < 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "batch_size must be a non-negative integer"})
			}
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipart field 'file' is required"})
		}
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		defer src.Close()

		res, err := catalogService.ImportCatalog(db, src, catalogService.ImportOptions{
			BatchSize: batchSize,
			Mode:      mode,
		})
		duration := time.Since(start).Milliseconds()
		if err != nil {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}

		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"total_rows":          res.TotalRows,
			"created":             res.Created,
			"updated":             res.Updated,
			"skipped":             res.Skipped,
			"warnings":            res.Warnings,
			"process_ms":          res.ProcessTime.Milliseconds(),
			"db_ms":               res.DBTime.Milliseconds(),
			"request_duration_ms": duration,
		})
	}, auth.RequireAdmin)

	// POST /api/importer/repair – run the inventory repair pass now.
	// ?resume=1 continues from the last checkpoint.
	g.POST("/repair", func(c echo.Context) error {
		start := time.Now()
		res, err := catalogService.RepairInventory(db, catalogService.RepairOptions{
			Resume: c.QueryParam("resume") == "1",
		})
		duration := time.Since(start).Milliseconds()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"scanned":             res.Scanned,
			"fixed":               res.Fixed,
			"batches":             res.Batches,
			"warnings":            res.Warnings,
			"request_duration_ms": duration,
		})
	}, auth.RequireAdmin)
}
