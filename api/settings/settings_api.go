package settings

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"conputodo.GO/api"
	"conputodo.GO/core/auth"
	settingsEntity "conputodo.GO/model/entity/settings"
	settingsRepo "conputodo.GO/model/repository/settings"
)

func init() {
	api.RegisterModule(RegisterSettingsRoutes)
}

func RegisterSettingsRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/settings")
	repo := settingsRepo.NewSettingsRepository(db)

	// GET /api/settings/marketing – public: hero image and news ticker.
	g.GET("/marketing", func(c echo.Context) error {
		m, err := repo.Marketing()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, m)
	})

	// PUT /api/settings/marketing (admin)
	g.PUT("/marketing", func(c echo.Context) error {
		var m settingsEntity.Marketing
		if err := c.Bind(&m); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := repo.SaveMarketing(m); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, m)
	}, auth.RequireAdmin)

	// GET /api/settings/global – exchange rates (operators).
	g.GET("/global", func(c echo.Context) error {
		gl, err := repo.Global()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, gl)
	})

	// PUT /api/settings/global (admin)
	g.PUT("/global", func(c echo.Context) error {
		var gl settingsEntity.Global
		if err := c.Bind(&gl); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if gl.ExchangeRate < 0 || gl.ExchangeRateBCV < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "exchange rates must not be negative"})
		}
		if err := repo.SaveGlobal(gl); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, gl)
	}, auth.RequireAdmin)
}
