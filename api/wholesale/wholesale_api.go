package wholesale

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"conputodo.GO/api"
	wholesaleEntity "conputodo.GO/model/entity/wholesale"
	wholesaleRepo "conputodo.GO/model/repository/wholesale"
)

func init() {
	api.RegisterModule(RegisterWholesaleRoutes)
}

func RegisterWholesaleRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := wholesaleRepo.NewWholesaleRepository(db)

	// POST /api/wholesale – public contact form for wholesale inquiries.
	apiGroup.POST("/wholesale", func(c echo.Context) error {
		var req wholesaleEntity.Request
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		req.RequestID = 0
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
		}
		if strings.TrimSpace(req.Email) == "" && strings.TrimSpace(req.Phone) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email or phone is required"})
		}
		if err := repo.Create(&req); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, req)
	})

	// GET /api/wholesale/requests – back-office inbox (operators).
	apiGroup.GET("/wholesale/requests", func(c echo.Context) error {
		limit := 50
		if raw := c.QueryParam("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}
		offset := 0
		if raw := c.QueryParam("offset"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				offset = n
			}
		}
		items, err := repo.List(limit, offset)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
	})
}
