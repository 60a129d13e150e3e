package sales

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"conputodo.GO/api"
	salesRepo "conputodo.GO/model/repository/sales"
	salesService "conputodo.GO/service/sales"
)

func init() {
	api.RegisterModule(RegisterSalesRoutes)
}

func RegisterSalesRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/sales")
	repo := salesRepo.NewOrderRepository(db)

	// POST /api/sales/checkout – public storefront checkout. Records the
	// order and hands the buyer off to WhatsApp.
	g.POST("/checkout", func(c echo.Context) error {
		start := time.Now()
		var in salesService.CheckoutInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		res, err := salesService.Checkout(db, in)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
		return c.JSON(http.StatusCreated, res)
	})

	// GET /api/sales/orders – back-office order list. ?status filters.
	g.GET("/orders", func(c echo.Context) error {
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
		orders, err := repo.List(c.QueryParam("status"), limit, offset)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"items": orders, "count": len(orders)})
	})

	// GET /api/sales/orders/:id
	g.GET("/orders/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}
		o, err := repo.ByID(uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, o)
	})

	// PATCH /api/sales/orders/:id/status – pendiente/completado/cancelado.
	// Open to both operator roles.
	g.PATCH("/orders/:id/status", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
		}
		var body struct {
			Status string `json:"status"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := repo.UpdateStatus(uint(id), body.Status); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": body.Status})
	})
}
