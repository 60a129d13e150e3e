package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRegistry_RegisterAndApplyRoutes(t *testing.T) {
	RegisterGET("/store/status", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"store": "open"})
	})

	e := echo.New()
	ApplyRoutes(e, nil)

	req := httptest.NewRequest(http.MethodGet, "/store/status", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); body == "" {
		t.Error("empty body")
	}
}
