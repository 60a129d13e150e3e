//go:build !cli
// +build !cli

package main

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"conputodo.GO/api"
	_ "conputodo.GO/api/catalog"
	graphqlApi "conputodo.GO/api/graphql"
	_ "conputodo.GO/api/importer"
	_ "conputodo.GO/api/media"
	_ "conputodo.GO/api/sales"
	_ "conputodo.GO/api/settings"
	_ "conputodo.GO/api/wholesale"
	"conputodo.GO/config"
	"conputodo.GO/core/auth"
	_ "conputodo.GO/custom"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()

	config.InitRedis()
	redisStatus := "Redis not configured, caching falls back to in-process."
	if config.RedisClient != nil {
		if err := config.RedisClient.Ping(config.RedisCtx()).Err(); err == nil {
			redisStatus = "Redis connection successful."
		} else {
			config.RedisClient = nil
			redisStatus = "Redis configured but not reachable, caching falls back to in-process."
		}
	}
	log.Println(redisStatus)

	db, err := config.NewDB()
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	sqldb, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get DB instance: %v", err)
	}
	if err := sqldb.Ping(); err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	log.Println("Database connection successful.")

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "app": config.AppConfig.AppName})
	})

	// Locally stored product images
	e.Static(config.AppConfig.MediaURL, os.Getenv("MEDIA_DIR"))

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware(db))
	api.ApplyModules(apiGroup, db)

	graphqlApi.RegisterGraphQLRoutes(e, db)
	api.ApplyRoutes(e, db)

	// ASCII banner on start (random font each run)
	fonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "puffy", "rectangles"}
	fig := figure.NewFigure("ConPuTodo", fonts[rand.Intn(len(fonts))], true)
	fig.Print()
	fmt.Println()

	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on :%s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
